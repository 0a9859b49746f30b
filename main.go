package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/MarcGrol/bookstorebackend/lib/mycache"
	"github.com/MarcGrol/bookstorebackend/lib/mypublisher"
	"github.com/MarcGrol/bookstorebackend/lib/mypubsub"
	"github.com/MarcGrol/bookstorebackend/lib/mystore"
	"github.com/MarcGrol/bookstorebackend/lib/mytime"
	"github.com/MarcGrol/bookstorebackend/lib/myuuid"
	"github.com/MarcGrol/bookstorebackend/services/auth"
	"github.com/MarcGrol/bookstorebackend/services/bookapi"
	"github.com/MarcGrol/bookstorebackend/services/bookapi/bookstore"
	"github.com/MarcGrol/bookstorebackend/services/cart"
	"github.com/MarcGrol/bookstorebackend/services/checkout"
)

const defaultCartTTL = time.Hour

func main() {
	c := context.Background()

	// Optional: local development settings
	_ = godotenv.Load()

	router := mux.NewRouter()
	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	tokenizer := auth.NewTokenizer(mustGetenv("JWT_SECRET"))
	guard := auth.NewGuard(tokenizer)

	userStore, userStoreCleanup, err := mystore.New[auth.User](c)
	if err != nil {
		log.Fatalf("Error creating user store: %s", err)
	}
	defer userStoreCleanup()

	authService := auth.NewWebService(userStore, tokenizer, nower)
	err = authService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering auth endpoints: %s", err)
	}

	books, bookStoreCleanup, err := bookstore.New(c)
	if err != nil {
		log.Fatalf("Error creating book store: %s", err)
	}
	defer bookStoreCleanup()

	bookService := bookapi.NewWebService(books, guard)
	err = bookService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering book endpoints: %s", err)
	}

	cache, cacheCleanup, err := mycache.New(c)
	if err != nil {
		log.Fatalf("Error creating cache: %s", err)
	}
	defer cacheCleanup()

	cartService := cart.NewWebService(cache, cartTTL(), cartLenientReads(), bookService, guard)
	err = cartService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering cart endpoints: %s", err)
	}

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()
	publisher := mypublisher.New(pubsub, nower, uuider)

	sessionStore, sessionStoreCleanup, err := mystore.New[checkout.CheckoutSession](c)
	if err != nil {
		log.Fatalf("Error creating checkout session store: %s", err)
	}
	defer sessionStoreCleanup()

	checkoutService := checkout.NewWebService(mustGetenv("STRIPE_API_KEY"), checkout.NewPayer(), cartService,
		sessionStore, publisher, nower, uuider, guard)
	err = checkoutService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering checkout endpoints: %s", err)
	}

	startWebServerBlocking(router)
}

func cartTTL() time.Duration {
	ttl := os.Getenv("CART_TTL")
	if ttl == "" {
		return defaultCartTTL
	}

	parsed, err := time.ParseDuration(ttl)
	if err != nil || parsed <= 0 {
		log.Fatalf("Invalid CART_TTL %q: %s", ttl, err)
	}

	return parsed
}

func cartLenientReads() bool {
	lenient, _ := strconv.ParseBool(os.Getenv("CART_LENIENT_READS"))
	return lenient
}

func mustGetenv(name string) string {
	value := os.Getenv(name)
	if value == "" {
		log.Fatalf("Missing env-var %s", name)
	}
	return value
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
