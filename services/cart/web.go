package cart

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/bookstorebackend/lib/mycache"
	"github.com/MarcGrol/bookstorebackend/lib/mycontext"
	"github.com/MarcGrol/bookstorebackend/lib/myerrors"
	"github.com/MarcGrol/bookstorebackend/lib/myhttp"
	"github.com/MarcGrol/bookstorebackend/lib/mylog"
	"github.com/MarcGrol/bookstorebackend/services/auth"
)

type webService struct {
	logger  mylog.Logger
	service *service
	guard   *auth.Guard
}

func NewWebService(cache mycache.Cache, ttl time.Duration, lenientReads bool, priceLookup PriceLookup, guard *auth.Guard) *webService {
	logger := mylog.New("cart")
	return &webService{
		logger:  logger,
		service: newService(newCartStore(cache, ttl, lenientReads, logger), priceLookup, logger),
		guard:   guard,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	// "/api/cart/total" must be registered before "/api/cart/{bookID}"
	router.HandleFunc("/api/cart/total", s.guard.Authenticate(s.getTotalPage())).Methods("GET")
	router.HandleFunc("/api/cart", s.guard.Authenticate(s.getCartPage())).Methods("GET")
	router.HandleFunc("/api/cart", s.guard.Authenticate(s.clearCartPage())).Methods("DELETE")
	router.HandleFunc("/api/cart/{bookID}", s.guard.Authenticate(s.addBookPage())).Methods("POST")
	router.HandleFunc("/api/cart/{bookID}", s.guard.Authenticate(s.removeBookPage())).Methods("DELETE")

	return nil
}

// GetTotalInCents exposes the priced cart to the checkout service.
func (s *webService) GetTotalInCents(c context.Context, username string) (int64, error) {
	return s.service.getTotalInCents(c, username)
}

func (s *webService) addBookPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		username, _ := auth.UsernameFromContext(r.Context())
		bookID, err := parseBookID(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		err = s.service.addBook(c, username, bookID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "Book added to cart"})
	}
}

func (s *webService) removeBookPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		username, _ := auth.UsernameFromContext(r.Context())
		bookID, err := parseBookID(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		err = s.service.removeBook(c, username, bookID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "Book removed from cart"})
	}
}

func (s *webService) getCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		username, _ := auth.UsernameFromContext(r.Context())

		items, err := s.service.getCart(c, username)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, items)
	}
}

func (s *webService) clearCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		username, _ := auth.UsernameFromContext(r.Context())

		err := s.service.clearCart(c, username)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "Cart cleared"})
	}
}

func (s *webService) getTotalPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		username, _ := auth.UsernameFromContext(r.Context())

		totalInCents, err := s.service.getTotalInCents(c, username)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		// Cents internally, major units on the wire
		errorWriter.Write(c, w, http.StatusOK, TotalResponse{Total: float64(totalInCents) / 100})
	}
}

func parseBookID(r *http.Request) (int64, error) {
	bookID, err := strconv.ParseInt(mux.Vars(r)["bookID"], 10, 64)
	if err != nil || bookID <= 0 {
		return 0, myerrors.NewInvalidInputError(fmt.Errorf("invalid book id"))
	}
	return bookID, nil
}
