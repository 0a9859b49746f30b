package checkout

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/bookstorebackend/lib/mycontext"
	"github.com/MarcGrol/bookstorebackend/lib/myhttp"
	"github.com/MarcGrol/bookstorebackend/lib/mylog"
	"github.com/MarcGrol/bookstorebackend/lib/mypublisher"
	"github.com/MarcGrol/bookstorebackend/lib/mystore"
	"github.com/MarcGrol/bookstorebackend/lib/mytime"
	"github.com/MarcGrol/bookstorebackend/lib/myuuid"
	"github.com/MarcGrol/bookstorebackend/services/auth"
	"github.com/MarcGrol/bookstorebackend/services/checkout/checkoutevents"
)

type webService struct {
	logger    mylog.Logger
	service   *service
	publisher mypublisher.Publisher
	guard     *auth.Guard
}

func NewWebService(apiKey string, payer Payer, totaler CartTotaler, sessionStore mystore.Store[CheckoutSession],
	publisher mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer, guard *auth.Guard) *webService {
	logger := mylog.New("checkout")
	return &webService{
		logger:    logger,
		service:   newService(apiKey, payer, totaler, sessionStore, publisher, nower, uuider, logger),
		publisher: publisher,
		guard:     guard,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	err := s.publisher.CreateTopic(c, checkoutevents.TopicName)
	if err != nil {
		return err
	}

	router.HandleFunc("/api/payment/checkout", s.guard.Authenticate(s.startCheckoutPage())).Methods("POST")
	router.HandleFunc("/api/payment/success", s.successPage()).Methods("GET")
	router.HandleFunc("/api/payment/cancel", s.cancelPage()).Methods("GET")

	return nil
}

func (s *webService) startCheckoutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		username, _ := auth.UsernameFromContext(r.Context())

		url, err := s.service.startCheckout(c, username, myhttp.HostnameWithScheme(r))
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, CheckoutResponse{URL: url})
	}
}

func (s *webService) successPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "Payment successful!"})
	}
}

func (s *webService) cancelPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "Payment cancelled."})
	}
}
