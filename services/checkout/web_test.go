package checkout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/bookstorebackend/lib/mypublisher"
	"github.com/MarcGrol/bookstorebackend/lib/mystore"
	"github.com/MarcGrol/bookstorebackend/lib/mytime"
	"github.com/MarcGrol/bookstorebackend/lib/myuuid"
	"github.com/MarcGrol/bookstorebackend/services/auth"
	"github.com/MarcGrol/bookstorebackend/services/checkout/checkoutevents"
)

var sessionResp = stripe.CheckoutSession{
	ID:  "cs_test_456",
	URL: "https://checkout.stripe.com/pay/cs_test_456",
}

func TestCheckoutService(t *testing.T) {

	t.Run("Start checkout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, totaler, payer, nower, uuider, publisher := setup(t, ctrl)

		// given
		totaler.EXPECT().GetTotalInCents(gomock.Any(), "alice").Return(int64(3049), nil)
		uuider.EXPECT().Create().Return("123")
		payer.EXPECT().UseAPIKey("my_api_key")
		payer.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).Return(sessionResp, nil)
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, checkoutevents.CheckoutStarted{
			CheckoutUID:   "123",
			Username:      "alice",
			AmountInCents: 3049,
			Currency:      "ron",
		}).Return(nil)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/payment/checkout", nil)
		assert.NoError(t, err)
		request.Header.Set("Authorization", "Bearer "+tokenFor(t, "alice"))
		request.Host = "localhost:8888"
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.JSONEq(t, `{"url":"https://checkout.stripe.com/pay/cs_test_456"}`, response.Body.String())

		session, exists, _ := storer.Get(ctx, "123")
		assert.True(t, exists)
		assert.Equal(t, "alice", session.Username)
		assert.Equal(t, "cs_test_456", session.SessionID)
		assert.Equal(t, int64(3049), session.AmountInCents)
		assert.Equal(t, CheckoutStatusStarted, session.Status)
	})

	t.Run("Start checkout with empty cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, totaler, _, _, _, _ := setup(t, ctrl)

		// given
		totaler.EXPECT().GetTotalInCents(gomock.Any(), "alice").Return(int64(0), nil)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/payment/checkout", nil)
		assert.NoError(t, err)
		request.Header.Set("Authorization", "Bearer "+tokenFor(t, "alice"))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 400, response.Code)
	})

	t.Run("Start checkout without token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/payment/checkout", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 403, response.Code)
	})

	t.Run("Stripe failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, totaler, payer, _, uuider, _ := setup(t, ctrl)

		// given
		totaler.EXPECT().GetTotalInCents(gomock.Any(), "alice").Return(int64(3049), nil)
		uuider.EXPECT().Create().Return("123")
		payer.EXPECT().UseAPIKey("my_api_key")
		payer.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).Return(stripe.CheckoutSession{}, assert.AnError)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/payment/checkout", nil)
		assert.NoError(t, err)
		request.Header.Set("Authorization", "Bearer "+tokenFor(t, "alice"))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 500, response.Code)
	})

	t.Run("Payment status redirects", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/payment/success", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "Payment successful!")

		// when
		request, err = http.NewRequest(http.MethodGet, "/api/payment/cancel", nil)
		assert.NoError(t, err)
		response = httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "Payment cancelled.")
	})
}

func tokenFor(t *testing.T, username string) string {
	token, err := auth.NewTokenizer("my_test_secret").GenerateToken(username, auth.RoleUser, mytime.RealNower{}.Now())
	assert.NoError(t, err)
	return token
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[CheckoutSession],
	*MockCartTotaler, *MockPayer, *mytime.MockNower, *myuuid.MockUUIDer, *mypublisher.MockPublisher) {
	c := context.TODO()
	storer, _, _ := mystore.New[CheckoutSession](c)
	totaler := NewMockCartTotaler(ctrl)
	payer := NewMockPayer(ctrl)
	nower := mytime.NewMockNower(ctrl)
	uuider := myuuid.NewMockUUIDer(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)

	guard := auth.NewGuard(auth.NewTokenizer("my_test_secret"))
	sut := NewWebService("my_api_key", payer, totaler, storer, publisher, nower, uuider, guard)
	router := mux.NewRouter()

	// Called by RegisterEndpoints
	publisher.EXPECT().CreateTopic(gomock.Any(), checkoutevents.TopicName).Return(nil)

	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, storer, totaler, payer, nower, uuider, publisher
}
