package checkout

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v74"

	"github.com/MarcGrol/bookstorebackend/lib/myerrors"
	"github.com/MarcGrol/bookstorebackend/lib/mylog"
	"github.com/MarcGrol/bookstorebackend/lib/mypublisher"
	"github.com/MarcGrol/bookstorebackend/lib/mystore"
	"github.com/MarcGrol/bookstorebackend/lib/mytime"
	"github.com/MarcGrol/bookstorebackend/lib/myuuid"
	"github.com/MarcGrol/bookstorebackend/services/checkout/checkoutevents"
)

const (
	currency    = "ron"
	productName = "Bookstore Purchase"
)

//go:generate mockgen -source=service.go -package checkout -destination totaler_mock.go CartTotaler
type CartTotaler interface {
	// GetTotalInCents prices the cart of a user against the current catalog.
	GetTotalInCents(c context.Context, username string) (int64, error)
}

type service struct {
	apiKey       string
	payer        Payer
	totaler      CartTotaler
	sessionStore mystore.Store[CheckoutSession]
	publisher    mypublisher.Publisher
	nower        mytime.Nower
	uuider       myuuid.UUIDer
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(apiKey string, payer Payer, totaler CartTotaler, sessionStore mystore.Store[CheckoutSession],
	publisher mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		apiKey:       apiKey,
		payer:        payer,
		totaler:      totaler,
		sessionStore: sessionStore,
		publisher:    publisher,
		nower:        nower,
		uuider:       uuider,
		logger:       logger,
	}
}

func (s *service) startCheckout(c context.Context, username string, returnURL string) (string, error) {
	totalInCents, err := s.totaler.GetTotalInCents(c, username)
	if err != nil {
		return "", err
	}
	if totalInCents <= 0 {
		return "", myerrors.NewInvalidInputError(fmt.Errorf("cart of user %s is empty", username))
	}

	checkoutUID := s.uuider.Create()

	s.payer.UseAPIKey(s.apiKey)
	session, err := s.payer.CreateCheckoutSession(c, stripe.CheckoutSessionParams{
		ClientReferenceID:  stripe.String(checkoutUID),
		SuccessURL:         stripe.String(returnURL + "/api/payment/success"),
		CancelURL:          stripe.String(returnURL + "/api/payment/cancel"),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(totalInCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(productName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	})
	if err != nil {
		return "", err
	}

	err = s.sessionStore.Put(c, checkoutUID, CheckoutSession{
		UID:           checkoutUID,
		Username:      username,
		SessionID:     session.ID,
		AmountInCents: totalInCents,
		Currency:      currency,
		CreatedAt:     s.nower.Now(),
		Status:        CheckoutStatusStarted,
	})
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error storing checkout session %s: %s", checkoutUID, err))
	}

	err = s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutStarted{
		CheckoutUID:   checkoutUID,
		Username:      username,
		AmountInCents: totalInCents,
		Currency:      currency,
	})
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error publishing start of checkout %s: %s", checkoutUID, err))
	}

	s.logger.Log(c, checkoutUID, mylog.SeverityInfo, "Started checkout %s of %d cents for user %s", checkoutUID, totalInCents, username)

	return session.URL, nil
}
