package cart

import (
	"context"
	"fmt"

	"github.com/MarcGrol/bookstorebackend/lib/myerrors"
	"github.com/MarcGrol/bookstorebackend/lib/mylog"
)

//go:generate mockgen -source=service.go -package cart -destination pricing_mock.go PriceLookup
type PriceLookup interface {
	// LookupPrice returns the price in cents of a book, or exists=false
	// when the book is not (or no longer) in the catalog.
	LookupPrice(c context.Context, bookID int64) (price int64, exists bool, err error)
}

type service struct {
	store       *cartStore
	priceLookup PriceLookup
	logger      mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(store *cartStore, priceLookup PriceLookup, logger mylog.Logger) *service {
	return &service{
		store:       store,
		priceLookup: priceLookup,
		logger:      logger,
	}
}

func (s *service) addBook(c context.Context, username string, bookID int64) error {
	err := validate(username, bookID)
	if err != nil {
		return err
	}

	_, exists, err := s.priceLookup.LookupPrice(c, bookID)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error looking up book %d: %s", bookID, err))
	}
	if !exists {
		return myerrors.NewNotFoundError(fmt.Errorf("book with id %d not found", bookID))
	}

	err = s.store.addItem(c, username, bookID)
	if err != nil {
		return err
	}

	s.logger.Log(c, username, mylog.SeverityInfo, "Added book %d to cart of user %s", bookID, username)

	return nil
}

func (s *service) removeBook(c context.Context, username string, bookID int64) error {
	err := validate(username, bookID)
	if err != nil {
		return err
	}

	err = s.store.removeItem(c, username, bookID)
	if err != nil {
		return err
	}

	s.logger.Log(c, username, mylog.SeverityInfo, "Removed book %d from cart of user %s", bookID, username)

	return nil
}

func (s *service) getCart(c context.Context, username string) ([]int64, error) {
	if username == "" {
		return nil, myerrors.NewInvalidInputError(fmt.Errorf("missing username"))
	}

	return s.store.getCart(c, username)
}

func (s *service) clearCart(c context.Context, username string) error {
	if username == "" {
		return myerrors.NewInvalidInputError(fmt.Errorf("missing username"))
	}

	return s.store.clearCart(c, username)
}

// getTotalInCents prices the cart against the current catalog. Books
// that vanished from the catalog since they were added are skipped, not
// treated as an error.
func (s *service) getTotalInCents(c context.Context, username string) (int64, error) {
	items, err := s.getCart(c, username)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, bookID := range items {
		price, exists, err := s.priceLookup.LookupPrice(c, bookID)
		if err != nil {
			return 0, myerrors.NewInternalError(fmt.Errorf("error looking up book %d: %s", bookID, err))
		}
		if !exists {
			s.logger.Log(c, username, mylog.SeverityWarn, "Book %d in cart of user %s no longer exists, skipping", bookID, username)
			continue
		}
		total += price
	}

	return total, nil
}

func validate(username string, bookID int64) error {
	if username == "" {
		return myerrors.NewInvalidInputError(fmt.Errorf("missing username"))
	}
	if bookID <= 0 {
		return myerrors.NewInvalidInputError(fmt.Errorf("invalid book id %d", bookID))
	}
	return nil
}
