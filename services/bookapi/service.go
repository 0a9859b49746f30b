package bookapi

import (
	"context"
	"fmt"
	"math"

	"github.com/MarcGrol/bookstorebackend/lib/myerrors"
	"github.com/MarcGrol/bookstorebackend/lib/mylog"
	"github.com/MarcGrol/bookstorebackend/services/bookapi/bookstore"
)

type service struct {
	bookStore bookstore.BookStorer
	logger    mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(bookStore bookstore.BookStorer, logger mylog.Logger) *service {
	return &service{
		bookStore: bookStore,
		logger:    logger,
	}
}

func (s *service) listBooks(c context.Context) ([]bookstore.Book, error) {
	books, err := s.bookStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	return books, nil
}

func (s *service) getBook(c context.Context, bookID int64) (bookstore.Book, error) {
	book, exists, err := s.bookStore.Get(c, bookID)
	if err != nil {
		return book, myerrors.NewInternalError(err)
	}
	if !exists {
		return book, myerrors.NewNotFoundError(fmt.Errorf("book with id %d not found", bookID))
	}

	return book, nil
}

func (s *service) createBook(c context.Context, req BookRequest) (bookstore.Book, error) {
	err := validateBookRequest(req)
	if err != nil {
		return bookstore.Book{}, err
	}

	book, err := s.bookStore.Create(c, bookFromRequest(0, req))
	if err != nil {
		return book, myerrors.NewInternalError(err)
	}

	s.logger.Log(c, fmt.Sprintf("%d", book.ID), mylog.SeverityInfo, "Created book %d (%s)", book.ID, book.Title)

	return book, nil
}

func (s *service) updateBook(c context.Context, bookID int64, req BookRequest) (bookstore.Book, error) {
	err := validateBookRequest(req)
	if err != nil {
		return bookstore.Book{}, err
	}

	book := bookFromRequest(bookID, req)
	updated, err := s.bookStore.Update(c, book)
	if err != nil {
		return book, myerrors.NewInternalError(err)
	}
	if !updated {
		return book, myerrors.NewNotFoundError(fmt.Errorf("book with id %d not found", bookID))
	}

	s.logger.Log(c, fmt.Sprintf("%d", bookID), mylog.SeverityInfo, "Updated book %d (%s)", bookID, book.Title)

	return book, nil
}

func (s *service) deleteBook(c context.Context, bookID int64) error {
	deleted, err := s.bookStore.Delete(c, bookID)
	if err != nil {
		return myerrors.NewInternalError(err)
	}
	if !deleted {
		return myerrors.NewNotFoundError(fmt.Errorf("book with id %d not found", bookID))
	}

	s.logger.Log(c, fmt.Sprintf("%d", bookID), mylog.SeverityInfo, "Deleted book %d", bookID)

	return nil
}

func validateBookRequest(req BookRequest) error {
	if req.Title == "" {
		return myerrors.NewInvalidInputError(fmt.Errorf("book title is required"))
	}
	if req.Price < 0 {
		return myerrors.NewInvalidInputError(fmt.Errorf("book price must not be negative"))
	}
	return nil
}

func bookFromRequest(bookID int64, req BookRequest) bookstore.Book {
	return bookstore.Book{
		ID:           bookID,
		Title:        req.Title,
		Description:  req.Description,
		Cover:        req.Cover,
		PriceInCents: int64(math.Round(req.Price * 100)),
	}
}
