package bookapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/bookstorebackend/lib/mycontext"
	"github.com/MarcGrol/bookstorebackend/lib/myerrors"
	"github.com/MarcGrol/bookstorebackend/lib/myhttp"
	"github.com/MarcGrol/bookstorebackend/lib/mylog"
	"github.com/MarcGrol/bookstorebackend/services/auth"
	"github.com/MarcGrol/bookstorebackend/services/bookapi/bookstore"
)

type webService struct {
	logger  mylog.Logger
	service *service
	guard   *auth.Guard
}

func NewWebService(bookStore bookstore.BookStorer, guard *auth.Guard) *webService {
	logger := mylog.New("bookapi")
	return &webService{
		logger:  logger,
		service: newService(bookStore, logger),
		guard:   guard,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/book", s.listBooksPage()).Methods("GET")
	router.HandleFunc("/api/book/{bookID}", s.getBookPage()).Methods("GET")

	// Catalog mutations are reserved for admins
	router.HandleFunc("/api/book", s.guard.AuthenticateAdmin(s.createBookPage())).Methods("POST")
	router.HandleFunc("/api/book/{bookID}", s.guard.AuthenticateAdmin(s.updateBookPage())).Methods("PUT")
	router.HandleFunc("/api/book/{bookID}", s.guard.AuthenticateAdmin(s.deleteBookPage())).Methods("DELETE")

	return nil
}

// LookupPrice exposes the catalog price to other services.
func (s *webService) LookupPrice(c context.Context, bookID int64) (int64, bool, error) {
	book, exists, err := s.service.bookStore.Get(c, bookID)
	if err != nil {
		return 0, false, err
	}
	return book.PriceInCents, exists, nil
}

func (s *webService) listBooksPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		books, err := s.service.listBooks(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, books)
	}
}

func (s *webService) getBookPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		bookID, err := parseBookID(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		book, err := s.service.getBook(c, bookID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, book)
	}
}

func (s *webService) createBookPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req, err := parseBookRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		book, err := s.service.createBook(c, req)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusCreated, book)
	}
}

func (s *webService) updateBookPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		bookID, err := parseBookID(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		req, err := parseBookRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		book, err := s.service.updateBook(c, bookID, req)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, book)
	}
}

func (s *webService) deleteBookPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		bookID, err := parseBookID(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		err = s.service.deleteBook(c, bookID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "Book deleted"})
	}
}

func parseBookID(r *http.Request) (int64, error) {
	bookID, err := strconv.ParseInt(mux.Vars(r)["bookID"], 10, 64)
	if err != nil || bookID <= 0 {
		return 0, myerrors.NewInvalidInputError(fmt.Errorf("invalid book id"))
	}
	return bookID, nil
}

func parseBookRequest(r *http.Request) (BookRequest, error) {
	req := BookRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		return req, myerrors.NewInvalidInputError(fmt.Errorf("error parsing book: %s", err))
	}
	return req, nil
}
