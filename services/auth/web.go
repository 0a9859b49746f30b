package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/bookstorebackend/lib/mycontext"
	"github.com/MarcGrol/bookstorebackend/lib/myerrors"
	"github.com/MarcGrol/bookstorebackend/lib/myhttp"
	"github.com/MarcGrol/bookstorebackend/lib/mylog"
	"github.com/MarcGrol/bookstorebackend/lib/mystore"
	"github.com/MarcGrol/bookstorebackend/lib/mytime"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

func NewWebService(userStore mystore.Store[User], tokenizer *Tokenizer, nower mytime.Nower) *webService {
	logger := mylog.New("auth")
	return &webService{
		logger:  logger,
		service: newService(userStore, tokenizer, nower, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/auth/register", s.registerPage()).Methods("POST")
	router.HandleFunc("/api/auth/login", s.loginPage()).Methods("POST")

	return nil
}

func (s *webService) registerPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		creds, err := parseCredentials(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		err = s.service.register(c, creds)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusCreated, myhttp.SuccessResponse{Message: "User registered"})
	}
}

func (s *webService) loginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		creds, err := parseCredentials(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		token, err := s.service.authenticate(c, creds)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, TokenResponse{Token: token})
	}
}

func parseCredentials(r *http.Request) (Credentials, error) {
	creds := Credentials{}
	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil {
		return creds, myerrors.NewInvalidInputError(fmt.Errorf("error parsing credentials: %s", err))
	}
	return creds, nil
}
