package bookapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/bookstorebackend/lib/mytime"
	"github.com/MarcGrol/bookstorebackend/services/auth"
	"github.com/MarcGrol/bookstorebackend/services/bookapi/bookstore"
)

func TestBookService(t *testing.T) {

	t.Run("Create book as admin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/book", strings.NewReader(`{"title":"The Go Programming Language","description":"Donovan and Kernighan","price":39.99}`))
		assert.NoError(t, err)
		request.Header.Set("Authorization", "Bearer "+adminToken(t))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 201, response.Code)

		book, exists, _ := storer.Get(ctx, 1)
		assert.True(t, exists)
		assert.Equal(t, "The Go Programming Language", book.Title)
		assert.Equal(t, int64(3999), book.PriceInCents)
	})

	t.Run("Create book without token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/book", strings.NewReader(`{"title":"Sneaky","price":1}`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 403, response.Code)
	})

	t.Run("Create book as regular user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/book", strings.NewReader(`{"title":"Sneaky","price":1}`))
		assert.NoError(t, err)
		request.Header.Set("Authorization", "Bearer "+userToken(t))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 403, response.Code)
	})

	t.Run("Create book without title", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/book", strings.NewReader(`{"price":39.99}`))
		assert.NoError(t, err)
		request.Header.Set("Authorization", "Bearer "+adminToken(t))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 400, response.Code)
	})

	t.Run("List books", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _ := setup(t, ctrl)

		// given
		_, _ = storer.Create(ctx, bookstore.Book{Title: "Clean Architecture", PriceInCents: 2550})

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/book", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "Clean Architecture")
		assert.Contains(t, response.Body.String(), `"priceInCents"`)
		assert.Contains(t, response.Body.String(), "2550")
	})

	t.Run("Get book", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _ := setup(t, ctrl)

		// given
		created, _ := storer.Create(ctx, bookstore.Book{Title: "Clean Architecture", PriceInCents: 2550})

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/book/1", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "Clean Architecture")
		assert.Equal(t, int64(1), created.ID)
	})

	t.Run("Get non-existing book", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/book/42", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Update book", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _ := setup(t, ctrl)

		// given
		_, _ = storer.Create(ctx, bookstore.Book{Title: "Clean Architecture", PriceInCents: 2550})

		// when
		request, err := http.NewRequest(http.MethodPut, "/api/book/1", strings.NewReader(`{"title":"Clean Architecture","price":19.99}`))
		assert.NoError(t, err)
		request.Header.Set("Authorization", "Bearer "+adminToken(t))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)

		book, _, _ := storer.Get(ctx, 1)
		assert.Equal(t, int64(1999), book.PriceInCents)
	})

	t.Run("Update non-existing book", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPut, "/api/book/42", strings.NewReader(`{"title":"Ghost","price":1}`))
		assert.NoError(t, err)
		request.Header.Set("Authorization", "Bearer "+adminToken(t))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Delete book", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _ := setup(t, ctrl)

		// given
		_, _ = storer.Create(ctx, bookstore.Book{Title: "Clean Architecture", PriceInCents: 2550})

		// when
		request, err := http.NewRequest(http.MethodDelete, "/api/book/1", nil)
		assert.NoError(t, err)
		request.Header.Set("Authorization", "Bearer "+adminToken(t))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)

		_, exists, _ := storer.Get(ctx, 1)
		assert.False(t, exists)
	})

	t.Run("Backend failure on list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, mockStorer := setupWithMockStore(t, ctrl)

		// given
		mockStorer.EXPECT().List(gomock.Any()).Return(nil, assert.AnError)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/book", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 500, response.Code)
	})
}

func TestLookupPrice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, _, storer, sut := setup(t, ctrl)

	created, _ := storer.Create(ctx, bookstore.Book{Title: "Clean Architecture", PriceInCents: 2550})

	price, exists, err := sut.LookupPrice(ctx, created.ID)
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int64(2550), price)

	_, exists, err = sut.LookupPrice(ctx, 42)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func adminToken(t *testing.T) string {
	token, err := auth.NewTokenizer("my_test_secret").GenerateToken("root", auth.RoleAdmin, mytime.RealNower{}.Now())
	assert.NoError(t, err)
	return token
}

func userToken(t *testing.T) string {
	token, err := auth.NewTokenizer("my_test_secret").GenerateToken("alice", auth.RoleUser, mytime.RealNower{}.Now())
	assert.NoError(t, err)
	return token
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, bookstore.BookStorer, *webService) {
	c := context.TODO()
	storer, _, err := bookstore.New(c)
	assert.NoError(t, err)

	guard := auth.NewGuard(auth.NewTokenizer("my_test_secret"))
	sut := NewWebService(storer, guard)
	router := mux.NewRouter()

	err = sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, storer, sut
}

func setupWithMockStore(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, *webService, *bookstore.MockBookStorer) {
	c := context.TODO()
	storer := bookstore.NewMockBookStorer(ctrl)

	guard := auth.NewGuard(auth.NewTokenizer("my_test_secret"))
	sut := NewWebService(storer, guard)
	router := mux.NewRouter()

	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, sut, storer
}
