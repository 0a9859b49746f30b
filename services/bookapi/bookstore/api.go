package bookstore

import (
	"context"
	"os"
)

type Book struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Cover        string `json:"cover"`
	PriceInCents int64  `json:"priceInCents"`
}

//go:generate mockgen -source=api.go -package bookstore -destination bookstore_mock.go BookStorer
type BookStorer interface {
	Create(c context.Context, book Book) (Book, error)
	Update(c context.Context, book Book) (bool, error)
	Get(c context.Context, bookID int64) (Book, bool, error)
	List(c context.Context) ([]Book, error)
	Delete(c context.Context, bookID int64) (bool, error)
}

func New(c context.Context) (BookStorer, func(), error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL != "" {
		return newPostgresBookStore(c, databaseURL)
	}
	return newInMemoryBookStore(c)
}
