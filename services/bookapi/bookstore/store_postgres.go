package bookstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTableStatement = `
	CREATE TABLE IF NOT EXISTS books (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		cover TEXT NOT NULL DEFAULT '',
		price_in_cents BIGINT NOT NULL
	)`

type postgresBookStore struct {
	pool *pgxpool.Pool
}

func newPostgresBookStore(c context.Context, databaseURL string) (*postgresBookStore, func(), error) {
	pool, err := pgxpool.New(c, databaseURL)
	if err != nil {
		return nil, func() {}, fmt.Errorf("error connecting to postgres: %s", err)
	}

	err = pool.Ping(c)
	if err != nil {
		pool.Close()
		return nil, func() {}, fmt.Errorf("error pinging postgres: %s", err)
	}

	_, err = pool.Exec(c, createTableStatement)
	if err != nil {
		pool.Close()
		return nil, func() {}, fmt.Errorf("error creating books table: %s", err)
	}

	return &postgresBookStore{pool: pool}, pool.Close, nil
}

func (s *postgresBookStore) Create(c context.Context, book Book) (Book, error) {
	err := s.pool.QueryRow(c, `
		INSERT INTO books (title, description, cover, price_in_cents)
		VALUES ($1,$2,$3,$4)
		RETURNING id
		`, book.Title, book.Description, book.Cover, book.PriceInCents).Scan(&book.ID)
	if err != nil {
		return book, fmt.Errorf("error inserting book: %s", err)
	}

	return book, nil
}

func (s *postgresBookStore) Update(c context.Context, book Book) (bool, error) {
	tag, err := s.pool.Exec(c, `
		UPDATE books
		SET title=$2, description=$3, cover=$4, price_in_cents=$5
		WHERE id=$1
		`, book.ID, book.Title, book.Description, book.Cover, book.PriceInCents)
	if err != nil {
		return false, fmt.Errorf("error updating book %d: %s", book.ID, err)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *postgresBookStore) Get(c context.Context, bookID int64) (Book, bool, error) {
	book := Book{}
	err := s.pool.QueryRow(c, `
		SELECT id, title, description, cover, price_in_cents
		FROM books
		WHERE id=$1
		`, bookID).Scan(&book.ID, &book.Title, &book.Description, &book.Cover, &book.PriceInCents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return book, false, nil
		}
		return book, false, fmt.Errorf("error fetching book %d: %s", bookID, err)
	}

	return book, true, nil
}

func (s *postgresBookStore) List(c context.Context) ([]Book, error) {
	rows, err := s.pool.Query(c, `
		SELECT id, title, description, cover, price_in_cents
		FROM books
		ORDER BY id
		`)
	if err != nil {
		return nil, fmt.Errorf("error listing books: %s", err)
	}
	defer rows.Close()

	books := []Book{}
	for rows.Next() {
		book := Book{}
		err = rows.Scan(&book.ID, &book.Title, &book.Description, &book.Cover, &book.PriceInCents)
		if err != nil {
			return nil, fmt.Errorf("error scanning book: %s", err)
		}
		books = append(books, book)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating books: %s", rows.Err())
	}

	return books, nil
}

func (s *postgresBookStore) Delete(c context.Context, bookID int64) (bool, error) {
	tag, err := s.pool.Exec(c, `DELETE FROM books WHERE id=$1`, bookID)
	if err != nil {
		return false, fmt.Errorf("error deleting book %d: %s", bookID, err)
	}

	return tag.RowsAffected() > 0, nil
}
