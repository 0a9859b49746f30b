package bookstore

import (
	"context"
	"sort"
	"sync"
)

type inMemoryBookStore struct {
	sync.Mutex
	books  map[int64]Book
	nextID int64
}

func newInMemoryBookStore(c context.Context) (*inMemoryBookStore, func(), error) {
	return &inMemoryBookStore{
		books:  map[int64]Book{},
		nextID: 1,
	}, func() {}, nil
}

func (s *inMemoryBookStore) Create(c context.Context, book Book) (Book, error) {
	s.Lock()
	defer s.Unlock()

	book.ID = s.nextID
	s.nextID++
	s.books[book.ID] = book

	return book, nil
}

func (s *inMemoryBookStore) Update(c context.Context, book Book) (bool, error) {
	s.Lock()
	defer s.Unlock()

	_, exists := s.books[book.ID]
	if !exists {
		return false, nil
	}
	s.books[book.ID] = book

	return true, nil
}

func (s *inMemoryBookStore) Get(c context.Context, bookID int64) (Book, bool, error) {
	s.Lock()
	defer s.Unlock()

	book, exists := s.books[bookID]

	return book, exists, nil
}

func (s *inMemoryBookStore) List(c context.Context) ([]Book, error) {
	s.Lock()
	defer s.Unlock()

	books := []Book{}
	for _, book := range s.books {
		books = append(books, book)
	}
	sort.Slice(books, func(i, j int) bool {
		return books[i].ID < books[j].ID
	})

	return books, nil
}

func (s *inMemoryBookStore) Delete(c context.Context, bookID int64) (bool, error) {
	s.Lock()
	defer s.Unlock()

	_, exists := s.books[bookID]
	delete(s.books, bookID)

	return exists, nil
}
