package mystore

import (
	"context"
	"sync"
)

type inMemoryStore[T any] struct {
	sync.Mutex
	entities map[string]T
}

func newInMemoryStore[T any](c context.Context) (*inMemoryStore[T], func(), error) {
	return &inMemoryStore[T]{
		entities: make(map[string]T),
	}, func() {}, nil
}

func (s *inMemoryStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	// The store-wide lock is held for the duration of the transaction
	s.Lock()
	defer s.Unlock()

	ctx := context.WithValue(c, ctxTransactionKey{}, true)

	return f(ctx)
}

func (s *inMemoryStore[T]) Put(c context.Context, uid string, value T) error {
	if c.Value(ctxTransactionKey{}) == nil {
		s.Lock()
		defer s.Unlock()
	}

	s.entities[uid] = value

	return nil
}

func (s *inMemoryStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	if c.Value(ctxTransactionKey{}) == nil {
		s.Lock()
		defer s.Unlock()
	}

	result, exists := s.entities[uid]

	return result, exists, nil
}

func (s *inMemoryStore[T]) List(c context.Context) ([]T, error) {
	if c.Value(ctxTransactionKey{}) == nil {
		s.Lock()
		defer s.Unlock()
	}

	result := make([]T, 0, len(s.entities))
	for _, v := range s.entities {
		result = append(result, v)
	}

	return result, nil
}

func (s *inMemoryStore[T]) Delete(c context.Context, uid string) error {
	if c.Value(ctxTransactionKey{}) == nil {
		s.Lock()
		defer s.Unlock()
	}

	delete(s.entities, uid)

	return nil
}
