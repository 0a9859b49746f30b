package mystore

import (
	"context"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/datastore"
)

type gcloudStore[T any] struct {
	client *datastore.Client
	kind   string
}

func newGcloudStore[T any](c context.Context) (*gcloudStore[T], func(), error) {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	client, err := datastore.NewClient(c, projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating datastore-client: %s", err)
	}

	// Derive the datastore kind from the type name
	val := new(T)
	kind := fmt.Sprintf("%T", *val)
	if strings.Contains(kind, ".") {
		kind = strings.Split(kind, ".")[1]
	}

	return &gcloudStore[T]{
			client: client,
			kind:   kind,
		}, func() {
			client.Close()
		}, nil
}

func (s *gcloudStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	// The datastore client retries on transaction conflicts: f must be idempotent
	_, err := s.client.RunInTransaction(c, func(tx *datastore.Transaction) error {
		return f(context.WithValue(c, ctxTransactionKey{}, tx))
	})
	if err != nil {
		return err
	}

	return nil
}

func (s *gcloudStore[T]) Put(c context.Context, uid string, value T) error {
	if tx, ok := c.Value(ctxTransactionKey{}).(*datastore.Transaction); ok {
		_, err := tx.Put(datastore.NameKey(s.kind, uid, nil), &value)
		if err != nil {
			return fmt.Errorf("error transactionally storing entity %s with uid %s: %s", s.kind, uid, err)
		}
		return nil
	}

	_, err := s.client.Put(c, datastore.NameKey(s.kind, uid, nil), &value)
	if err != nil {
		return fmt.Errorf("error storing entity %s with uid %s: %s", s.kind, uid, err)
	}

	return nil
}

func (s *gcloudStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	value := new(T)

	var err error
	if tx, ok := c.Value(ctxTransactionKey{}).(*datastore.Transaction); ok {
		err = tx.Get(datastore.NameKey(s.kind, uid, nil), value)
	} else {
		err = s.client.Get(c, datastore.NameKey(s.kind, uid, nil), value)
	}
	if err != nil {
		if err == datastore.ErrNoSuchEntity {
			return *value, false, nil
		}
		return *value, false, fmt.Errorf("error fetching entity %s with uid %s: %s", s.kind, uid, err)
	}

	return *value, true, nil
}

func (s *gcloudStore[T]) List(c context.Context) ([]T, error) {
	entities := []T{}

	q := datastore.NewQuery(s.kind).Limit(100)
	if tx, ok := c.Value(ctxTransactionKey{}).(*datastore.Transaction); ok {
		q = q.Transaction(tx)
	}

	_, err := s.client.GetAll(c, q, &entities)
	if err != nil {
		return nil, fmt.Errorf("error fetching all entities %s: %s", s.kind, err)
	}

	return entities, nil
}

func (s *gcloudStore[T]) Delete(c context.Context, uid string) error {
	var err error
	if tx, ok := c.Value(ctxTransactionKey{}).(*datastore.Transaction); ok {
		err = tx.Delete(datastore.NameKey(s.kind, uid, nil))
	} else {
		err = s.client.Delete(c, datastore.NameKey(s.kind, uid, nil))
	}
	if err != nil && err != datastore.ErrNoSuchEntity {
		return fmt.Errorf("error deleting entity %s with uid %s: %s", s.kind, uid, err)
	}

	return nil
}
