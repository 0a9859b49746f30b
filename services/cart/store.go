package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MarcGrol/bookstorebackend/lib/mycache"
	"github.com/MarcGrol/bookstorebackend/lib/myerrors"
	"github.com/MarcGrol/bookstorebackend/lib/mylog"
)

const (
	// Upper bound on optimistic-locking retries before we give up and
	// report contention to the caller.
	maxSwapAttempts = 5

	storeCallTimeout = 2 * time.Second
)

// cartStore keeps one cart per user in the cache, serialized as a JSON
// array of book ids. Mutations never delete-and-recreate: they read the
// raw payload and compare-and-swap against those exact bytes, so a
// concurrent mutation makes the swap fail and the loop re-reads instead
// of overwriting.
type cartStore struct {
	cache        mycache.Cache
	ttl          time.Duration
	lenientReads bool
	logger       mylog.Logger
}

func newCartStore(cache mycache.Cache, ttl time.Duration, lenientReads bool, logger mylog.Logger) *cartStore {
	return &cartStore{
		cache:        cache,
		ttl:          ttl,
		lenientReads: lenientReads,
		logger:       logger,
	}
}

func (cs *cartStore) getCart(c context.Context, username string) ([]int64, error) {
	c, cancel := context.WithTimeout(c, storeCallTimeout)
	defer cancel()

	items, _, err := cs.readItems(c, username)
	if err != nil {
		if cs.lenientReads {
			cs.logger.Log(c, username, mylog.SeverityWarn, "Lenient read: serving empty cart for user %s: %s", username, err)
			return []int64{}, nil
		}
		return nil, err
	}

	return items, nil
}

func (cs *cartStore) addItem(c context.Context, username string, bookID int64) error {
	c, cancel := context.WithTimeout(c, storeCallTimeout)
	defer cancel()

	for attempt := 0; attempt < maxSwapAttempts; attempt++ {
		if err := c.Err(); err != nil {
			return myerrors.NewUnavailableError(fmt.Errorf("add to cart of user %s aborted: %s", username, err))
		}

		items, raw, err := cs.readItems(c, username)
		if err != nil {
			return err
		}

		if contains(items, bookID) {
			// Already there: nothing to swap
			return nil
		}

		swapped, err := cs.swapItems(c, username, raw, append(items, bookID))
		if err != nil {
			return err
		}
		if swapped {
			return nil
		}

		cs.logger.Log(c, username, mylog.SeverityDebug, "Concurrent cart change for user %s, re-reading (attempt %d)", username, attempt+1)
	}

	return myerrors.NewConflictError(fmt.Errorf("too much contention on cart of user %s", username))
}

func (cs *cartStore) removeItem(c context.Context, username string, bookID int64) error {
	c, cancel := context.WithTimeout(c, storeCallTimeout)
	defer cancel()

	for attempt := 0; attempt < maxSwapAttempts; attempt++ {
		if err := c.Err(); err != nil {
			return myerrors.NewUnavailableError(fmt.Errorf("remove from cart of user %s aborted: %s", username, err))
		}

		items, raw, err := cs.readItems(c, username)
		if err != nil {
			return err
		}

		if !contains(items, bookID) {
			// Nothing to remove
			return nil
		}

		// An empty cart is swapped in as "[]" rather than deleted:
		// a plain delete is unconditional and would discard items a
		// concurrent add just won the swap for.
		swapped, err := cs.swapItems(c, username, raw, remove(items, bookID))
		if err != nil {
			return err
		}
		if swapped {
			return nil
		}

		cs.logger.Log(c, username, mylog.SeverityDebug, "Concurrent cart change for user %s, re-reading (attempt %d)", username, attempt+1)
	}

	return myerrors.NewConflictError(fmt.Errorf("too much contention on cart of user %s", username))
}

func (cs *cartStore) clearCart(c context.Context, username string) error {
	c, cancel := context.WithTimeout(c, storeCallTimeout)
	defer cancel()

	err := cs.cache.Delete(c, cartKey(username))
	if err != nil {
		return myerrors.NewUnavailableError(fmt.Errorf("error clearing cart of user %s: %s", username, err))
	}

	return nil
}

// readItems returns the decoded cart together with the raw payload the
// next compare-and-swap must expect. raw is nil when no cart exists.
func (cs *cartStore) readItems(c context.Context, username string) ([]int64, []byte, error) {
	raw, exists, err := cs.cache.Get(c, cartKey(username), cs.ttl)
	if err != nil {
		return nil, nil, myerrors.NewUnavailableError(fmt.Errorf("error reading cart of user %s: %s", username, err))
	}
	if !exists {
		return []int64{}, nil, nil
	}

	items := []int64{}
	err = json.Unmarshal(raw, &items)
	if err != nil {
		return nil, nil, myerrors.NewInternalError(fmt.Errorf("error decoding cart of user %s: %s", username, err))
	}

	return items, raw, nil
}

func (cs *cartStore) swapItems(c context.Context, username string, expected []byte, items []int64) (bool, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return false, myerrors.NewInternalError(fmt.Errorf("error encoding cart of user %s: %s", username, err))
	}

	swapped, err := cs.cache.CompareAndSwap(c, cartKey(username), expected, payload, cs.ttl)
	if err != nil {
		return false, myerrors.NewUnavailableError(fmt.Errorf("error storing cart of user %s: %s", username, err))
	}

	return swapped, nil
}

func contains(items []int64, bookID int64) bool {
	for _, item := range items {
		if item == bookID {
			return true
		}
	}
	return false
}

func remove(items []int64, bookID int64) []int64 {
	remaining := []int64{}
	for _, item := range items {
		if item != bookID {
			remaining = append(remaining, item)
		}
	}
	return remaining
}
