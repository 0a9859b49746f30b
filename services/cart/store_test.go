package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/bookstorebackend/lib/mycache"
	"github.com/MarcGrol/bookstorebackend/lib/myerrors"
	"github.com/MarcGrol/bookstorebackend/lib/mylog"
	"github.com/MarcGrol/bookstorebackend/lib/mytime"
)

const cartTTL = time.Hour

func TestCartStore(t *testing.T) {
	c := context.TODO()

	t.Run("Get cart of new user", func(t *testing.T) {
		store := newStore(false)

		items, err := store.getCart(c, "alice")
		assert.NoError(t, err)
		assert.Equal(t, []int64{}, items)
	})

	t.Run("Add is idempotent", func(t *testing.T) {
		store := newStore(false)

		assert.NoError(t, store.addItem(c, "alice", 7))
		assert.NoError(t, store.addItem(c, "alice", 9))
		assert.NoError(t, store.addItem(c, "alice", 7))

		items, err := store.getCart(c, "alice")
		assert.NoError(t, err)
		assert.Equal(t, []int64{7, 9}, items)
	})

	t.Run("Remove is idempotent", func(t *testing.T) {
		store := newStore(false)

		assert.NoError(t, store.addItem(c, "alice", 7))
		assert.NoError(t, store.removeItem(c, "alice", 7))
		assert.NoError(t, store.removeItem(c, "alice", 7))
		assert.NoError(t, store.removeItem(c, "alice", 42))

		items, err := store.getCart(c, "alice")
		assert.NoError(t, err)
		assert.Equal(t, []int64{}, items)
	})

	t.Run("Carts are per user", func(t *testing.T) {
		store := newStore(false)

		assert.NoError(t, store.addItem(c, "alice", 7))
		assert.NoError(t, store.addItem(c, "bob", 9))

		items, _ := store.getCart(c, "alice")
		assert.Equal(t, []int64{7}, items)
		items, _ = store.getCart(c, "bob")
		assert.Equal(t, []int64{9}, items)
	})

	t.Run("Clear cart", func(t *testing.T) {
		store := newStore(false)

		assert.NoError(t, store.addItem(c, "alice", 7))
		assert.NoError(t, store.clearCart(c, "alice"))
		assert.NoError(t, store.clearCart(c, "alice"))

		items, err := store.getCart(c, "alice")
		assert.NoError(t, err)
		assert.Equal(t, []int64{}, items)
	})

	t.Run("Concurrent adds do not lose updates", func(t *testing.T) {
		store := newStore(false)

		const goroutines = 50
		var wg sync.WaitGroup
		wg.Add(goroutines)
		for i := 0; i < goroutines; i++ {
			go func(bookID int64) {
				defer wg.Done()
				for {
					err := store.addItem(c, "alice", bookID)
					if err == nil {
						return
					}
					// Contention is the only acceptable failure here
					assert.True(t, myerrors.IsConflictError(err))
				}
			}(int64(i + 1))
		}
		wg.Wait()

		items, err := store.getCart(c, "alice")
		assert.NoError(t, err)
		assert.Len(t, items, goroutines)
	})
}

func TestCartStoreFailures(t *testing.T) {
	c := context.TODO()

	t.Run("Exhausted retries report contention", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cache := mycache.NewMockCache(ctrl)
		store := newCartStore(cache, cartTTL, false, mylog.New("carttest"))

		cache.EXPECT().Get(gomock.Any(), cartKey("alice"), cartTTL).Return(nil, false, nil).Times(maxSwapAttempts)
		cache.EXPECT().CompareAndSwap(gomock.Any(), cartKey("alice"), nil, gomock.Any(), cartTTL).Return(false, nil).Times(maxSwapAttempts)

		err := store.addItem(c, "alice", 7)
		assert.Error(t, err)
		assert.True(t, myerrors.IsConflictError(err))
		assert.Equal(t, 409, myerrors.GetHTTPStatus(err))
	})

	t.Run("Backend failure on read is not an empty cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cache := mycache.NewMockCache(ctrl)
		store := newCartStore(cache, cartTTL, false, mylog.New("carttest"))

		cache.EXPECT().Get(gomock.Any(), cartKey("alice"), cartTTL).Return(nil, false, assert.AnError)

		_, err := store.getCart(c, "alice")
		assert.Error(t, err)
		assert.Equal(t, 503, myerrors.GetHTTPStatus(err))
	})

	t.Run("Lenient reads serve empty cart on backend failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cache := mycache.NewMockCache(ctrl)
		store := newCartStore(cache, cartTTL, true, mylog.New("carttest"))

		cache.EXPECT().Get(gomock.Any(), cartKey("alice"), cartTTL).Return(nil, false, assert.AnError)

		items, err := store.getCart(c, "alice")
		assert.NoError(t, err)
		assert.Equal(t, []int64{}, items)
	})

	t.Run("Lenient reads never mask write failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cache := mycache.NewMockCache(ctrl)
		store := newCartStore(cache, cartTTL, true, mylog.New("carttest"))

		cache.EXPECT().Get(gomock.Any(), cartKey("alice"), cartTTL).Return(nil, false, assert.AnError)

		err := store.addItem(c, "alice", 7)
		assert.Error(t, err)
		assert.Equal(t, 503, myerrors.GetHTTPStatus(err))
	})

	t.Run("Backend failure on swap", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cache := mycache.NewMockCache(ctrl)
		store := newCartStore(cache, cartTTL, false, mylog.New("carttest"))

		cache.EXPECT().Get(gomock.Any(), cartKey("alice"), cartTTL).Return(nil, false, nil)
		cache.EXPECT().CompareAndSwap(gomock.Any(), cartKey("alice"), nil, gomock.Any(), cartTTL).Return(false, assert.AnError)

		err := store.addItem(c, "alice", 7)
		assert.Error(t, err)
		assert.Equal(t, 503, myerrors.GetHTTPStatus(err))
	})

	t.Run("Cancelled context stops retrying", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cache := mycache.NewMockCache(ctrl)
		store := newCartStore(cache, cartTTL, false, mylog.New("carttest"))

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		err := store.addItem(cancelled, "alice", 7)
		assert.Error(t, err)
		assert.Equal(t, 503, myerrors.GetHTTPStatus(err))
	})

	t.Run("Corrupt payload is reported", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cache := mycache.NewMockCache(ctrl)
		store := newCartStore(cache, cartTTL, false, mylog.New("carttest"))

		cache.EXPECT().Get(gomock.Any(), cartKey("alice"), cartTTL).Return([]byte("not json"), true, nil)

		_, err := store.getCart(c, "alice")
		assert.Error(t, err)
		assert.Equal(t, 500, myerrors.GetHTTPStatus(err))
	})
}

func newStore(lenientReads bool) *cartStore {
	return newCartStore(mycache.NewInMemoryCache(mytime.RealNower{}), cartTTL, lenientReads, mylog.New("carttest"))
}
