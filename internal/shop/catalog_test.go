package shop_test

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymgs-pharma/storefront/internal/shop"
	"github.com/ymgs-pharma/storefront/pkg/api"
	"github.com/ymgs-pharma/storefront/pkg/pagination"
)

// stubBackend scripts the catalog endpoint so response ordering can be
// controlled; the remaining methods are unused in these tests.
type stubBackend struct {
	list func(ctx context.Context, req api.ListProductsRequest) (*api.ProductList, error)
}

func (s *stubBackend) ListProducts(ctx context.Context, req api.ListProductsRequest) (*api.ProductList, error) {
	return s.list(ctx, req)
}

func (s *stubBackend) GetProduct(context.Context, int64) (*api.Product, error) {
	panic("not scripted")
}

func (s *stubBackend) GetCart(context.Context) (*api.Cart, error) { panic("not scripted") }

func (s *stubBackend) AddCartItem(context.Context, api.AddCartItemRequest) (string, error) {
	panic("not scripted")
}

func (s *stubBackend) UpdateCartItem(context.Context, api.UpdateCartItemRequest) error {
	panic("not scripted")
}

func (s *stubBackend) ClearCart(context.Context) error { panic("not scripted") }

type noopNotifier struct{}

func (noopNotifier) Success(string) {}
func (noopNotifier) Warn(string)    {}
func (noopNotifier) Error(string)   {}

type noopNavigator struct{}

func (noopNavigator) NavigateTo(string) {}

func listOf(name string) *api.ProductList {
	return &api.ProductList{
		Products:   []api.Product{{ID: 1, Name: name}},
		Pagination: pagination.State{Total: 1, Pages: 1, CurrentPage: 1, Limit: 20},
	}
}

// A slow response that started before a newer fetch must never overwrite the
// newer fetch's result.
func TestStaleCatalogResponseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	var calls int32
	backend := &stubBackend{
		list: func(_ context.Context, _ api.ListProductsRequest) (*api.ProductList, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				<-release
				return listOf("stale"), nil
			}
			return listOf("fresh"), nil
		},
	}

	store, err := shop.NewStore(shop.Params{
		Backend:   backend,
		Session:   stubSession{},
		Notifier:  noopNotifier{},
		Navigator: noopNavigator{},
	})
	require.NoError(t, err)

	ctx := context.Background()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		store.ApplyFilters(ctx, shop.FilterPatch{})
	}()

	// Wait until the first fetch is parked inside the backend, then run a
	// second fetch to completion before releasing the first.
	for atomic.LoadInt32(&calls) == 0 {
		runtime.Gosched()
	}
	store.ApplyFilters(ctx, shop.FilterPatch{})
	close(release)
	wg.Wait()

	products := store.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "fresh", products[0].Name)
	assert.False(t, store.Loading())
}

type stubSession struct{}

func (stubSession) IsAuthenticated() bool { return false }
func (stubSession) ClearOn401() error     { return nil }
