package shop_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymgs-pharma/storefront/internal/localstore"
	"github.com/ymgs-pharma/storefront/internal/session"
	"github.com/ymgs-pharma/storefront/internal/shop"
	"github.com/ymgs-pharma/storefront/pkg/api"
	"github.com/ymgs-pharma/storefront/pkg/api/apitest"
	"github.com/ymgs-pharma/storefront/pkg/enums"
)

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	warns     []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Warn(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warns = append(n.warns, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) NavigateTo(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}

type fixture struct {
	store    *shop.Store
	backend  *apitest.Backend
	session  *session.Manager
	local    *localstore.Store
	notifier *recordingNotifier
	nav      *recordingNavigator
}

func newFixture(t *testing.T, authenticated bool, pageSize int) *fixture {
	t.Helper()

	backend := apitest.New(t)
	local, err := localstore.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close() })

	sess, err := session.NewManager(local)
	require.NoError(t, err)
	if authenticated {
		require.NoError(t, sess.BeginLogin())
		require.NoError(t, sess.CompleteLogin(backend.Token(), api.UserProfile{
			ID: 1, Email: "user@example.com", Role: enums.RoleCustomer,
		}))
	}

	client, err := api.NewClient(backend.URL(), api.WithTokenSource(sess))
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	nav := &recordingNavigator{}
	store, err := shop.NewStore(shop.Params{
		Backend:   client,
		Session:   sess,
		Notifier:  notifier,
		Navigator: nav,
		PageSize:  pageSize,
	})
	require.NoError(t, err)

	return &fixture{
		store:    store,
		backend:  backend,
		session:  sess,
		local:    local,
		notifier: notifier,
		nav:      nav,
	}
}

func price(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func sampleCatalog() []api.Product {
	return []api.Product{
		{ID: 1, Name: "Paracetamol", Price: price(10), Category: "otc", MinOrderQuantity: 1},
		{ID: 2, Name: "Ibuprofen", Price: price(15), Category: "otc", MinOrderQuantity: 1},
		{ID: 3, Name: "Vitamin C", Price: price(8), Category: "vitamins", MinOrderQuantity: 1, Bestseller: true},
	}
}

func TestFilterChangeResetsToFirstPage(t *testing.T) {
	f := newFixture(t, false, 2)
	f.backend.SetProducts(sampleCatalog())
	ctx := context.Background()

	f.store.ApplyFilters(ctx, shop.FilterPatch{})
	require.Equal(t, 2, f.store.Pagination().Pages)

	f.store.GotoPage(ctx, 2)
	require.Equal(t, 2, f.store.Pagination().CurrentPage)

	search := "vitamin"
	f.store.ApplyFilters(ctx, shop.FilterPatch{Search: &search})
	assert.Equal(t, 1, f.store.Pagination().CurrentPage)
	require.Len(t, f.store.Products(), 1)
	assert.Equal(t, "Vitamin C", f.store.Products()[0].Name)
}

func TestCategoryFilterAndPagination(t *testing.T) {
	f := newFixture(t, false, 2)
	f.backend.SetProducts(sampleCatalog())
	ctx := context.Background()

	category := []string{"otc", "vitamins"}
	f.store.ApplyFilters(ctx, shop.FilterPatch{Category: &category})

	window := f.store.Pagination()
	assert.Equal(t, 3, window.Total)
	assert.Equal(t, 2, window.Pages)
	assert.Equal(t, 1, window.CurrentPage)
	require.Len(t, f.store.Products(), 2)

	f.store.GotoPage(ctx, 2)
	require.Len(t, f.store.Products(), 1)
	assert.Equal(t, int64(3), f.store.Products()[0].ID)
}

func TestGotoPageOutOfRangeIsNoOp(t *testing.T) {
	f := newFixture(t, false, 2)
	f.backend.SetProducts(sampleCatalog())
	ctx := context.Background()

	f.store.ApplyFilters(ctx, shop.FilterPatch{})
	served := f.backend.ListCalls()

	f.store.GotoPage(ctx, 0)
	f.store.GotoPage(ctx, f.store.Pagination().Pages+1)

	assert.Equal(t, served, f.backend.ListCalls())
	assert.Equal(t, 1, f.store.Pagination().CurrentPage)
}

func TestFailedFetchKeepsPreviousList(t *testing.T) {
	f := newFixture(t, false, 2)
	f.backend.SetProducts(sampleCatalog())
	ctx := context.Background()

	f.store.ApplyFilters(ctx, shop.FilterPatch{})
	before := f.store.Products()
	require.NotEmpty(t, before)

	f.backend.Server.Close()
	f.store.GotoPage(ctx, 2)

	assert.Equal(t, before, f.store.Products())
	assert.NotEmpty(t, f.notifier.errors)
}

func TestLoadProductsInitialFetchesBestsellers(t *testing.T) {
	f := newFixture(t, false, 2)
	f.backend.SetProducts(sampleCatalog())

	f.store.LoadProducts(context.Background(), true)

	featured := f.store.Featured()
	require.Len(t, featured, 1)
	assert.Equal(t, "Vitamin C", featured[0].Name)
}

func TestAddToCartRequiresLogin(t *testing.T) {
	f := newFixture(t, false, 2)
	f.backend.SetProducts(sampleCatalog())
	ctx := context.Background()
	f.store.ApplyFilters(ctx, shop.FilterPatch{})

	ok := f.store.AddToCart(ctx, 1, shop.CartEntry{Quantity: 2})

	assert.False(t, ok)
	assert.Equal(t, shop.LoginPath, f.nav.last())
	assert.Zero(t, f.store.CartCount())
	assert.Empty(t, f.backend.CartSnapshot())
}

func TestAddToCartPersistsAndNotifies(t *testing.T) {
	f := newFixture(t, true, 20)
	f.backend.SetProducts(sampleCatalog())
	ctx := context.Background()
	f.store.ApplyFilters(ctx, shop.FilterPatch{})

	ok := f.store.AddToCart(ctx, 1, shop.CartEntry{Quantity: 2})

	assert.True(t, ok)
	assert.Equal(t, 2, f.store.CartCount())
	assert.Equal(t, 1, f.store.CartLineCount())
	require.Contains(t, f.backend.CartSnapshot(), int64(1))
	assert.Equal(t, 2, f.backend.CartSnapshot()[1].Quantity)
	assert.Contains(t, f.notifier.successes, "item added to cart")
}

func TestAddToCartClampsToMinimumOrderQuantity(t *testing.T) {
	f := newFixture(t, true, 20)
	f.backend.SetProducts([]api.Product{
		{ID: 5, Name: "Amoxicillin", Price: price(12), Category: "prescription", MinOrderQuantity: 5},
	})
	ctx := context.Background()
	f.store.ApplyFilters(ctx, shop.FilterPatch{})

	ok := f.store.AddToCart(ctx, 5, shop.CartEntry{Quantity: 2})

	assert.True(t, ok)
	assert.Equal(t, 5, f.store.CartCount())
	assert.Equal(t, 5, f.backend.CartSnapshot()[5].Quantity)
	require.NotEmpty(t, f.notifier.warns)
	assert.Contains(t, f.notifier.warns[0], "5")
}

func TestCartAmountMultipliesRegularLines(t *testing.T) {
	f := newFixture(t, true, 20)
	f.backend.SetProducts(sampleCatalog())
	ctx := context.Background()
	f.store.ApplyFilters(ctx, shop.FilterPatch{})

	require.True(t, f.store.AddToCart(ctx, 1, shop.CartEntry{Quantity: 2}))

	assert.Equal(t, "20.00", f.store.CartAmount().StringFixed(2))
	assert.Equal(t, "20.00", f.store.ItemTotal(1).StringFixed(2))
}

func TestCartAmountUsesFixedPackagePrice(t *testing.T) {
	f := newFixture(t, true, 20)
	f.backend.SetProducts(sampleCatalog())
	ctx := context.Background()
	f.store.ApplyFilters(ctx, shop.FilterPatch{})

	packagePrice := price(45)
	require.True(t, f.store.AddToCart(ctx, 2, shop.CartEntry{
		Quantity:      3,
		SelectedPrice: &packagePrice,
		IsPackage:     true,
	}))

	assert.Equal(t, "45.00", f.store.CartAmount().StringFixed(2))
	assert.Equal(t, "45.00", f.store.ItemTotal(2).StringFixed(2))
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	f := newFixture(t, true, 20)
	f.backend.SetProducts(sampleCatalog())
	ctx := context.Background()
	f.store.ApplyFilters(ctx, shop.FilterPatch{})

	require.True(t, f.store.AddToCart(ctx, 1, shop.CartEntry{Quantity: 2}))
	f.store.UpdateQuantity(ctx, 1, shop.CartEntry{Quantity: 0})

	assert.Zero(t, f.store.CartCount())
	assert.Zero(t, f.store.CartLineCount())
	assert.Empty(t, f.backend.CartSnapshot())
}

func TestClearCartEmptiesBothSides(t *testing.T) {
	f := newFixture(t, true, 20)
	f.backend.SetProducts(sampleCatalog())
	ctx := context.Background()
	f.store.ApplyFilters(ctx, shop.FilterPatch{})

	require.True(t, f.store.AddToCart(ctx, 1, shop.CartEntry{Quantity: 2}))
	require.True(t, f.store.AddToCart(ctx, 2, shop.CartEntry{Quantity: 1}))

	f.store.ClearCart(ctx)

	assert.Zero(t, f.store.CartCount())
	assert.Empty(t, f.backend.CartSnapshot())
}

func TestLoadUserCartSkipsEmptyLines(t *testing.T) {
	f := newFixture(t, true, 20)
	f.backend.SetProducts(sampleCatalog())
	f.backend.SeedCart([]api.CartItem{
		{Medicine: 1, Quantity: 2},
		{Medicine: 2, Quantity: 0},
	})
	ctx := context.Background()
	f.store.ApplyFilters(ctx, shop.FilterPatch{})

	f.store.LoadUserCart(ctx)

	assert.Equal(t, 2, f.store.CartCount())
	assert.Equal(t, 1, f.store.CartLineCount())
	lines := f.store.CartItems()
	require.Len(t, lines, 1)
	assert.Equal(t, "Paracetamol", lines[0].Name)
	assert.Equal(t, "20.00", lines[0].Total.StringFixed(2))
}

func TestRejectedTokenDestroysSessionAndCart(t *testing.T) {
	f := newFixture(t, true, 20)
	f.backend.SetProducts(sampleCatalog())
	ctx := context.Background()
	f.store.ApplyFilters(ctx, shop.FilterPatch{})
	require.True(t, f.store.AddToCart(ctx, 1, shop.CartEntry{Quantity: 2}))

	f.backend.FailNextWith(401)
	ok := f.store.AddToCart(ctx, 2, shop.CartEntry{Quantity: 1})

	assert.False(t, ok)
	assert.False(t, f.session.IsAuthenticated())
	assert.Zero(t, f.store.CartCount())
	assert.Equal(t, shop.LoginPath, f.nav.last())

	_, err := f.local.Get(localstore.KeyToken)
	assert.ErrorIs(t, err, localstore.ErrNotFound)
	_, err = f.local.Get(localstore.KeyUser)
	assert.ErrorIs(t, err, localstore.ErrNotFound)
}

func TestBusinessErrorSurfacesServerMessage(t *testing.T) {
	f := newFixture(t, true, 20)
	f.backend.SetProducts(sampleCatalog())
	ctx := context.Background()
	f.store.ApplyFilters(ctx, shop.FilterPatch{})

	f.backend.FailNextWith(400)
	ok := f.store.AddToCart(ctx, 1, shop.CartEntry{Quantity: 1})

	assert.False(t, ok)
	require.NotEmpty(t, f.notifier.errors)
	assert.Equal(t, "forced failure", f.notifier.errors[len(f.notifier.errors)-1])
}

func TestRelatedProductsExcludesCurrent(t *testing.T) {
	f := newFixture(t, false, 20)
	f.backend.SetProducts([]api.Product{
		{ID: 1, Name: "Aspirin", Price: price(5), Category: "otc"},
		{ID: 2, Name: "Ibuprofen", Price: price(7), Category: "otc"},
		{ID: 3, Name: "Vitamin D", Price: price(9), Category: "vitamins"},
	})

	related := f.store.RelatedProducts(context.Background(), "otc", "", 1, 4)

	require.Len(t, related, 1)
	assert.Equal(t, int64(2), related[0].ID)
}

func TestProductByIDFallsBackToDetailFetch(t *testing.T) {
	f := newFixture(t, false, 20)
	f.backend.SetProducts(sampleCatalog())

	product := f.store.ProductByID(context.Background(), 3)

	require.NotNil(t, product)
	assert.Equal(t, "Vitamin C", product.Name)

	missing := f.store.ProductByID(context.Background(), 999)
	assert.Nil(t, missing)
	assert.NotEmpty(t, f.notifier.errors)
}
