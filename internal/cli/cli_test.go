package cli_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymgs-pharma/storefront/internal/cli"
	"github.com/ymgs-pharma/storefront/internal/dashboard"
	"github.com/ymgs-pharma/storefront/internal/localstore"
	"github.com/ymgs-pharma/storefront/internal/session"
	"github.com/ymgs-pharma/storefront/internal/shop"
	"github.com/ymgs-pharma/storefront/internal/theme"
	"github.com/ymgs-pharma/storefront/pkg/api"
	"github.com/ymgs-pharma/storefront/pkg/api/apitest"
	"github.com/ymgs-pharma/storefront/pkg/enums"
)

func newApp(t *testing.T) (*cli.App, *apitest.Backend, *bytes.Buffer) {
	t.Helper()

	backend := apitest.New(t)
	backend.SetProducts([]api.Product{
		{ID: 1, Name: "Paracetamol", Price: decimal.NewFromInt(10), Category: "otc", MinOrderQuantity: 1},
		{ID: 2, Name: "Vitamin C", Price: decimal.NewFromInt(8), Category: "vitamins", Bestseller: true, MinOrderQuantity: 1},
	})

	store, err := localstore.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	sess, err := session.NewManager(store)
	require.NoError(t, err)

	themeManager, err := theme.NewManager(theme.Params{
		Store:  store,
		Source: theme.SchemeSourceFunc(func() enums.Theme { return enums.ThemeLight }),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = themeManager.Close() })

	client, err := api.NewClient(backend.URL(), api.WithTokenSource(sess))
	require.NoError(t, err)

	out := &bytes.Buffer{}
	surfaces := cli.BuildSurfaces(themeManager, out)
	shopStore, err := shop.NewStore(shop.Params{
		Backend:   client,
		Session:   sess,
		Notifier:  surfaces.Notifier,
		Navigator: surfaces.Navigator,
		PageSize:  20,
	})
	require.NoError(t, err)

	admin, err := dashboard.NewAdminService(client, sess, nil)
	require.NoError(t, err)
	pharmacy, err := dashboard.NewPharmacyService(client, sess, nil)
	require.NoError(t, err)
	delivery, err := dashboard.NewDeliveryService(client, sess, nil)
	require.NoError(t, err)

	app, err := cli.New(cli.Deps{
		Client:   client,
		Session:  sess,
		Theme:    themeManager,
		Shop:     shopStore,
		Admin:    admin,
		Pharmacy: pharmacy,
		Delivery: delivery,
		Out:      out,
	})
	require.NoError(t, err)
	return app, backend, out
}

func run(t *testing.T, app *cli.App, args ...string) error {
	t.Helper()
	root := app.Root()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.Execute()
}

func TestBrowseListsCatalog(t *testing.T) {
	app, _, out := newApp(t)
	require.NoError(t, run(t, app, "browse"))
	assert.Contains(t, out.String(), "Paracetamol")
	assert.Contains(t, out.String(), "page 1 of 1")
}

func TestBrowseWithSearch(t *testing.T) {
	app, _, out := newApp(t)
	require.NoError(t, run(t, app, "browse", "--search", "vitamin"))
	assert.Contains(t, out.String(), "Vitamin C")
	assert.NotContains(t, out.String(), "Paracetamol")
}

func TestBrowseRejectsUnknownSort(t *testing.T) {
	app, _, _ := newApp(t)
	assert.Error(t, run(t, app, "browse", "--sort", "popularity"))
}

func TestProductDetail(t *testing.T) {
	app, _, out := newApp(t)
	require.NoError(t, run(t, app, "product", "2"))
	assert.Contains(t, out.String(), "Vitamin C")
	assert.Contains(t, out.String(), "8.00")
}

func TestCartAddWithoutLoginHints(t *testing.T) {
	app, backend, out := newApp(t)
	require.NoError(t, run(t, app, "cart", "add", "1", "--qty", "2"))
	assert.Contains(t, out.String(), "ymgs login")
	assert.Empty(t, backend.CartSnapshot())
}

func TestLoginThenCartFlow(t *testing.T) {
	app, backend, out := newApp(t)

	require.NoError(t, run(t, app, "login", "--email", "user@example.com", "--password", "secret123"))
	assert.Contains(t, out.String(), "logged in as user@example.com")

	require.NoError(t, run(t, app, "cart", "add", "1", "--qty", "2"))
	require.Contains(t, backend.CartSnapshot(), int64(1))

	out.Reset()
	require.NoError(t, run(t, app, "cart", "show"))
	assert.Contains(t, out.String(), "2x Paracetamol")
	assert.Contains(t, out.String(), "total 20.00")
}

func TestThemeCommand(t *testing.T) {
	app, _, out := newApp(t)

	require.NoError(t, run(t, app, "theme"))
	assert.Contains(t, out.String(), "mode: light")

	out.Reset()
	require.NoError(t, run(t, app, "theme", "dark"))
	assert.Contains(t, out.String(), "theme set to dark")

	assert.Error(t, run(t, app, "theme", "sepia"))
}

func TestWhoami(t *testing.T) {
	app, _, out := newApp(t)
	require.NoError(t, run(t, app, "whoami"))
	assert.Contains(t, out.String(), "not logged in")
}
