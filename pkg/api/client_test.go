package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymgs-pharma/storefront/pkg/api"
	"github.com/ymgs-pharma/storefront/pkg/api/apitest"
	pkgerrors "github.com/ymgs-pharma/storefront/pkg/errors"
)

func newClient(t *testing.T, backend *apitest.Backend, token string) *api.Client {
	t.Helper()
	client, err := api.NewClient(backend.URL(), api.WithTokenSource(api.TokenSourceFunc(func() string {
		return token
	})))
	require.NoError(t, err)
	return client
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := api.NewClient("")
	require.Error(t, err)
	_, err = api.NewClient("not a url")
	require.Error(t, err)
}

func TestAuthHeadersBothForms(t *testing.T) {
	var gotAuth, gotLegacy string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotLegacy = r.Header.Get("token")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"cart":{"items":[]}}`))
	}))
	defer srv.Close()

	client, err := api.NewClient(srv.URL, api.WithTokenSource(api.TokenSourceFunc(func() string {
		return "abc123"
	})))
	require.NoError(t, err)

	_, err = client.GetCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Token abc123", gotAuth)
	assert.Equal(t, "abc123", gotLegacy)
}

func TestListProductsDecodesPagination(t *testing.T) {
	backend := apitest.New(t)
	backend.SetProducts([]api.Product{
		{ID: 1, Name: "Vitamin C", Category: "OTC", Price: decimal.NewFromInt(10)},
		{ID: 2, Name: "Vitamin D", Category: "OTC", Price: decimal.NewFromInt(12)},
		{ID: 3, Name: "Aspirin", Category: "OTC", Price: decimal.NewFromInt(5)},
	})
	client := newClient(t, backend, "")

	list, err := client.ListProducts(context.Background(), api.ListProductsRequest{Limit: 2, Page: 1})
	require.NoError(t, err)
	assert.Len(t, list.Products, 2)
	assert.Equal(t, 3, list.Pagination.Total)
	assert.Equal(t, 2, list.Pagination.Pages)
	assert.Equal(t, 1, list.Pagination.CurrentPage)
}

func TestUnauthorizedMapsToTypedError(t *testing.T) {
	backend := apitest.New(t)
	client := newClient(t, backend, "wrong-token")

	_, err := client.GetCart(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsUnauthorized(err))
}

func TestBusinessErrorSurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"error":"coupon expired"}`))
	}))
	defer srv.Close()

	client, err := api.NewClient(srv.URL)
	require.NoError(t, err)

	_, err = client.VerifyCoupon(context.Background(), "SUMMER10", decimal.NewFromInt(40))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeBusiness, typed.Code())
	assert.Equal(t, "coupon expired", typed.Message())
}

func TestTransportErrorMapsToNetwork(t *testing.T) {
	client, err := api.NewClient("http://127.0.0.1:1")
	require.NoError(t, err)

	_, err = client.ListOrders(context.Background())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNetwork, typed.Code())
}

func TestCartItemLegacyNumericDecode(t *testing.T) {
	var item api.CartItem
	require.NoError(t, item.UnmarshalJSON([]byte(`3`)))
	assert.Equal(t, 3, item.Quantity)
	assert.False(t, item.IsPackage)

	require.NoError(t, item.UnmarshalJSON([]byte(`{"medicine":7,"quantity":2,"is_package":true,"selected_price":"45"}`)))
	assert.Equal(t, int64(7), item.Medicine)
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, item.IsPackage)
	require.NotNil(t, item.SelectedPrice)
	assert.True(t, item.SelectedPrice.Equal(decimal.NewFromInt(45)))
}
