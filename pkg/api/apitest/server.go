// Package apitest hosts an in-memory stand-in for the storefront backend so
// client packages can run against real HTTP without a server deployment.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ymgs-pharma/storefront/pkg/api"
	"github.com/ymgs-pharma/storefront/pkg/pagination"
)

// Backend is a fake storefront API with just enough behavior for tests:
// filtered/paginated product listing, an in-memory cart, login, and the
// dashboard endpoints answering canned data.
type Backend struct {
	Server *httptest.Server

	mu           sync.Mutex
	products     []api.Product
	cart         map[int64]api.CartItem
	orders       []api.Order
	pharmacies   []api.Pharmacy
	token        string
	profile      api.UserProfile
	failNextWith int
	listCalls    int
}

// New starts the fake backend; it shuts down with the test.
func New(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{
		cart:  map[int64]api.CartItem{},
		token: "test-token",
		profile: api.UserProfile{
			ID:    1,
			Email: "user@example.com",
			Role:  "customer",
		},
	}

	r := chi.NewRouter()
	r.Post("/product/user/list", b.handleProductList)
	r.Get("/product/{id}", b.handleProductDetail)
	r.Get("/cart", b.requireAuth(b.handleGetCart))
	r.Post("/cart/add", b.requireAuth(b.handleAddCart))
	r.Post("/cart/update", b.requireAuth(b.handleUpdateCart))
	r.Delete("/cart/clear", b.requireAuth(b.handleClearCart))
	r.Post("/login", b.handleLogin)
	r.Get("/orders", b.requireAuth(b.handleOrders))
	r.Get("/delivery/orders", b.requireAuth(b.handleOrders))
	r.Get("/admin/orders", b.requireAuth(b.handleOrders))
	r.Get("/admin/pharmacies", b.requireAuth(b.handlePharmacies))
	r.Post("/admin/pharmacy/{id}/verify", b.requireAuth(b.handleOK))
	r.Post("/admin/pharmacy/{id}/approve", b.requireAuth(b.handleOK))
	r.Post("/admin/order/{id}/status", b.requireAuth(b.handleOK))
	r.Post("/delivery/order/{id}/status", b.requireAuth(b.handleOK))
	r.Post("/pharmacy/products/import", b.requireAuth(b.handleImport))
	r.Post("/order/place", b.requireAuth(b.handlePlaceOrder))
	r.Post("/order/guest", b.handlePlaceOrder)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "no such endpoint"})
	})

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the backend base URL.
func (b *Backend) URL() string { return b.Server.URL }

// Token returns the token the fake accepts.
func (b *Backend) Token() string { return b.token }

// SetProducts replaces the catalog.
func (b *Backend) SetProducts(products []api.Product) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.products = products
}

// SetOrders replaces the canned order list.
func (b *Backend) SetOrders(orders []api.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders = orders
}

// SetPharmacies replaces the canned pharmacy list.
func (b *Backend) SetPharmacies(pharmacies []api.Pharmacy) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pharmacies = pharmacies
}

// SeedCart preloads the server-side cart.
func (b *Backend) SeedCart(items []api.CartItem) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cart = map[int64]api.CartItem{}
	for _, item := range items {
		b.cart[item.Medicine] = item
	}
}

// FailNextWith makes the next authenticated call answer with the status code
// regardless of the token, then resets.
func (b *Backend) FailNextWith(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failNextWith = status
}

// ListCalls reports how many catalog queries the backend served.
func (b *Backend) ListCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.listCalls
}

// CartSnapshot copies the current server-side cart.
func (b *Backend) CartSnapshot() map[int64]api.CartItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	snapshot := make(map[int64]api.CartItem, len(b.cart))
	for id, item := range b.cart {
		snapshot[id] = item
	}
	return snapshot
}

func (b *Backend) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		forced := b.failNextWith
		b.failNextWith = 0
		token := b.token
		b.mu.Unlock()

		if forced != 0 {
			writeJSON(w, forced, map[string]any{"success": false, "error": "forced failure"})
			return
		}
		got := strings.TrimPrefix(r.Header.Get("Authorization"), "Token ")
		if got == "" {
			got = r.Header.Get("token")
		}
		if got != token {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "invalid token"})
			return
		}
		next(w, r)
	}
}

func (b *Backend) handleProductList(w http.ResponseWriter, r *http.Request) {
	var req api.ListProductsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "bad body"})
		return
	}

	b.mu.Lock()
	b.listCalls++
	catalog := slices.Clone(b.products)
	b.mu.Unlock()

	matched := make([]api.Product, 0, len(catalog))
	for _, p := range catalog {
		if req.Bestseller && !p.Bestseller {
			continue
		}
		if req.ExcludeID != 0 && p.ID == req.ExcludeID {
			continue
		}
		if len(req.Category) > 0 && !slices.Contains(req.Category, p.Category) {
			continue
		}
		if len(req.SubCategory) > 0 && !slices.Contains(req.SubCategory, p.SubCategory) {
			continue
		}
		if req.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(req.Search)) {
			continue
		}
		matched = append(matched, p)
	}

	limit := pagination.NormalizeLimit(req.Limit)
	page := req.Page
	if page < 1 {
		page = 1
	}
	pages := (len(matched) + limit - 1) / limit
	start := (page - 1) * limit
	end := min(start+limit, len(matched))
	pageItems := []api.Product{}
	if start < len(matched) {
		pageItems = matched[start:end]
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"products": pageItems,
		"pagination": pagination.State{
			Total:       len(matched),
			Pages:       pages,
			CurrentPage: page,
			Limit:       limit,
		},
	})
}

func (b *Backend) handleProductDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "bad id"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.products {
		if p.ID == id {
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "product": p})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "product not found"})
}

func (b *Backend) handleGetCart(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	items := make([]api.CartItem, 0, len(b.cart))
	for _, item := range b.cart {
		items = append(items, item)
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "cart": map[string]any{"items": items}})
}

func (b *Backend) handleAddCart(w http.ResponseWriter, r *http.Request) {
	var req api.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "bad body"})
		return
	}
	b.mu.Lock()
	b.cart[req.MedicineID] = api.CartItem{
		Medicine:       req.MedicineID,
		Quantity:       req.Quantity,
		SelectedPrice:  req.SelectedPrice,
		IsPackage:      req.IsPackage,
		PackageDetails: req.PackageDetails,
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "item added to cart"})
}

func (b *Backend) handleUpdateCart(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "bad body"})
		return
	}
	b.mu.Lock()
	if req.CartData.Quantity <= 0 {
		delete(b.cart, req.ItemID)
	} else {
		b.cart[req.ItemID] = api.CartItem{
			Medicine:       req.ItemID,
			Quantity:       req.CartData.Quantity,
			SelectedPrice:  req.CartData.SelectedPrice,
			IsPackage:      req.CartData.IsPackage,
			PackageDetails: req.CartData.PackageDetails,
		}
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (b *Backend) handleClearCart(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	b.cart = map[int64]api.CartItem{}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid credentials"})
		return
	}
	b.mu.Lock()
	token, profile := b.token, b.profile
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": token, "user": profile})
}

func (b *Backend) handleOrders(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	orders := slices.Clone(b.orders)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "orders": orders})
}

func (b *Backend) handlePharmacies(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	pharmacies := slices.Clone(b.pharmacies)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "pharmacies": pharmacies})
}

func (b *Backend) handleImport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Products []api.PharmacyProductInput `json:"products"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "bad body"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "imported": len(req.Products)})
}

func (b *Backend) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []api.OrderItemRequest `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "order must contain items"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "order_id": 1001, "status": "pending"})
}

func (b *Backend) handleOK(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
