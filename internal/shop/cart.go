package shop

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ymgs-pharma/storefront/pkg/api"
	pkgerrors "github.com/ymgs-pharma/storefront/pkg/errors"
)

// CartLine is a render-ready cart row joined against the product cache.
type CartLine struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	IsPackage bool
	Total     decimal.Decimal
}

// AddToCart validates and merges one entry into the cart, persisting it
// server-side. Returns true on success so callers can chain navigation.
// Requires an authenticated session; anonymous calls redirect to login and
// leave the cart untouched.
func (s *Store) AddToCart(ctx context.Context, productID int64, entry CartEntry) bool {
	if entry.Quantity <= 0 {
		entry.Quantity = 1
	}

	s.mu.Lock()
	product := s.productByIDLocked(productID)
	s.mu.Unlock()
	if product == nil {
		s.notify.Error("product not found")
		return false
	}

	if !entry.IsPackage {
		entry.Quantity = s.clampToMinimum(ctx, product, entry.Quantity)
	}

	if !s.session.IsAuthenticated() {
		s.notify.Error("please login to add items to cart")
		s.nav.NavigateTo(LoginPath)
		return false
	}

	s.setLoading(true)
	defer s.setLoading(false)

	message, err := s.backend.AddCartItem(ctx, api.AddCartItemRequest{
		MedicineID:     productID,
		Quantity:       entry.Quantity,
		SelectedPrice:  entry.SelectedPrice,
		IsPackage:      entry.IsPackage,
		PackageDetails: entry.PackageDetails,
	})
	if err != nil {
		s.handleCartError(ctx, "add to cart failed", err)
		return false
	}

	s.mu.Lock()
	s.cart[productID] = entry
	s.mu.Unlock()

	if message == "" {
		message = "item added to cart"
	}
	s.notify.Success(message)
	return true
}

// UpdateQuantity sets a cart line's quantity. Zero removes the line, locally
// and server-side when authenticated. Non-package updates re-clamp to the
// product's minimum order quantity.
func (s *Store) UpdateQuantity(ctx context.Context, productID int64, entry CartEntry) {
	if entry.Quantity <= 0 {
		s.mu.Lock()
		delete(s.cart, productID)
		s.mu.Unlock()

		if s.session.IsAuthenticated() {
			err := s.backend.UpdateCartItem(ctx, api.UpdateCartItemRequest{
				ItemID:   productID,
				CartData: api.CartItemUpdate{Quantity: 0},
			})
			if err != nil {
				s.handleCartError(ctx, "cart item removal failed", err)
			}
		}
		return
	}

	s.mu.Lock()
	product := s.productByIDLocked(productID)
	s.mu.Unlock()
	if product == nil {
		s.logWarn(ctx, "quantity update for unknown product")
		return
	}

	if !entry.IsPackage {
		entry.Quantity = s.clampToMinimum(ctx, product, entry.Quantity)
	}

	s.mu.Lock()
	s.cart[productID] = entry
	s.mu.Unlock()

	if s.session.IsAuthenticated() {
		err := s.backend.UpdateCartItem(ctx, api.UpdateCartItemRequest{
			ItemID: productID,
			CartData: api.CartItemUpdate{
				Quantity:       entry.Quantity,
				SelectedPrice:  entry.SelectedPrice,
				IsPackage:      entry.IsPackage,
				PackageDetails: entry.PackageDetails,
			},
		})
		if err != nil {
			s.handleCartError(ctx, "cart update failed", err)
		}
	}
}

// CartCount derives the total unit count, ignoring non-positive quantities.
func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, entry := range s.cart {
		if entry.Quantity > 0 {
			total += entry.Quantity
		}
	}
	return total
}

// CartLineCount derives the distinct-product count, ignoring non-positive
// quantities.
func (s *Store) CartLineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, entry := range s.cart {
		if entry.Quantity > 0 {
			count++
		}
	}
	return count
}

// CartAmount totals the cart: package entries contribute their fixed package
// price once, regular entries contribute unit price times quantity. The unit
// price comes from SelectedPrice when set, else the live product cache.
// Result is rounded to 2 decimal places.
func (s *Store) CartAmount() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for productID, entry := range s.cart {
		total = total.Add(s.entryTotalLocked(productID, entry))
	}
	return total.Round(2)
}

// ItemTotal returns one line's contribution to the cart total.
func (s *Store) ItemTotal(productID int64) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cart[productID]
	if !ok {
		return decimal.Zero
	}
	return s.entryTotalLocked(productID, entry).Round(2)
}

// CartItems returns render-ready lines, skipping unknown products and
// non-positive quantities.
func (s *Store) CartItems() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]CartLine, 0, len(s.cart))
	for productID, entry := range s.cart {
		if entry.Quantity <= 0 {
			continue
		}
		product := s.productByIDLocked(productID)
		if product == nil {
			continue
		}
		unit := product.Price
		if entry.SelectedPrice != nil {
			unit = *entry.SelectedPrice
		}
		lines = append(lines, CartLine{
			ProductID: productID,
			Name:      product.Name,
			Quantity:  entry.Quantity,
			UnitPrice: unit,
			IsPackage: entry.IsPackage,
			Total:     s.entryTotalLocked(productID, entry).Round(2),
		})
	}
	return lines
}

// LoadUserCart reconciles the server-side cart into the local mapping. Legacy
// numeric lines were already normalized at the API boundary.
func (s *Store) LoadUserCart(ctx context.Context) {
	cart, err := s.backend.GetCart(ctx)
	if err != nil {
		if pkgerrors.IsUnauthorized(err) {
			s.handleCartError(ctx, "cart hydration rejected", err)
			return
		}
		s.logError(ctx, "cart hydration failed", err)
		s.notify.Error(pkgerrors.UserMessage(err))
		return
	}

	merged := make(map[int64]CartEntry, len(cart.Items))
	for _, item := range cart.Items {
		if item.Quantity <= 0 {
			continue
		}
		merged[item.Medicine] = CartEntry{
			Quantity:       item.Quantity,
			SelectedPrice:  item.SelectedPrice,
			IsPackage:      item.IsPackage,
			PackageDetails: item.PackageDetails,
		}
	}

	s.mu.Lock()
	s.cart = merged
	s.mu.Unlock()
}

// ClearCart empties the cart locally and, when authenticated, server-side.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	s.cart = map[int64]CartEntry{}
	s.mu.Unlock()

	if s.session.IsAuthenticated() {
		if err := s.backend.ClearCart(ctx); err != nil {
			s.handleCartError(ctx, "cart clear failed", err)
		}
	}
}

// Cart returns a copy of the cart mapping.
func (s *Store) Cart() map[int64]CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int64]CartEntry, len(s.cart))
	for id, entry := range s.cart {
		out[id] = entry
	}
	return out
}

func (s *Store) entryTotalLocked(productID int64, entry CartEntry) decimal.Decimal {
	if entry.IsPackage && entry.SelectedPrice != nil {
		return *entry.SelectedPrice
	}
	if entry.Quantity <= 0 {
		return decimal.Zero
	}
	unit := decimal.Zero
	if entry.SelectedPrice != nil {
		unit = *entry.SelectedPrice
	} else if product := s.productByIDLocked(productID); product != nil {
		unit = product.Price
	}
	return unit.Mul(decimal.NewFromInt(int64(entry.Quantity)))
}

// clampToMinimum raises quantity up to the product's minimum order quantity,
// warning the user when it does.
func (s *Store) clampToMinimum(ctx context.Context, product *api.Product, quantity int) int {
	minQuantity := product.MinOrderQuantity
	if minQuantity < 1 {
		minQuantity = 1
	}
	if quantity < minQuantity {
		s.logWarn(ctx, "quantity below minimum order quantity, clamping")
		s.notify.Warn(fmt.Sprintf("Minimum order quantity for this product is %d", minQuantity))
		return minQuantity
	}
	return quantity
}

// handleCartError applies the shared 401 policy: destroy the session, drop
// the local cart mirror and send the user to login. Other failures only
// notify.
func (s *Store) handleCartError(ctx context.Context, logMsg string, err error) {
	s.logError(ctx, logMsg, err)
	if pkgerrors.IsUnauthorized(err) {
		if clearErr := s.session.ClearOn401(); clearErr != nil {
			s.logError(ctx, "session clear failed", clearErr)
		}
		s.mu.Lock()
		s.cart = map[int64]CartEntry{}
		s.mu.Unlock()
		s.notify.Error("please login to continue")
		s.nav.NavigateTo(LoginPath)
		return
	}
	s.notify.Error(pkgerrors.UserMessage(err))
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
