// Package shop is the single source of truth for storefront state: the
// catalog cache, active filters, pagination window, cart mirror and loading
// flag. Views read from it; every mutation and every network call goes
// through its methods. There is no reactive re-fetch path: ApplyFilters and
// GotoPage are the only catalog fetch triggers.
package shop

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ymgs-pharma/storefront/pkg/api"
	"github.com/ymgs-pharma/storefront/pkg/enums"
	"github.com/ymgs-pharma/storefront/pkg/logger"
	"github.com/ymgs-pharma/storefront/pkg/pagination"
)

// LoginPath is where unauthenticated cart actions redirect.
const LoginPath = "/login"

// Notifier receives user-facing notifications (the toast analog).
type Notifier interface {
	Success(msg string)
	Warn(msg string)
	Error(msg string)
}

// Navigator performs view redirects (login, home).
type Navigator interface {
	NavigateTo(path string)
}

// Session is the slice of session state the shop needs.
type Session interface {
	IsAuthenticated() bool
	ClearOn401() error
}

// Backend is the slice of the API client the shop consumes.
type Backend interface {
	ListProducts(ctx context.Context, req api.ListProductsRequest) (*api.ProductList, error)
	GetProduct(ctx context.Context, id int64) (*api.Product, error)
	GetCart(ctx context.Context) (*api.Cart, error)
	AddCartItem(ctx context.Context, req api.AddCartItemRequest) (string, error)
	UpdateCartItem(ctx context.Context, req api.UpdateCartItemRequest) error
	ClearCart(ctx context.Context) error
}

// FilterState drives catalog queries. Any change resets pagination to page 1.
type FilterState struct {
	Category    []string
	SubCategory []string
	Search      string
	SortBy      enums.SortKey
	SortOrder   enums.SortOrder
}

// FilterPatch is a partial filter update; nil fields keep their value.
type FilterPatch struct {
	Category    *[]string
	SubCategory *[]string
	Search      *string
	SortBy      *enums.SortKey
	SortOrder   *enums.SortOrder
}

// CartEntry is the normalized cart line. Package entries carry a fixed
// SelectedPrice that is never multiplied by quantity.
type CartEntry struct {
	Quantity       int
	SelectedPrice  *decimal.Decimal
	IsPackage      bool
	PackageDetails map[string]any
}

// Store holds all storefront state. Methods are not reentrant-safe against
// overlapping calls to the same operation; the UI event loop serializes them.
type Store struct {
	backend Backend
	session Session
	notify  Notifier
	nav     Navigator
	log     *logger.Logger

	mu            sync.Mutex
	products      []api.Product
	featured      []api.Product
	filters       FilterState
	pagination    pagination.State
	cart          map[int64]CartEntry
	loading       bool
	fetchGen      uint64
	featuredLimit int
}

// Params collects the store's dependencies.
type Params struct {
	Backend       Backend
	Session       Session
	Notifier      Notifier
	Navigator     Navigator
	Logger        *logger.Logger
	PageSize      int
	FeaturedLimit int
}

// NewStore builds the state manager.
func NewStore(p Params) (*Store, error) {
	if p.Backend == nil {
		return nil, fmt.Errorf("backend client required")
	}
	if p.Session == nil {
		return nil, fmt.Errorf("session required")
	}
	if p.Notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if p.Navigator == nil {
		return nil, fmt.Errorf("navigator required")
	}
	featuredLimit := p.FeaturedLimit
	if featuredLimit <= 0 {
		featuredLimit = 10
	}
	return &Store{
		backend: p.Backend,
		session: p.Session,
		notify:  p.Notifier,
		nav:     p.Navigator,
		log:     p.Logger,
		filters: FilterState{
			SortBy:    enums.SortKeyCreatedAt,
			SortOrder: enums.SortOrderDesc,
		},
		pagination:    pagination.NewState(p.PageSize),
		cart:          map[int64]CartEntry{},
		featuredLimit: featuredLimit,
	}, nil
}

// Products returns the current catalog page.
func (s *Store) Products() []api.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Featured returns the bestseller list loaded on startup.
func (s *Store) Featured() []api.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Product, len(s.featured))
	copy(out, s.featured)
	return out
}

// Filters returns a copy of the active filters.
func (s *Store) Filters() FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Pagination returns the current window.
func (s *Store) Pagination() pagination.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// productByIDLocked looks a product up in the catalog and featured caches.
func (s *Store) productByIDLocked(id int64) *api.Product {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i]
		}
	}
	for i := range s.featured {
		if s.featured[i].ID == id {
			return &s.featured[i]
		}
	}
	return nil
}

func (s *Store) logError(ctx context.Context, msg string, err error) {
	if s.log != nil {
		s.log.Error(ctx, msg, err)
	}
}

func (s *Store) logWarn(ctx context.Context, msg string) {
	if s.log != nil {
		s.log.Warn(ctx, msg)
	}
}
