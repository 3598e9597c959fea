package shop

import (
	"context"

	"github.com/ymgs-pharma/storefront/pkg/api"
	"github.com/ymgs-pharma/storefront/pkg/enums"
	pkgerrors "github.com/ymgs-pharma/storefront/pkg/errors"
)

// ApplyFilters merges the patch into the active filters, resets pagination to
// page 1 and fetches immediately. On failure the previous product list and
// window stay as they were; only a notification is emitted.
func (s *Store) ApplyFilters(ctx context.Context, patch FilterPatch) {
	s.mu.Lock()
	if patch.Category != nil {
		s.filters.Category = append([]string(nil), (*patch.Category)...)
	}
	if patch.SubCategory != nil {
		s.filters.SubCategory = append([]string(nil), (*patch.SubCategory)...)
	}
	if patch.Search != nil {
		s.filters.Search = *patch.Search
	}
	if patch.SortBy != nil {
		s.filters.SortBy = *patch.SortBy
	}
	if patch.SortOrder != nil {
		s.filters.SortOrder = *patch.SortOrder
	}
	s.pagination = s.pagination.ResetPage()
	req := s.listRequestLocked(1)
	s.mu.Unlock()

	s.fetchCatalog(ctx, req)
}

// GotoPage fetches the requested page with the current filters. Pages outside
// [1, pages] are no-ops.
func (s *Store) GotoPage(ctx context.Context, page int) {
	s.mu.Lock()
	if !s.pagination.InRange(page) {
		s.mu.Unlock()
		return
	}
	req := s.listRequestLocked(page)
	s.mu.Unlock()

	s.fetchCatalog(ctx, req)
}

// LoadProducts is the startup entrypoint. The initial load fetches the small
// featured/bestseller set; later calls re-run the current filters and page.
func (s *Store) LoadProducts(ctx context.Context, initial bool) {
	if initial {
		s.loadFeatured(ctx)
		return
	}
	s.mu.Lock()
	req := s.listRequestLocked(s.pagination.CurrentPage)
	s.mu.Unlock()
	s.fetchCatalog(ctx, req)
}

// ProductByID returns a product, preferring the local cache and falling back
// to a detail fetch. A failed fetch notifies and returns nil.
func (s *Store) ProductByID(ctx context.Context, id int64) *api.Product {
	s.mu.Lock()
	if cached := s.productByIDLocked(id); cached != nil {
		copied := *cached
		s.mu.Unlock()
		return &copied
	}
	s.mu.Unlock()

	product, err := s.backend.GetProduct(ctx, id)
	if err != nil {
		s.logError(ctx, "product detail fetch failed", err)
		s.notify.Error(pkgerrors.UserMessage(err))
		return nil
	}
	return product
}

// RelatedProducts fetches products in the same category, excluding the one
// being viewed. Failures degrade to an empty list without a notification.
func (s *Store) RelatedProducts(ctx context.Context, category, subCategory string, excludeID int64, limit int) []api.Product {
	req := api.ListProductsRequest{
		Limit:     limit,
		ExcludeID: excludeID,
		SortBy:    enums.SortKeyCreatedAt,
		SortOrder: enums.SortOrderDesc,
	}
	if category != "" {
		req.Category = []string{category}
	}
	if subCategory != "" {
		req.SubCategory = []string{subCategory}
	}
	list, err := s.backend.ListProducts(ctx, req)
	if err != nil {
		s.logError(ctx, "related products fetch failed", err)
		return nil
	}
	return list.Products
}

func (s *Store) listRequestLocked(page int) api.ListProductsRequest {
	return api.ListProductsRequest{
		Page:        page,
		Limit:       s.pagination.Limit,
		Category:    append([]string(nil), s.filters.Category...),
		SubCategory: append([]string(nil), s.filters.SubCategory...),
		Search:      s.filters.Search,
		SortBy:      s.filters.SortBy,
		SortOrder:   s.filters.SortOrder,
	}
}

// fetchCatalog runs one catalog query. Each fetch takes a generation ticket;
// a response that arrives after a newer fetch started is discarded, so a slow
// earlier response can never overwrite a newer page.
func (s *Store) fetchCatalog(ctx context.Context, req api.ListProductsRequest) {
	s.mu.Lock()
	s.fetchGen++
	gen := s.fetchGen
	s.loading = true
	s.mu.Unlock()

	list, err := s.backend.ListProducts(ctx, req)

	s.mu.Lock()
	if gen != s.fetchGen {
		s.mu.Unlock()
		return
	}
	s.loading = false
	if err == nil {
		s.products = list.Products
		s.pagination = list.Pagination
	}
	s.mu.Unlock()

	if err != nil {
		s.logError(ctx, "catalog fetch failed", err)
		s.notify.Error(pkgerrors.UserMessage(err))
	}
}

func (s *Store) loadFeatured(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	limit := s.featuredLimit
	s.mu.Unlock()

	list, err := s.backend.ListProducts(ctx, api.ListProductsRequest{
		Limit:      limit,
		Bestseller: true,
		SortBy:     enums.SortKeyCreatedAt,
		SortOrder:  enums.SortOrderDesc,
	})

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.mu.Unlock()
		s.logError(ctx, "featured fetch failed", err)
		s.notify.Error(pkgerrors.UserMessage(err))
		return
	}
	s.featured = list.Products
	s.mu.Unlock()
}
