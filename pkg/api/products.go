package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ymgs-pharma/storefront/pkg/enums"
)

// ListProductsRequest is the body of the user product listing endpoint. Zero
// fields are omitted so the backend applies its own defaults.
type ListProductsRequest struct {
	Page        int             `json:"page,omitempty"`
	Limit       int             `json:"limit,omitempty"`
	Category    []string        `json:"category,omitempty"`
	SubCategory []string        `json:"subCategory,omitempty"`
	Search      string          `json:"search,omitempty"`
	SortBy      enums.SortKey   `json:"sortBy,omitempty"`
	SortOrder   enums.SortOrder `json:"sortOrder,omitempty"`
	Bestseller  bool            `json:"bestseller,omitempty"`
	ExcludeID   int64           `json:"excludeId,omitempty"`
}

// ListProducts runs a catalog query with filters and pagination.
func (c *Client) ListProducts(ctx context.Context, req ListProductsRequest) (*ProductList, error) {
	var out struct {
		envelope
		ProductList
	}
	if err := c.do(ctx, http.MethodPost, "/product/user/list", req, &out); err != nil {
		return nil, err
	}
	return &out.ProductList, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var out struct {
		envelope
		Product Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/product/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}
