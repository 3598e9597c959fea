package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// AddCartItemRequest is the payload for adding one line to the server cart.
type AddCartItemRequest struct {
	MedicineID     int64            `json:"medicine_id"`
	Quantity       int              `json:"quantity"`
	SelectedPrice  *decimal.Decimal `json:"selected_price"`
	IsPackage      bool             `json:"is_package"`
	PackageDetails map[string]any   `json:"package_details"`
}

// UpdateCartItemRequest mirrors the update endpoint's body. A zero quantity
// removes the line.
type UpdateCartItemRequest struct {
	ItemID   int64          `json:"itemId"`
	CartData CartItemUpdate `json:"cartData"`
}

// CartItemUpdate is the nested cart data block of an update request.
type CartItemUpdate struct {
	Quantity       int              `json:"quantity"`
	SelectedPrice  *decimal.Decimal `json:"selectedPrice,omitempty"`
	IsPackage      bool             `json:"isPackage,omitempty"`
	PackageDetails map[string]any   `json:"packageDetails,omitempty"`
}

// GetCart fetches the authenticated user's server-side cart.
func (c *Client) GetCart(ctx context.Context) (*Cart, error) {
	var out struct {
		envelope
		Cart Cart `json:"cart"`
	}
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &out); err != nil {
		return nil, err
	}
	return &out.Cart, nil
}

// AddCartItem merges one line into the server cart and returns the server's
// confirmation message.
func (c *Client) AddCartItem(ctx context.Context, req AddCartItemRequest) (string, error) {
	var out struct {
		envelope
	}
	if err := c.do(ctx, http.MethodPost, "/cart/add", req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// UpdateCartItem sets the quantity of one server cart line.
func (c *Client) UpdateCartItem(ctx context.Context, req UpdateCartItemRequest) error {
	return c.do(ctx, http.MethodPost, "/cart/update", req, nil)
}

// RemoveCartItem deletes a line from the server cart.
func (c *Client) RemoveCartItem(ctx context.Context, itemID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/remove/%d", itemID), nil, nil)
}

// ClearCart empties the server cart.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart/clear", nil, nil)
}
