package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ymgs-pharma/storefront/pkg/enums"
)

// OrderItemRequest is one cart line flattened for order placement.
type OrderItemRequest struct {
	MedicineID     int64            `json:"medicine_id"`
	Quantity       int              `json:"quantity"`
	SelectedPrice  *decimal.Decimal `json:"selected_price,omitempty"`
	IsPackage      bool             `json:"is_package,omitempty"`
	PackageDetails map[string]any   `json:"package_details,omitempty"`
}

// PlaceOrderRequest places an order for a registered user.
type PlaceOrderRequest struct {
	Items          []OrderItemRequest  `json:"items" validate:"required,min=1"`
	Address        Address             `json:"address" validate:"required"`
	PaymentMethod  enums.PaymentMethod `json:"payment_method" validate:"required"`
	CouponCode     string              `json:"coupon_code,omitempty"`
	IdempotencyKey string              `json:"idempotency_key,omitempty"`
}

// GuestOrderRequest places an order without an account.
type GuestOrderRequest struct {
	Items          []OrderItemRequest  `json:"items" validate:"required,min=1"`
	Address        Address             `json:"address" validate:"required"`
	PaymentMethod  enums.PaymentMethod `json:"payment_method" validate:"required"`
	IdempotencyKey string              `json:"idempotency_key,omitempty"`
}

// ManualPaymentRequest carries the proof reference for manual payment flows
// (crypto transfer, Western Union).
type ManualPaymentRequest struct {
	OrderID   int64  `json:"order_id" validate:"required"`
	Method    string `json:"method" validate:"required"`
	Reference string `json:"reference" validate:"required"`
}

// PlacedOrder is the acknowledgement returned by the placement endpoints.
type PlacedOrder struct {
	OrderID int64           `json:"order_id"`
	Status  string          `json:"status,omitempty"`
	Amount  decimal.Decimal `json:"amount"`
}

// PlaceOrder submits a registered-user order. The idempotency key guards
// against double submission on a re-click.
func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlacedOrder, error) {
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.NewString()
	}
	var out struct {
		envelope
		PlacedOrder
	}
	if err := c.do(ctx, http.MethodPost, "/order/place", req, &out); err != nil {
		return nil, err
	}
	return &out.PlacedOrder, nil
}

// PlaceGuestOrder submits a guest checkout order.
func (c *Client) PlaceGuestOrder(ctx context.Context, req GuestOrderRequest) (*PlacedOrder, error) {
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.NewString()
	}
	var out struct {
		envelope
		PlacedOrder
	}
	if err := c.do(ctx, http.MethodPost, "/order/guest", req, &out); err != nil {
		return nil, err
	}
	return &out.PlacedOrder, nil
}

// SubmitManualPayment attaches a manual payment reference to an order.
func (c *Client) SubmitManualPayment(ctx context.Context, req ManualPaymentRequest) error {
	return c.do(ctx, http.MethodPost, "/order/manual-payment", req, nil)
}

// ListOrders fetches the authenticated user's order history.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var out struct {
		envelope
		Orders []Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// VerifyCoupon checks a coupon code against the running order amount.
func (c *Client) VerifyCoupon(ctx context.Context, code string, amount decimal.Decimal) (*Coupon, error) {
	body := map[string]any{"code": code, "amount": amount}
	var out struct {
		envelope
		Coupon Coupon `json:"coupon"`
	}
	if err := c.do(ctx, http.MethodPost, "/coupon/verify", body, &out); err != nil {
		return nil, err
	}
	return &out.Coupon, nil
}

// SaveAddress persists a delivery address for reuse at checkout.
func (c *Client) SaveAddress(ctx context.Context, address Address) error {
	return c.do(ctx, http.MethodPost, "/address/save", address, nil)
}

// GetAddress fetches the saved delivery address, if any.
func (c *Client) GetAddress(ctx context.Context) (*Address, error) {
	var out struct {
		envelope
		Address *Address `json:"address"`
	}
	if err := c.do(ctx, http.MethodGet, "/address", nil, &out); err != nil {
		return nil, err
	}
	return out.Address, nil
}
