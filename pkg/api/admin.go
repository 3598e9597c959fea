package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ymgs-pharma/storefront/pkg/enums"
)

// AdminStats is the dashboard summary block.
type AdminStats struct {
	TotalOrders     int             `json:"total_orders"`
	TotalProducts   int             `json:"total_products"`
	TotalPharmacies int             `json:"total_pharmacies"`
	TotalUsers      int             `json:"total_users"`
	Revenue         decimal.Decimal `json:"revenue"`
}

// AdminStats fetches the admin dashboard counters.
func (c *Client) AdminStats(ctx context.Context) (*AdminStats, error) {
	var out struct {
		envelope
		Stats AdminStats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out.Stats, nil
}

// AdminListPharmacies lists every registered pharmacy.
func (c *Client) AdminListPharmacies(ctx context.Context) ([]Pharmacy, error) {
	var out struct {
		envelope
		Pharmacies []Pharmacy `json:"pharmacies"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/pharmacies", nil, &out); err != nil {
		return nil, err
	}
	return out.Pharmacies, nil
}

// AdminVerifyPharmacy marks a pharmacy as verified.
func (c *Client) AdminVerifyPharmacy(ctx context.Context, pharmacyID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/admin/pharmacy/%d/verify", pharmacyID), nil, nil)
}

// AdminApprovePharmacy approves a verified pharmacy for the storefront.
func (c *Client) AdminApprovePharmacy(ctx context.Context, pharmacyID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/admin/pharmacy/%d/approve", pharmacyID), nil, nil)
}

// AdminDeletePharmacy removes a pharmacy.
func (c *Client) AdminDeletePharmacy(ctx context.Context, pharmacyID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/pharmacy/%d", pharmacyID), nil, nil)
}

// AdminListProducts lists products across every pharmacy.
func (c *Client) AdminListProducts(ctx context.Context, page, limit int) (*ProductList, error) {
	body := map[string]any{"page": page, "limit": limit}
	var out struct {
		envelope
		ProductList
	}
	if err := c.do(ctx, http.MethodPost, "/admin/products", body, &out); err != nil {
		return nil, err
	}
	return &out.ProductList, nil
}

// AdminDeleteProduct removes a product from the catalog.
func (c *Client) AdminDeleteProduct(ctx context.Context, productID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/product/%d", productID), nil, nil)
}

// AdminListOrders lists every order for oversight.
func (c *Client) AdminListOrders(ctx context.Context) ([]Order, error) {
	var out struct {
		envelope
		Orders []Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/orders", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// AdminUpdateOrderStatus transitions an order to the given status.
func (c *Client) AdminUpdateOrderStatus(ctx context.Context, orderID int64, status enums.OrderStatus) error {
	body := map[string]any{"status": status}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/admin/order/%d/status", orderID), body, nil)
}
