package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// PharmacyProductInput is the create/update payload for a pharmacy's own
// product.
type PharmacyProductInput struct {
	Name             string          `json:"name" validate:"required"`
	Description      string          `json:"description,omitempty"`
	Price            decimal.Decimal `json:"price" validate:"required"`
	QuantityPrices   []PriceTier     `json:"quantity_prices,omitempty"`
	Stock            int             `json:"stock" validate:"gte=0"`
	Category         string          `json:"category" validate:"required"`
	SubCategory      string          `json:"subCategory,omitempty"`
	Bestseller       bool            `json:"bestseller,omitempty"`
	MinOrderQuantity int             `json:"minOrderQuantity,omitempty" validate:"gte=0"`
}

// PharmacyRegistration completes a pharmacist's profile.
type PharmacyRegistration struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	License string `json:"license" validate:"required"`
}

// RegisterPharmacy submits the pharmacy registration for the logged-in
// pharmacist.
func (c *Client) RegisterPharmacy(ctx context.Context, req PharmacyRegistration) error {
	return c.do(ctx, http.MethodPost, "/pharmacy/register", req, nil)
}

// PharmacyListProducts lists the pharmacy's own products.
func (c *Client) PharmacyListProducts(ctx context.Context, page, limit int) (*ProductList, error) {
	body := map[string]any{"page": page, "limit": limit}
	var out struct {
		envelope
		ProductList
	}
	if err := c.do(ctx, http.MethodPost, "/pharmacy/products", body, &out); err != nil {
		return nil, err
	}
	return &out.ProductList, nil
}

// PharmacyCreateProduct adds a product to the pharmacy's catalog.
func (c *Client) PharmacyCreateProduct(ctx context.Context, req PharmacyProductInput) (*Product, error) {
	var out struct {
		envelope
		Product Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodPost, "/pharmacy/product", req, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

// PharmacyUpdateProduct updates one of the pharmacy's products.
func (c *Client) PharmacyUpdateProduct(ctx context.Context, productID int64, req PharmacyProductInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/pharmacy/product/%d", productID), req, nil)
}

// PharmacyDeleteProduct removes one of the pharmacy's products.
func (c *Client) PharmacyDeleteProduct(ctx context.Context, productID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/pharmacy/product/%d", productID), nil, nil)
}

// PharmacyImportProducts bulk-creates products from pre-validated rows
// (the spreadsheet import flow).
func (c *Client) PharmacyImportProducts(ctx context.Context, rows []PharmacyProductInput) (int, error) {
	body := map[string]any{"products": rows}
	var out struct {
		envelope
		Imported int `json:"imported"`
	}
	if err := c.do(ctx, http.MethodPost, "/pharmacy/products/import", body, &out); err != nil {
		return 0, err
	}
	return out.Imported, nil
}
