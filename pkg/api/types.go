package api

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/ymgs-pharma/storefront/pkg/enums"
	"github.com/ymgs-pharma/storefront/pkg/pagination"
)

// Product is the catalog item as the backend serializes it.
type Product struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Price            decimal.Decimal `json:"price"`
	QuantityPrices   []PriceTier     `json:"quantity_prices,omitempty"`
	Images           []string        `json:"image,omitempty"`
	Stock            int             `json:"stock"`
	Category         string          `json:"category"`
	SubCategory      string          `json:"subCategory,omitempty"`
	Pharmacy         *PharmacyRef    `json:"pharmacy,omitempty"`
	Bestseller       bool            `json:"bestseller"`
	MinOrderQuantity int             `json:"minOrderQuantity"`
}

// PriceTier is one quantity/price row of a tiered price list.
type PriceTier struct {
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// PharmacyRef is the pharmacy summary embedded in a product.
type PharmacyRef struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	IsOpen  bool   `json:"is_open"`
}

// UserProfile is the cached profile stored next to the token.
type UserProfile struct {
	ID                 int64      `json:"id"`
	Name               string     `json:"name,omitempty"`
	Email              string     `json:"email"`
	Role               enums.Role `json:"role"`
	HasPharmacy        bool       `json:"has_pharmacy"`
	HasDeliveryProfile bool       `json:"has_delivery_profile"`
}

// CartItem is one server-side cart line. SelectedPrice and PackageDetails are
// only meaningful for package entries.
type CartItem struct {
	Medicine       int64            `json:"medicine"`
	Quantity       int              `json:"quantity"`
	SelectedPrice  *decimal.Decimal `json:"selected_price,omitempty"`
	IsPackage      bool             `json:"is_package"`
	PackageDetails map[string]any   `json:"package_details,omitempty"`
}

// UnmarshalJSON accepts the legacy wire form where a cart line is a bare
// quantity. The polymorphism is resolved here, once, at the API boundary.
func (c *CartItem) UnmarshalJSON(data []byte) error {
	var quantity int
	if err := json.Unmarshal(data, &quantity); err == nil {
		*c = CartItem{Quantity: quantity}
		return nil
	}
	type plain CartItem
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*c = CartItem(decoded)
	return nil
}

// Cart is the server-side cart snapshot.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Order is one order row from the order history or dashboard listings.
type Order struct {
	ID            int64               `json:"id"`
	Status        enums.OrderStatus   `json:"status"`
	PaymentMethod enums.PaymentMethod `json:"payment_method,omitempty"`
	Amount        decimal.Decimal     `json:"amount"`
	Items         []OrderLine         `json:"items,omitempty"`
	Address       *Address            `json:"address,omitempty"`
	CreatedAt     string              `json:"created_at,omitempty"`
}

// OrderLine is one product line inside an order.
type OrderLine struct {
	Medicine  int64           `json:"medicine"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	IsPackage bool            `json:"is_package,omitempty"`
}

// Address is a saved delivery address.
type Address struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state,omitempty"`
	ZipCode   string `json:"zipcode,omitempty"`
	Country   string `json:"country" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
}

// Coupon is the verification result for a coupon code.
type Coupon struct {
	Code     string          `json:"code"`
	Discount decimal.Decimal `json:"discount"`
	Valid    bool            `json:"valid"`
}

// BlogPost is a blog listing/detail row.
type BlogPost struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Excerpt   string `json:"excerpt,omitempty"`
	Body      string `json:"body,omitempty"`
	Author    string `json:"author,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// SiteSettings carries the public site configuration (contact details plus the
// crypto wallet list shown during manual payment).
type SiteSettings struct {
	ContactEmail  string         `json:"contact_email,omitempty"`
	ContactPhone  string         `json:"contact_phone,omitempty"`
	Address       string         `json:"address,omitempty"`
	CryptoWallets []CryptoWallet `json:"crypto_wallets,omitempty"`
}

// CryptoWallet is one wallet entry from the site settings.
type CryptoWallet struct {
	Currency string `json:"currency"`
	Address  string `json:"address"`
}

// Pharmacy is the dashboard-facing pharmacy record.
type Pharmacy struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	IsOpen   bool   `json:"is_open"`
	Verified bool   `json:"verified"`
	Approved bool   `json:"approved"`
}

// ProductList is the payload of the user product listing endpoint.
type ProductList struct {
	Products   []Product        `json:"products"`
	Pagination pagination.State `json:"pagination"`
}
