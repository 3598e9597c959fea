package cli

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ymgs-pharma/storefront/internal/shop"
	"github.com/ymgs-pharma/storefront/pkg/api"
	"github.com/ymgs-pharma/storefront/pkg/enums"
	"github.com/ymgs-pharma/storefront/pkg/forms"
)

func (a *App) cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage your cart",
	}
	cmd.AddCommand(a.cartShowCmd(), a.cartAddCmd(), a.cartSetCmd(), a.cartRemoveCmd(), a.cartClearCmd())
	return cmd
}

func (a *App) cartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.ensureCatalog(cmd)
			if a.sess.IsAuthenticated() {
				a.shop.LoadUserCart(cmd.Context())
			}
			lines := a.shop.CartItems()
			if len(lines) == 0 {
				a.println(a.sty.Muted.Render("cart is empty"))
				return nil
			}
			for _, line := range lines {
				label := fmt.Sprintf("%dx %s", line.Quantity, line.Name)
				if line.IsPackage {
					label += " (package)"
				}
				a.printf("%-40s %s\n", truncate(label, 40), a.sty.Price.Render(line.Total.StringFixed(2)))
			}
			a.println(a.sty.Header.Render("total " + a.shop.CartAmount().StringFixed(2)))
			return nil
		},
	}
}

func (a *App) cartAddCmd() *cobra.Command {
	var (
		quantity   int
		packaged   bool
		priceInput string
	)
	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			entry := shop.CartEntry{Quantity: quantity, IsPackage: packaged}
			if priceInput != "" {
				price, err := decimal.NewFromString(priceInput)
				if err != nil {
					return fmt.Errorf("invalid price %q", priceInput)
				}
				entry.SelectedPrice = &price
			}
			if packaged && entry.SelectedPrice == nil {
				return fmt.Errorf("package entries need --price")
			}

			a.ensureCatalog(cmd)
			a.shop.AddToCart(cmd.Context(), id, entry)
			return nil
		},
	}
	cmd.Flags().IntVar(&quantity, "qty", 1, "quantity")
	cmd.Flags().BoolVar(&packaged, "package", false, "add as a fixed-price package")
	cmd.Flags().StringVar(&priceInput, "price", "", "selected tier or package price")
	return cmd
}

func (a *App) cartSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Change a cart line's quantity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			a.ensureCatalog(cmd)
			a.shop.UpdateQuantity(cmd.Context(), id, shop.CartEntry{Quantity: quantity})
			return nil
		},
	}
}

func (a *App) cartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a cart line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			a.shop.UpdateQuantity(cmd.Context(), id, shop.CartEntry{Quantity: 0})
			return nil
		},
	}
}

func (a *App) cartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.shop.ClearCart(cmd.Context())
			a.println(a.sty.Muted.Render("cart cleared"))
			return nil
		},
	}
}

// ensureCatalog loads the product cache once so cart operations can resolve
// product names and minimum quantities.
func (a *App) ensureCatalog(cmd *cobra.Command) {
	if len(a.shop.Products()) == 0 && len(a.shop.Featured()) == 0 {
		a.shop.ApplyFilters(cmd.Context(), shop.FilterPatch{})
	}
}

func (a *App) checkoutCmd() *cobra.Command {
	return a.checkoutCommand("checkout", "Place an order from the cart", false)
}

func (a *App) guestCheckoutCmd() *cobra.Command {
	return a.checkoutCommand("guest-checkout", "Place an order without an account", true)
}

func (a *App) checkoutCommand(use, short string, forceGuest bool) *cobra.Command {
	var (
		guest     bool
		payment   string
		coupon    string
		reference string
		address   api.Address
	)
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			method, err := enums.ParsePaymentMethod(payment)
			if err != nil {
				return err
			}
			if err := forms.Check(address); err != nil {
				a.renderFieldErrors(err)
				return err
			}

			if a.sess.IsAuthenticated() {
				a.shop.LoadUserCart(cmd.Context())
			}
			items := cartToOrderItems(a.shop.Cart())
			if len(items) == 0 {
				return fmt.Errorf("cart is empty")
			}

			var placed *api.PlacedOrder
			if forceGuest || guest || !a.sess.IsAuthenticated() {
				placed, err = a.client.PlaceGuestOrder(cmd.Context(), api.GuestOrderRequest{
					Items:         items,
					Address:       address,
					PaymentMethod: method,
				})
			} else {
				placed, err = a.client.PlaceOrder(cmd.Context(), api.PlaceOrderRequest{
					Items:         items,
					Address:       address,
					PaymentMethod: method,
					CouponCode:    coupon,
				})
			}
			if err != nil {
				return err
			}

			a.println(a.sty.Success.Render(fmt.Sprintf("order %d placed (%s)", placed.OrderID, placed.Status)))
			if method.IsManual() {
				if reference == "" {
					a.println(a.sty.Warning.Render("manual payment: submit your reference with --reference, or later via the backend"))
					return nil
				}
				if err := a.client.SubmitManualPayment(cmd.Context(), api.ManualPaymentRequest{
					OrderID:   placed.OrderID,
					Method:    method.String(),
					Reference: reference,
				}); err != nil {
					return err
				}
				a.println(a.sty.Success.Render("payment reference submitted"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&guest, "guest", false, "checkout without an account")
	cmd.Flags().StringVar(&payment, "payment", "", "payment method: paypal, stripe, razorpay, crypto, western_union, manual")
	cmd.Flags().StringVar(&coupon, "coupon", "", "coupon code")
	cmd.Flags().StringVar(&reference, "reference", "", "manual payment reference")
	cmd.Flags().StringVar(&address.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&address.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&address.Email, "email", "", "email")
	cmd.Flags().StringVar(&address.Street, "street", "", "street")
	cmd.Flags().StringVar(&address.City, "city", "", "city")
	cmd.Flags().StringVar(&address.State, "state", "", "state")
	cmd.Flags().StringVar(&address.ZipCode, "zip", "", "zip code")
	cmd.Flags().StringVar(&address.Country, "country", "", "country")
	cmd.Flags().StringVar(&address.Phone, "phone", "", "phone")
	return cmd
}

func cartToOrderItems(cart map[int64]shop.CartEntry) []api.OrderItemRequest {
	items := make([]api.OrderItemRequest, 0, len(cart))
	for id, entry := range cart {
		if entry.Quantity <= 0 {
			continue
		}
		items = append(items, api.OrderItemRequest{
			MedicineID:     id,
			Quantity:       entry.Quantity,
			SelectedPrice:  entry.SelectedPrice,
			IsPackage:      entry.IsPackage,
			PackageDetails: entry.PackageDetails,
		})
	}
	return items
}

func (a *App) renderFieldErrors(err error) {
	for field, msg := range forms.FieldErrors(err) {
		a.println(a.sty.Error.Render(fmt.Sprintf("%s %s", field, msg)))
	}
}
