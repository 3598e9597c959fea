package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ymgs-pharma/storefront/internal/shop"
	"github.com/ymgs-pharma/storefront/pkg/api"
	"github.com/ymgs-pharma/storefront/pkg/enums"
)

func (a *App) browseCmd() *cobra.Command {
	var (
		categories    []string
		subCategories []string
		search        string
		sortBy        string
		sortOrder     string
		page          int
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the product catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			patch := shop.FilterPatch{}
			if cmd.Flags().Changed("category") {
				patch.Category = &categories
			}
			if cmd.Flags().Changed("subcategory") {
				patch.SubCategory = &subCategories
			}
			if cmd.Flags().Changed("search") {
				patch.Search = &search
			}
			if cmd.Flags().Changed("sort") {
				key, err := enums.ParseSortKey(sortBy)
				if err != nil {
					return err
				}
				patch.SortBy = &key
			}
			if cmd.Flags().Changed("order") {
				order, err := enums.ParseSortOrder(sortOrder)
				if err != nil {
					return err
				}
				patch.SortOrder = &order
			}

			a.shop.ApplyFilters(cmd.Context(), patch)
			if page > 1 {
				a.shop.GotoPage(cmd.Context(), page)
			}
			a.renderCatalogPage()
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&categories, "category", nil, "filter by category (repeatable)")
	cmd.Flags().StringSliceVar(&subCategories, "subcategory", nil, "filter by subcategory (repeatable)")
	cmd.Flags().StringVar(&search, "search", "", "search by name")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort key: create_at, price, name")
	cmd.Flags().StringVar(&sortOrder, "order", "", "sort order: asc, desc")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func (a *App) renderCatalogPage() {
	products := a.shop.Products()
	window := a.shop.Pagination()

	if len(products) == 0 {
		a.println(a.sty.Muted.Render("no products matched"))
		return
	}
	for _, p := range products {
		line := fmt.Sprintf("%-6d %-32s %s", p.ID, truncate(p.Name, 32), a.sty.Price.Render(p.Price.StringFixed(2)))
		if p.Stock == 0 {
			line += " " + a.sty.Warning.Render("(out of stock)")
		}
		a.println(line)
	}
	a.println(a.sty.Muted.Render(fmt.Sprintf("page %d of %d (%d products)", window.CurrentPage, window.Pages, window.Total)))
}

func (a *App) productCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show one product with related items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			product := a.shop.ProductByID(cmd.Context(), id)
			if product == nil {
				return nil
			}

			a.println(a.sty.Title.Render(product.Name))
			a.println(a.sty.Price.Render(product.Price.StringFixed(2)))
			if product.Description != "" {
				a.println(product.Description)
			}
			if product.MinOrderQuantity > 1 {
				a.println(a.sty.Muted.Render(fmt.Sprintf("minimum order quantity: %d", product.MinOrderQuantity)))
			}
			for _, tier := range product.QuantityPrices {
				a.println(a.sty.Muted.Render(fmt.Sprintf("  %d+ units: %s each", tier.Quantity, tier.Price.StringFixed(2))))
			}
			if product.Pharmacy != nil {
				status := "closed"
				if product.Pharmacy.IsOpen {
					status = "open"
				}
				a.println(a.sty.Muted.Render(fmt.Sprintf("sold by %s (%s)", product.Pharmacy.Name, status)))
			}

			related := a.shop.RelatedProducts(cmd.Context(), product.Category, product.SubCategory, product.ID, 4)
			if len(related) > 0 {
				a.println(a.sty.Header.Render("related"))
				for _, r := range related {
					a.printf("  %-6d %s\n", r.ID, truncate(r.Name, 40))
				}
			}
			return nil
		},
	}
}

func (a *App) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			a.shop.ApplyFilters(cmd.Context(), shop.FilterPatch{Search: &query})
			a.renderCatalogPage()
			return nil
		},
	}
}

func (a *App) couponCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coupon <code>",
		Short: "Check a coupon against the current cart total",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.ensureCatalog(cmd)
			if a.sess.IsAuthenticated() {
				a.shop.LoadUserCart(cmd.Context())
			}
			amount := a.shop.CartAmount()

			coupon, err := a.client.VerifyCoupon(cmd.Context(), args[0], amount)
			if err != nil {
				return err
			}
			if !coupon.Valid {
				a.println(a.sty.Warning.Render("coupon is not valid for this cart"))
				return nil
			}
			a.println(a.sty.Success.Render(fmt.Sprintf("coupon %s applies a discount of %s", coupon.Code, coupon.Discount.StringFixed(2))))
			return nil
		},
	}
}

func (a *App) ordersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "Show your order history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			orders, err := a.client.ListOrders(cmd.Context())
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				a.println(a.sty.Muted.Render("no orders yet"))
				return nil
			}
			a.renderOrders(orders)
			return nil
		},
	}
}

func (a *App) renderOrders(orders []api.Order) {
	for _, o := range orders {
		a.printf("%-8d %-16s %s\n", o.ID, o.Status, a.sty.Price.Render(o.Amount.StringFixed(2)))
		for _, line := range o.Items {
			a.println(a.sty.Muted.Render(fmt.Sprintf("    %dx %s", line.Quantity, line.Name)))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n-1]) + "…"
}
