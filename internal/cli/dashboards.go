package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/ymgs-pharma/storefront/pkg/api"
	"github.com/ymgs-pharma/storefront/pkg/enums"
)

func (a *App) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin dashboard",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show dashboard counters and recent orders",
		RunE: func(cc *cobra.Command, _ []string) error {
			overview, err := a.admin.Overview(cc.Context())
			if err != nil {
				return err
			}
			a.printf("orders: %d  products: %d  pharmacies: %d  users: %d\n",
				overview.Stats.TotalOrders, overview.Stats.TotalProducts,
				overview.Stats.TotalPharmacies, overview.Stats.TotalUsers)
			a.println(a.sty.Header.Render("revenue " + overview.Stats.Revenue.StringFixed(2)))
			a.renderOrders(overview.Orders)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "pharmacies",
		Short: "List registered pharmacies",
		RunE: func(cc *cobra.Command, _ []string) error {
			pharmacies, err := a.admin.Pharmacies(cc.Context())
			if err != nil {
				return err
			}
			for _, p := range pharmacies {
				flags := ""
				if p.Verified {
					flags += " verified"
				}
				if p.Approved {
					flags += " approved"
				}
				a.printf("%-6d %-32s%s\n", p.ID, truncate(p.Name, 32), a.sty.Muted.Render(flags))
			}
			return nil
		},
	})

	cmd.AddCommand(a.adminPharmacyActionCmd("verify", "Verify a pharmacy license", a.adminVerify))
	cmd.AddCommand(a.adminPharmacyActionCmd("approve", "Approve a verified pharmacy", a.adminApprove))
	cmd.AddCommand(a.adminPharmacyActionCmd("remove-pharmacy", "Delete a pharmacy", a.adminRemovePharmacy))

	var page, limit int
	productsCmd := &cobra.Command{
		Use:   "products",
		Short: "List the cross-pharmacy catalog",
		RunE: func(cc *cobra.Command, _ []string) error {
			list, err := a.admin.Products(cc.Context(), page, limit)
			if err != nil {
				return err
			}
			for _, p := range list.Products {
				a.printf("%-6d %-32s %s\n", p.ID, truncate(p.Name, 32), a.sty.Price.Render(p.Price.StringFixed(2)))
			}
			a.println(a.sty.Muted.Render(fmt.Sprintf("page %d of %d", list.Pagination.CurrentPage, list.Pagination.Pages)))
			return nil
		},
	}
	productsCmd.Flags().IntVar(&page, "page", 1, "page number")
	productsCmd.Flags().IntVar(&limit, "limit", 20, "page size")
	cmd.AddCommand(productsCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove-product <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.admin.RemoveProduct(cc.Context(), id); err != nil {
				return err
			}
			a.println(a.sty.Success.Render("product removed"))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "orders",
		Short: "List every order",
		RunE: func(cc *cobra.Command, _ []string) error {
			orders, err := a.admin.Orders(cc.Context())
			if err != nil {
				return err
			}
			a.renderOrders(orders)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-status <order-id> <status>",
		Short: "Transition an order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cc *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			status, err := enums.ParseOrderStatus(args[1])
			if err != nil {
				return err
			}
			if err := a.admin.UpdateOrderStatus(cc.Context(), id, status); err != nil {
				return err
			}
			a.println(a.sty.Success.Render("order updated"))
			return nil
		},
	})

	return cmd
}

func (a *App) adminVerify(cc *cobra.Command, id int64) error {
	return a.admin.VerifyPharmacy(cc.Context(), id)
}

func (a *App) adminApprove(cc *cobra.Command, id int64) error {
	return a.admin.ApprovePharmacy(cc.Context(), id)
}

func (a *App) adminRemovePharmacy(cc *cobra.Command, id int64) error {
	return a.admin.RemovePharmacy(cc.Context(), id)
}

func (a *App) adminPharmacyActionCmd(use, short string, action func(*cobra.Command, int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <pharmacy-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := action(cc, id); err != nil {
				return err
			}
			a.println(a.sty.Success.Render("done"))
			return nil
		},
	}
}

func (a *App) pharmacyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pharmacy",
		Short: "Pharmacy owner dashboard",
	}

	var reg api.PharmacyRegistration
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Complete pharmacy onboarding",
		RunE: func(cc *cobra.Command, _ []string) error {
			if err := a.pharmacy.Register(cc.Context(), reg); err != nil {
				a.renderFieldErrors(err)
				return err
			}
			a.println(a.sty.Success.Render("registration submitted"))
			return nil
		},
	}
	registerCmd.Flags().StringVar(&reg.Name, "name", "", "pharmacy name")
	registerCmd.Flags().StringVar(&reg.Address, "address", "", "address")
	registerCmd.Flags().StringVar(&reg.Phone, "phone", "", "phone")
	registerCmd.Flags().StringVar(&reg.License, "license", "", "license number")
	cmd.AddCommand(registerCmd)

	var page, limit int
	productsCmd := &cobra.Command{
		Use:   "products",
		Short: "List your products",
		RunE: func(cc *cobra.Command, _ []string) error {
			list, err := a.pharmacy.Products(cc.Context(), page, limit)
			if err != nil {
				return err
			}
			for _, p := range list.Products {
				a.printf("%-6d %-32s %s stock=%d\n", p.ID, truncate(p.Name, 32), a.sty.Price.Render(p.Price.StringFixed(2)), p.Stock)
			}
			return nil
		},
	}
	productsCmd.Flags().IntVar(&page, "page", 1, "page number")
	productsCmd.Flags().IntVar(&limit, "limit", 20, "page size")
	cmd.AddCommand(productsCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <product-id>",
		Short: "Delete one of your products",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.pharmacy.RemoveProduct(cc.Context(), id); err != nil {
				return err
			}
			a.println(a.sty.Success.Render("product removed"))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Bulk-import products from a JSON file",
		Long:  "The file holds an array of product rows. Invalid rows are reported and skipped; valid rows are submitted in one request.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var rows []api.PharmacyProductInput
			if err := json.Unmarshal(raw, &rows); err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			report, err := a.pharmacy.ImportProducts(cc.Context(), rows)
			if err != nil {
				return err
			}
			for _, rowErr := range multierr.Errors(report.RowErrors) {
				a.println(a.sty.Warning.Render(rowErr.Error()))
			}
			a.println(a.sty.Success.Render(fmt.Sprintf("imported %d of %d rows", report.Imported, len(rows))))
			return nil
		},
	})

	return cmd
}

func (a *App) deliveryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delivery",
		Short: "Delivery agent dashboard",
	}

	var reg api.DeliveryRegistration
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Complete delivery onboarding",
		RunE: func(cc *cobra.Command, _ []string) error {
			if err := a.delivery.Register(cc.Context(), reg); err != nil {
				a.renderFieldErrors(err)
				return err
			}
			a.println(a.sty.Success.Render("registration submitted"))
			return nil
		},
	}
	registerCmd.Flags().StringVar(&reg.Phone, "phone", "", "phone")
	registerCmd.Flags().StringVar(&reg.Vehicle, "vehicle", "", "vehicle")
	registerCmd.Flags().StringVar(&reg.Zone, "zone", "", "delivery zone")
	cmd.AddCommand(registerCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "orders",
		Short: "List your assigned orders",
		RunE: func(cc *cobra.Command, _ []string) error {
			orders, err := a.delivery.AssignedOrders(cc.Context())
			if err != nil {
				return err
			}
			a.renderOrders(orders)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-status <order-id> <status>",
		Short: "Mark an order out_for_delivery or delivered",
		Args:  cobra.ExactArgs(2),
		RunE: func(cc *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			status, err := enums.ParseOrderStatus(args[1])
			if err != nil {
				return err
			}
			if err := a.delivery.UpdateOrderStatus(cc.Context(), id, status); err != nil {
				return err
			}
			a.println(a.sty.Success.Render("order updated"))
			return nil
		},
	})

	return cmd
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
