// Package cli is the terminal front of the storefront: cobra commands over
// the shop state manager, the session, and the role dashboards.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ymgs-pharma/storefront/internal/dashboard"
	"github.com/ymgs-pharma/storefront/internal/session"
	"github.com/ymgs-pharma/storefront/internal/shop"
	"github.com/ymgs-pharma/storefront/internal/theme"
	"github.com/ymgs-pharma/storefront/pkg/api"
	"github.com/ymgs-pharma/storefront/pkg/config"
	"github.com/ymgs-pharma/storefront/pkg/enums"
	"github.com/ymgs-pharma/storefront/pkg/logger"
)

// Deps collects everything the command tree needs.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Client   *api.Client
	Session  *session.Manager
	Theme    *theme.Manager
	Out      io.Writer
	Shop     *shop.Store
	Admin    *dashboard.AdminService
	Pharmacy *dashboard.PharmacyService
	Delivery *dashboard.DeliveryService
}

// App owns the assembled command tree.
type App struct {
	cfg      *config.Config
	log      *logger.Logger
	client   *api.Client
	sess     *session.Manager
	theme    *theme.Manager
	shop     *shop.Store
	admin    *dashboard.AdminService
	pharmacy *dashboard.PharmacyService
	delivery *dashboard.DeliveryService

	out      io.Writer
	sty      styles
	notifier *consoleNotifier
	nav      *hintNavigator
}

// New assembles the CLI. The shop store may be built by the caller using
// Notifier and Navigator obtained from BuildSurfaces.
func New(deps Deps) (*App, error) {
	if deps.Client == nil || deps.Session == nil || deps.Theme == nil || deps.Shop == nil {
		return nil, fmt.Errorf("client, session, theme and shop are required")
	}
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}

	a := &App{
		cfg:      deps.Config,
		log:      deps.Logger,
		client:   deps.Client,
		sess:     deps.Session,
		theme:    deps.Theme,
		shop:     deps.Shop,
		admin:    deps.Admin,
		pharmacy: deps.Pharmacy,
		delivery: deps.Delivery,
		out:      out,
		sty:      newStyles(deps.Theme.Resolved()),
	}
	deps.Theme.OnChange(func(resolved enums.Theme) {
		a.sty = newStyles(resolved)
	})
	return a, nil
}

// Surfaces are the view-side hooks the shop store fans out to.
type Surfaces struct {
	Notifier  shop.Notifier
	Navigator shop.Navigator
}

// BuildSurfaces returns the terminal notifier and navigator for the given
// theme and writer, so the shop store can be constructed before the App.
func BuildSurfaces(th *theme.Manager, out io.Writer) Surfaces {
	if out == nil {
		out = os.Stdout
	}
	sty := newStyles(th.Resolved())
	holder := &sty
	th.OnChange(func(resolved enums.Theme) {
		*holder = newStyles(resolved)
	})
	return Surfaces{
		Notifier:  &consoleNotifier{out: out, styles: holder},
		Navigator: &hintNavigator{out: out, sty: holder},
	}
}

// Root builds the full command tree.
func (a *App) Root() *cobra.Command {
	root := &cobra.Command{
		Use:           "ymgs",
		Short:         "YMGS pharmacy storefront",
		Long:          "Browse the catalog, manage your cart and orders, and run the role dashboards against the YMGS backend.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		a.browseCmd(),
		a.searchCmd(),
		a.productCmd(),
		a.cartCmd(),
		a.checkoutCmd(),
		a.guestCheckoutCmd(),
		a.couponCmd(),
		a.ordersCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.registerCmd(),
		a.whoamiCmd(),
		a.themeCmd(),
		a.blogCmd(),
		a.contactCmd(),
		a.settingsCmd(),
		a.adminCmd(),
		a.pharmacyCmd(),
		a.deliveryCmd(),
	)
	return root
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(line string) {
	fmt.Fprintln(a.out, line)
}
