package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ymgs-pharma/storefront/internal/cli"
	"github.com/ymgs-pharma/storefront/internal/dashboard"
	"github.com/ymgs-pharma/storefront/internal/localstore"
	"github.com/ymgs-pharma/storefront/internal/session"
	"github.com/ymgs-pharma/storefront/internal/shop"
	"github.com/ymgs-pharma/storefront/internal/theme"
	"github.com/ymgs-pharma/storefront/pkg/api"
	"github.com/ymgs-pharma/storefront/pkg/config"
	"github.com/ymgs-pharma/storefront/pkg/logger"
	"github.com/ymgs-pharma/storefront/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Debug(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	store, err := localstore.Open(cfg.State.Path)
	if err != nil {
		logg.Error(context.Background(), "failed to open local state", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logg.Error(context.Background(), "error closing local state", err)
		}
	}()

	sess, err := session.NewManager(store)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}
	if err := sess.Hydrate(); err != nil {
		logg.Warn(context.Background(), "failed to restore session, starting anonymous")
	}

	schemePath := filepath.Join(filepath.Dir(store.Path()), "scheme")
	themeManager, err := theme.NewManager(theme.Params{
		Store:     store,
		Source:    theme.FileSchemeSource{Path: schemePath},
		Logger:    logg,
		WatchPath: schemePath,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create theme manager", err)
		os.Exit(1)
	}
	defer func() { _ = themeManager.Close() }()

	requestMetrics := metrics.NewRequestMetrics(prometheus.DefaultRegisterer)
	client, err := api.NewClient(cfg.Backend.BaseURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.Backend.Timeout}),
		api.WithTokenSource(sess),
		api.WithMetrics(requestMetrics),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create backend client", err)
		os.Exit(1)
	}

	surfaces := cli.BuildSurfaces(themeManager, os.Stdout)
	shopStore, err := shop.NewStore(shop.Params{
		Backend:       client,
		Session:       sess,
		Notifier:      surfaces.Notifier,
		Navigator:     surfaces.Navigator,
		Logger:        logg,
		PageSize:      cfg.Catalog.PageSize,
		FeaturedLimit: cfg.Catalog.FeaturedLimit,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create shop store", err)
		os.Exit(1)
	}

	adminService, err := dashboard.NewAdminService(client, sess, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create admin service", err)
		os.Exit(1)
	}
	pharmacyService, err := dashboard.NewPharmacyService(client, sess, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create pharmacy service", err)
		os.Exit(1)
	}
	deliveryService, err := dashboard.NewDeliveryService(client, sess, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create delivery service", err)
		os.Exit(1)
	}

	app, err := cli.New(cli.Deps{
		Config:   cfg,
		Logger:   logg,
		Client:   client,
		Session:  sess,
		Theme:    themeManager,
		Shop:     shopStore,
		Admin:    adminService,
		Pharmacy: pharmacyService,
		Delivery: deliveryService,
		Out:      os.Stdout,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to assemble cli", err)
		os.Exit(1)
	}

	if err := app.Root().Execute(); err != nil {
		logg.Error(context.Background(), "command failed", err)
		os.Exit(1)
	}
}
