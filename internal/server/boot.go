// Package server wires the configured stores, storage and services together
// and runs the HTTP server.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/dinein/app/repositories"
	"github.com/shashiranjanraj/dinein/app/routes"
	"github.com/shashiranjanraj/dinein/app/services"
	"github.com/shashiranjanraj/dinein/config"
	"github.com/shashiranjanraj/dinein/internal/kernel"
	"github.com/shashiranjanraj/dinein/pkg/cache"
	"github.com/shashiranjanraj/dinein/pkg/database"
	"github.com/shashiranjanraj/dinein/pkg/logger"
	"github.com/shashiranjanraj/dinein/pkg/router"
	"github.com/shashiranjanraj/dinein/pkg/storage"
	"github.com/shashiranjanraj/dinein/pkg/ws"
)

// App is a booted application.
type App struct {
	Catalog repositories.CatalogStore
	Orders  repositories.OrderStore
	Carts   repositories.CartStore
	Images  *services.ImageStore
	Feed    *ws.Hub

	Services routes.Services

	closers []func() error
}

// Boot connects every backend named by config. Close releases them.
func Boot(ctx context.Context) (*App, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	a := &App{Feed: ws.NewHub()}

	if err := a.openStores(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.openCarts(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.openImages(ctx); err != nil {
		a.Close()
		return nil, err
	}

	var uploader services.Uploader = a.Images
	if url := config.UploadURL(); url != "" {
		uploader = services.NewHTTPUploader(url)
	}
	notify := services.NewHubNotifier(a.Feed)

	a.Services = routes.Services{
		Admin:   services.NewMenuAdmin(a.Catalog, uploader),
		Browser: services.NewMenuBrowser(a.Catalog, a.Images),
		Taker:   services.NewOrderTaker(a.Catalog, a.Orders, a.Carts, a.Images, notify),
		Summary: services.NewOrderSummary(a.Orders, config.AppLocation(), notify),
		Images:  a.Images,
		Feed:    a.Feed,
	}
	return a, nil
}

func (a *App) openStores(ctx context.Context) error {
	switch driver := config.StoreDriver(); driver {
	case "mongo":
		client, db, err := database.OpenMongo(ctx, config.MongoURI(), config.MongoDatabase())
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func() error { return client.Disconnect(context.Background()) })

		orders := repositories.NewMongoOrders(db)
		if err := orders.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("mongo: ensure indexes: %w", err)
		}
		a.Catalog, a.Orders = repositories.NewMongoCatalog(db), orders

	case "sql":
		db, err := database.OpenSQL(config.DatabaseDriver(), config.DatabaseDSN())
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, sqlDB.Close)
		}
		if err := repositories.AutoMigrate(db); err != nil {
			return err
		}
		a.Catalog, a.Orders = repositories.NewSQLCatalog(db), repositories.NewSQLOrders(db)

	default:
		logger.Warn("store: using in-memory catalog and orders, data is lost on restart", "driver", driver)
		a.Catalog, a.Orders = repositories.NewMemoryCatalog(), repositories.NewMemoryOrders()
	}

	a.Catalog = repositories.InstrumentCatalog(a.Catalog)
	a.Orders = repositories.InstrumentOrders(a.Orders)
	return nil
}

func (a *App) openCarts(ctx context.Context) error {
	if config.CartDriver() == "redis" {
		rs, err := cache.NewRedis(ctx, config.RedisAddr(), config.RedisPassword())
		if err != nil {
			return err
		}
		a.closers = append(a.closers, rs.Close)
		a.useCarts(rs)
		return nil
	}

	mem := cache.NewMemory()
	sched, err := startCartSweeper(mem, config.CartSweepInterval())
	if err != nil {
		return err
	}
	a.closers = append(a.closers, sched.Shutdown)
	a.useCarts(mem)
	return nil
}

func (a *App) useCarts(store cache.Store) {
	logger.Info("carts: store ready", "driver", store.Driver(), "ttl", config.CartTTL())
	a.Carts = repositories.NewCartStore(store, config.CartTTL())
}

func (a *App) openImages(ctx context.Context) error {
	if err := storage.Connect(ctx); err != nil {
		return err
	}
	disk, err := storage.Default()
	if err != nil {
		return err
	}

	a.Images = services.NewImageStore(disk, config.ImageDir(), config.DefaultImage())
	if err := a.Images.EnsureDefaultImage(ctx); err != nil {
		logger.Warn("storage: default image unavailable", "error", err)
	}
	return nil
}

// Handler builds the HTTP handler for a.
func (a *App) Handler() http.Handler {
	return kernel.NewHTTPKernel(func(r *router.Router) {
		routes.RegisterAPI(r, a.Services)
	}).Handler()
}

// Run starts the feed hub and serves HTTP until ctx is done.
func (a *App) Run(ctx context.Context) error {
	go a.Feed.Run(ctx)
	return Start(ctx, ":"+config.AppPort(), a.Handler())
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn("shutdown: close failed", "error", err)
		}
	}
	a.closers = nil
}
