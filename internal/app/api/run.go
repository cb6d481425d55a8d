package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	logitrackserver "github.com/logitrack/logitrack/go"

	inventorymemory "github.com/logitrack/logitrack/internal/domains/inventory/adapters/memory"
	inventoryobs "github.com/logitrack/logitrack/internal/domains/inventory/adapters/observability"
	inventorypostgres "github.com/logitrack/logitrack/internal/domains/inventory/adapters/persistence/postgres"
	inventoryapp "github.com/logitrack/logitrack/internal/domains/inventory/application"
	inventoryports "github.com/logitrack/logitrack/internal/domains/inventory/ports"

	orderinventory "github.com/logitrack/logitrack/internal/domains/orders/adapters/inventory"
	ordermemory "github.com/logitrack/logitrack/internal/domains/orders/adapters/memory"
	orderobs "github.com/logitrack/logitrack/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/logitrack/logitrack/internal/domains/orders/adapters/persistence/postgres"
	orderworkflows "github.com/logitrack/logitrack/internal/domains/orders/adapters/workflows"
	orderapp "github.com/logitrack/logitrack/internal/domains/orders/application"
	orderports "github.com/logitrack/logitrack/internal/domains/orders/ports"

	"github.com/logitrack/logitrack/internal/platform/cache"
	platformobservability "github.com/logitrack/logitrack/internal/platform/observability"
	platformpostgres "github.com/logitrack/logitrack/internal/platform/postgres"
	platformtemporal "github.com/logitrack/logitrack/internal/platform/temporal"
)

// Run boots the LogiTrack HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Observability)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	itemRepo, orderRepo := buildRepositories(db)

	sharedCache := cache.NewMemory(cache.WithMeter(instruments.Meter("internal.platform.cache")))
	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go sharedCache.Run(janitorCtx, cfg.CacheSweepInterval)

	coreOrderService := orderapp.NewService(orderRepo, orderinventory.NewReader(itemRepo), sharedCache)
	inventoryService := inventoryobs.New(
		inventoryapp.NewService(itemRepo, sharedCache, inventoryapp.WithDependentListings(coreOrderService)),
		inventoryobs.WithLogger(logger),
		inventoryobs.WithTracer(instruments.Tracer("internal.inventory.application")),
		inventoryobs.WithMeter(instruments.Meter("internal.inventory.application")),
	)
	orderService := orderobs.New(
		coreOrderService,
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orderWorkflows orderports.WorkflowOrchestrator = orderworkflows.NewInlineOrderWorkflows(orderService)
	switch {
	case db == nil:
		logger.Info("in-memory repositories are process local, running CreateOrder inline")
	default:
		temporalClient, err := platformtemporal.Dial(cfg.Temporal, instruments, "temporal-client")
		if err != nil {
			logger.Warn("Temporal workflows unavailable, running CreateOrder inline", slog.String("error", err.Error()))
			break
		}
		defer temporalClient.Close()
		orderWorkflows = orderworkflows.NewTemporalOrderWorkflows(temporalClient, coreOrderService)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.Temporal.Namespace))
	}

	handlers := logitrackserver.ApiHandleFunctions{
		InventoryAPI: logitrackserver.NewInventoryAPI(inventoryService),
		OrderAPI:     logitrackserver.NewOrderAPI(orderService, orderWorkflows),
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(cfg.Observability.ServiceName))
	router := logitrackserver.NewRouterWithGinEngine(engine, handlers)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("LogiTrack API listening", slog.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("LogiTrack API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("LogiTrack API shutdown failed", slog.String("error", err.Error()))
		return err
	}
	logger.Info("LogiTrack API stopped")
	return nil
}

// buildRepositories picks Postgres adapters when db is available and in-memory ones otherwise.
func buildRepositories(db *gorm.DB) (inventoryports.Repository, orderports.Repository) {
	if db == nil {
		items := inventorymemory.NewRepository()
		return items, ordermemory.NewRepository(ordermemory.WithItemGuard(items))
	}
	return inventorypostgres.NewRepository(db), orderpostgres.NewRepository(db)
}
