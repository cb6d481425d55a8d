package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	inventorymemory "github.com/logitrack/logitrack/internal/domains/inventory/adapters/memory"
	inventorypostgres "github.com/logitrack/logitrack/internal/domains/inventory/adapters/persistence/postgres"
	inventoryports "github.com/logitrack/logitrack/internal/domains/inventory/ports"
	orderinventory "github.com/logitrack/logitrack/internal/domains/orders/adapters/inventory"
	ordermemory "github.com/logitrack/logitrack/internal/domains/orders/adapters/memory"
	orderobs "github.com/logitrack/logitrack/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/logitrack/logitrack/internal/domains/orders/adapters/persistence/postgres"
	orderapp "github.com/logitrack/logitrack/internal/domains/orders/application"
	orderports "github.com/logitrack/logitrack/internal/domains/orders/ports"
	orderactivities "github.com/logitrack/logitrack/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/logitrack/logitrack/internal/durable/temporal/workflows/orders"
	"github.com/logitrack/logitrack/internal/platform/cache"
	platformobservability "github.com/logitrack/logitrack/internal/platform/observability"
	platformpostgres "github.com/logitrack/logitrack/internal/platform/postgres"
	platformtemporal "github.com/logitrack/logitrack/internal/platform/temporal"
)

// Run starts the Temporal worker that executes order workflows until ctx is cancelled.
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
	memoryItems := inventorymemory.NewRepository()
	var (
		itemRepo  inventoryports.Repository = memoryItems
		orderRepo orderports.Repository     = ordermemory.NewRepository(ordermemory.WithItemGuard(memoryItems))
	)
	if db != nil {
		itemRepo = inventorypostgres.NewRepository(db)
		orderRepo = orderpostgres.NewRepository(db)
	} else {
		logger.Warn("worker running with in-memory repositories; orders will not be visible to the API")
	}

	orderService := orderobs.New(
		orderapp.NewService(orderRepo, orderinventory.NewReader(itemRepo), cache.NewMemory()),
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	acts := orderactivities.NewActivities(orderService)

	temporalClient, err := platformtemporal.Dial(cfg.Temporal, instruments, "temporal-worker")
	if err != nil {
		return fmt.Errorf("failed to create Temporal client: %w", err)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderCreationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderCreationWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderCreationWorkflowName})
	w.RegisterActivityWithOptions(acts.PersistOrder, activity.RegisterOptions{Name: orderactivities.PersistOrderActivityName})

	logger.Info("worker listening",
		slog.String("taskQueue", orderworkflows.OrderCreationTaskQueue),
		slog.String("namespace", cfg.Temporal.Namespace))
	stop := make(chan interface{})
	go func() {
		<-ctx.Done()
		close(stop)
	}()
	if err := w.Run(stop); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Temporal worker stopped")
	return nil
}
