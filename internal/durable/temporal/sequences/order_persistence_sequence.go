package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/logitrack/logitrack/internal/domains/orders/application/types"
	orderactivities "github.com/logitrack/logitrack/internal/durable/temporal/activities/orders"
)

// RunOrderPersistenceSequence executes the single activity that persists an order.
// Order creation is attempted exactly once.
func RunOrderPersistenceSequence(ctx workflow.Context, input types.CreateOrderInput) (*types.OrderProjection, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order persistence sequence started", "orderId", input.OrderID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var projection types.OrderProjection
	err := workflow.ExecuteActivity(ctx, orderactivities.PersistOrderActivityName, input).Get(ctx, &projection)
	if err != nil {
		logger.Error("order persistence sequence failed", "orderId", input.OrderID, "error", err)
		return nil, err
	}
	logger.Info("order persistence sequence completed", "orderId", projection.ID, "lines", len(projection.Lines))
	return &projection, nil
}
