package orders

import (
	"go.temporal.io/sdk/workflow"

	"github.com/logitrack/logitrack/internal/domains/orders/application/types"
	"github.com/logitrack/logitrack/internal/durable/temporal/sequences"
)

const (
	// OrderCreationWorkflowName is the public identifier for registering the workflow.
	OrderCreationWorkflowName = "orders.workflows.Creation"
	// OrderCreationTaskQueue is the queue consumed by the worker processing order workflows.
	OrderCreationTaskQueue = "ORDER_CREATION"
)

// OrderCreationWorkflowInput captures the payload required to create an order.
type OrderCreationWorkflowInput struct {
	Command types.CreateOrderInput
	TraceID string
}

// OrderCreationWorkflow persists an order with all of its lines or not at all.
func OrderCreationWorkflow(ctx workflow.Context, input OrderCreationWorkflowInput) (*types.OrderProjection, error) {
	logger := workflow.GetLogger(ctx)
	orderID := input.Command.OrderID
	logger.Info("OrderCreationWorkflow started", withTraceID(input.TraceID, "orderId", orderID)...)
	projection, err := sequences.RunOrderPersistenceSequence(ctx, input.Command)
	if err != nil {
		logger.Error("OrderCreationWorkflow failed", withTraceID(input.TraceID, "orderId", orderID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderCreationWorkflow completed", withTraceID(input.TraceID, "orderId", projection.ID)...)
	return projection, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
