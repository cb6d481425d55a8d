package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	orderapp "github.com/logitrack/logitrack/internal/domains/orders/application"
	"github.com/logitrack/logitrack/internal/domains/orders/application/types"
	"github.com/logitrack/logitrack/internal/domains/orders/ports"
	orderactivities "github.com/logitrack/logitrack/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/logitrack/logitrack/internal/durable/temporal/workflows/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// ListingInvalidator drops cached order pages held by this process.
type ListingInvalidator interface {
	InvalidateListings(ctx context.Context)
}

// TemporalOrderWorkflows starts order workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client      client.Client
	taskQueue   string
	invalidator ListingInvalidator
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator. The
// worker persists orders in its own process, so the invalidator clears this
// process's listing cache once the workflow reports success, and also when the
// outcome is unknown (timeout, cancellation, lost connection).
func NewTemporalOrderWorkflows(c client.Client, invalidator ListingInvalidator) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderCreationTaskQueue, invalidator: invalidator}
}

// CreateOrder runs the creation workflow and waits for its result.
func (o *TemporalOrderWorkflows) CreateOrder(ctx context.Context, input types.CreateOrderInput) (*types.OrderProjection, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("order-creation-%d-%s", input.OrderID, traceComponent),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderCreationWorkflowName,
		orderworkflows.OrderCreationWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return nil, fmt.Errorf("%w: creation of order %d already in progress", orderapp.ErrAlreadyExists, input.OrderID)
		}
		return nil, err
	}
	var projection types.OrderProjection
	if err := run.Get(ctx, &projection); err != nil {
		var appErr *temporal.ApplicationError
		if !errors.As(err, &appErr) && o.invalidator != nil {
			// The activity may still have committed.
			o.invalidator.InvalidateListings(context.WithoutCancel(ctx))
		}
		return nil, orderactivities.FromApplicationError(err)
	}
	if o.invalidator != nil {
		o.invalidator.InvalidateListings(ctx)
	}
	return &projection, nil
}

// InlineOrderWorkflows executes the service directly without Temporal.
type InlineOrderWorkflows struct {
	service ports.Service
}

func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

// CreateOrder delegates to the application service without durable orchestration.
func (o *InlineOrderWorkflows) CreateOrder(ctx context.Context, input types.CreateOrderInput) (*types.OrderProjection, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.CreateOrder(ctx, input)
}

func workflowTraceComponent(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() && spanCtx.TraceID().IsValid() {
		return spanCtx.TraceID().String()
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}
