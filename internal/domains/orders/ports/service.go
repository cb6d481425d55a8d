package ports

import (
	"context"

	"github.com/logitrack/logitrack/internal/domains/orders/application/types"
)

// Service exposes order use cases to adapters.
type Service interface {
	ListOrders(ctx context.Context, input types.ListOrdersInput) ([]*types.OrderProjection, error)
	GetOrder(ctx context.Context, id int64) (*types.OrderProjection, error)
	CreateOrder(ctx context.Context, input types.CreateOrderInput) (*types.OrderProjection, error)
	DeleteOrder(ctx context.Context, id int64) error
}

// WorkflowOrchestrator runs order creation either inline or on a durable engine.
type WorkflowOrchestrator interface {
	CreateOrder(ctx context.Context, input types.CreateOrderInput) (*types.OrderProjection, error)
}
