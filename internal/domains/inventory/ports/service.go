package ports

import (
	"context"

	"github.com/logitrack/logitrack/internal/domains/inventory/domain"
)

// AddItemInput carries the caller-supplied fields of a new item.
type AddItemInput struct {
	ID       int64
	Name     string
	Quantity int32
	Location string
}

// Service exposes inventory use cases to adapters.
type Service interface {
	ListItems(ctx context.Context) ([]*domain.Item, error)
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	AddItem(ctx context.Context, input AddItemInput) (*domain.Item, error)
	DeleteItem(ctx context.Context, id int64) error
}

// ListingInvalidator drops cached read models of another context that embed
// inventory data, such as order pages showing item names.
type ListingInvalidator interface {
	InvalidateListings(ctx context.Context)
}
