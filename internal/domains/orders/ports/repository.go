package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/logitrack/logitrack/internal/domains/orders/domain"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrAlreadyExists = errors.New("order already exists")
)

// MissingItemsError is returned by Create when referenced inventory items no
// longer exist at commit time. Nothing is written.
type MissingItemsError struct {
	IDs []int64
}

func (e *MissingItemsError) Error() string {
	return fmt.Sprintf("referenced inventory items %v do not exist", e.IDs)
}

// Repository persists orders together with their lines. Create and Delete are
// each a single unit of work: readers never observe a partially written order.
type Repository interface {
	// Create stores the order and all of its lines, assigning line ids. It
	// re-checks every referenced item inside the unit of work and fails with
	// *MissingItemsError when one is gone.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// Delete removes the order and every line it owns.
	Delete(ctx context.Context, id int64) error
	// ListPage returns up to limit orders after skipping offset, ordered by id.
	ListPage(ctx context.Context, offset, limit int) ([]*domain.Order, error)
}

// InventoryReader is the orders context's read-only view of inventory.
type InventoryReader interface {
	MissingIDs(ctx context.Context, ids []int64) ([]int64, error)
	Names(ctx context.Context, ids []int64) (map[int64]string, error)
}
