package ports

import (
	"context"
	"errors"

	"github.com/logitrack/logitrack/internal/domains/inventory/domain"
)

var (
	ErrNotFound      = errors.New("inventory item not found")
	ErrAlreadyExists = errors.New("inventory item already exists")
)

// Repository persists inventory items.
type Repository interface {
	// Insert stores a new item; ErrAlreadyExists when the id is taken.
	Insert(ctx context.Context, item *domain.Item) (*domain.Item, error)
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	// List returns every item ordered by id.
	List(ctx context.Context) ([]*domain.Item, error)
	// MissingIDs returns the subset of ids with no stored item, in input order.
	MissingIDs(ctx context.Context, ids []int64) ([]int64, error)
	// Names maps each stored id in ids to its item name. Unknown ids are omitted.
	Names(ctx context.Context, ids []int64) (map[int64]string, error)
}
