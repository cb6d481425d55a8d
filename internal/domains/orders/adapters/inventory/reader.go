// Package inventory adapts the inventory repository to the orders context's
// read-only InventoryReader port.
package inventory

import (
	"context"

	inventoryports "github.com/logitrack/logitrack/internal/domains/inventory/ports"
	orderports "github.com/logitrack/logitrack/internal/domains/orders/ports"
)

var _ orderports.InventoryReader = (*Reader)(nil)

// Reader exposes only existence and name lookups, never mutations.
type Reader struct {
	repo inventoryports.Repository
}

func NewReader(repo inventoryports.Repository) *Reader {
	return &Reader{repo: repo}
}

func (r *Reader) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.repo.MissingIDs(ctx, ids)
}

func (r *Reader) Names(ctx context.Context, ids []int64) (map[int64]string, error) {
	if len(ids) == 0 {
		return map[int64]string{}, nil
	}
	return r.repo.Names(ctx, ids)
}
