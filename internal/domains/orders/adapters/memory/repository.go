package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/logitrack/logitrack/internal/domains/orders/domain"
	"github.com/logitrack/logitrack/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// ItemGuard keeps inventory stable while fn runs. The inventory memory
// adapter implements it.
type ItemGuard interface {
	WithItemsHeld(fn func(exists func(id int64) bool) error) error
}

// Repository is an in-memory order persistence adapter. A single lock covers
// orders and lines so every Create and Delete is atomic to readers.
type Repository struct {
	mu         sync.RWMutex
	orders     map[int64]*domain.Order
	nextLineID int64
	items      ItemGuard
}

type Option func(*Repository)

// WithItemGuard makes Create verify referenced items under the inventory lock.
func WithItemGuard(guard ItemGuard) Option {
	return func(r *Repository) {
		r.items = guard
	}
}

func NewRepository(opts ...Option) *Repository {
	r := &Repository{orders: map[int64]*domain.Order{}}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if r.items == nil {
		return r.store(order)
	}
	var saved *domain.Order
	err := r.items.WithItemsHeld(func(exists func(id int64) bool) error {
		var missing []int64
		for _, id := range order.ItemIDs() {
			if !exists(id) {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			return &ports.MissingItemsError{IDs: missing}
		}
		var err error
		saved, err = r.store(order)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *Repository) store(order *domain.Order) (*domain.Order, error) {
	clone := order.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[clone.ID]; ok {
		return nil, ports.ErrAlreadyExists
	}
	for i := range clone.Lines {
		r.nextLineID++
		clone.Lines[i].ID = r.nextLineID
		clone.Lines[i].OrderID = clone.ID
	}
	r.orders[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *Repository) ListPage(_ context.Context, offset, limit int) ([]*domain.Order, error) {
	if offset < 0 {
		offset = 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int64, 0, len(r.orders))
	for id := range r.orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if offset >= len(ids) || limit <= 0 {
		return []*domain.Order{}, nil
	}
	end := len(ids)
	if limit < end-offset {
		end = offset + limit
	}
	page := make([]*domain.Order, 0, end-offset)
	for _, id := range ids[offset:end] {
		page = append(page, r.orders[id].Clone())
	}
	return page, nil
}

// LinesFor returns the stored lines owned by orderID; empty once the order is gone.
func (r *Repository) LinesFor(orderID int64) []domain.Line {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil
	}
	return append([]domain.Line(nil), order.Lines...)
}
