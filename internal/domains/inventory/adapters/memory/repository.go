package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/logitrack/logitrack/internal/domains/inventory/domain"
	"github.com/logitrack/logitrack/internal/domains/inventory/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory inventory persistence adapter.
type Repository struct {
	mu    sync.RWMutex
	items map[int64]*domain.Item
}

func NewRepository() *Repository {
	return &Repository{items: map[int64]*domain.Item{}}
}

func (r *Repository) Insert(_ context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, errors.New("item is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; ok {
		return nil, ports.ErrAlreadyExists
	}
	r.items[item.ID] = item.Clone()
	return item.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return item.Clone(), nil
}

func (r *Repository) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[id]
	return ok, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Item, 0, len(r.items))
	for _, item := range r.items {
		list = append(list, item.Clone())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *Repository) MissingIDs(_ context.Context, ids []int64) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var missing []int64
	for _, id := range ids {
		if _, ok := r.items[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (r *Repository) Names(_ context.Context, ids []int64) (map[int64]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make(map[int64]string, len(ids))
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			names[id] = item.Name
		}
	}
	return names, nil
}

// WithItemsHeld runs fn while inserts and deletes are blocked, so a caller can
// commit a write that depends on items staying present.
func (r *Repository) WithItemsHeld(fn func(exists func(id int64) bool) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fn(func(id int64) bool {
		_, ok := r.items[id]
		return ok
	})
}
