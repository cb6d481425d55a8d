package application

import (
	"context"
	"time"

	"github.com/logitrack/logitrack/internal/domains/inventory/domain"
	"github.com/logitrack/logitrack/internal/domains/inventory/ports"
	"github.com/logitrack/logitrack/internal/platform/cache"
	"github.com/logitrack/logitrack/internal/shared/validation"
)

const (
	// ListingCacheKey holds the whole inventory listing; it takes no parameters.
	ListingCacheKey = "inventory:items"
	ListingCacheTTL = 5 * time.Minute
)

// Service orchestrates inventory use cases.
type Service struct {
	repo       ports.Repository
	cache      cache.Cache
	dependents []ports.ListingInvalidator
}

type Option func(*Service)

// WithDependentListings registers listings that resolve item data and must be
// dropped after every item write.
func WithDependentListings(invalidators ...ports.ListingInvalidator) Option {
	return func(s *Service) {
		for _, inv := range invalidators {
			if inv != nil {
				s.dependents = append(s.dependents, inv)
			}
		}
	}
}

// NewService wires the inventory service. The cache is shared with the orders service.
func NewService(repo ports.Repository, c cache.Cache, opts ...Option) *Service {
	s := &Service{repo: repo, cache: c}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ListItems serves the cached listing, reading the repository on a miss.
func (s *Service) ListItems(ctx context.Context) ([]*domain.Item, error) {
	items, _, err := cache.GetOrLoad(ctx, s.cache, ListingCacheKey, ListingCacheTTL, s.repo.List)
	if err != nil {
		return nil, mapError(err)
	}
	return cloneItems(items), nil
}

// GetItem loads one item without going through the cache.
func (s *Service) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	if err := validation.ValidateID("itemId", id); err != nil {
		return nil, mapError(err)
	}
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return item, nil
}

// AddItem validates and persists a new item, then drops the cached listing.
func (s *Service) AddItem(ctx context.Context, input ports.AddItemInput) (*domain.Item, error) {
	item, err := domain.NewItem(input.ID, input.Name, input.Quantity, input.Location)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Insert(ctx, item)
	if err != nil {
		return nil, mapError(err)
	}
	s.invalidateListing(ctx)
	return saved, nil
}

// DeleteItem removes an item. Order lines that reference it are left in place.
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	if err := validation.ValidateID("itemId", id); err != nil {
		return mapError(err)
	}
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return mapError(err)
	}
	if !exists {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	s.invalidateListing(ctx)
	return nil
}

func (s *Service) invalidateListing(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, ListingCacheKey)
	}
	for _, inv := range s.dependents {
		inv.InvalidateListings(ctx)
	}
}

// cached slices are shared between callers, so hand out copies.
func cloneItems(items []*domain.Item) []*domain.Item {
	out := make([]*domain.Item, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}

var _ ports.Service = (*Service)(nil)
