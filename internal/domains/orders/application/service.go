package application

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/logitrack/logitrack/internal/domains/orders/application/types"
	"github.com/logitrack/logitrack/internal/domains/orders/domain"
	"github.com/logitrack/logitrack/internal/domains/orders/ports"
	"github.com/logitrack/logitrack/internal/platform/cache"
	"github.com/logitrack/logitrack/internal/shared/validation"
)

const (
	// ListingCachePrefix namespaces every cached page; writes drop the whole namespace.
	ListingCachePrefix = "orders:"
	ListingCacheTTL    = 30 * time.Second
)

// ListingCacheKey derives the cache key of one page.
func ListingCacheKey(page, pageSize int) string {
	return fmt.Sprintf("%spage=%d:size=%d", ListingCachePrefix, page, pageSize)
}

// Service orchestrates order use cases.
type Service struct {
	repo      ports.Repository
	inventory ports.InventoryReader
	cache     cache.Cache
	now       func() time.Time
}

type Option func(*Service)

// WithClock overrides the clock used to reject future-dated orders.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the orders service. The cache is shared with the inventory service.
func NewService(repo ports.Repository, inventory ports.InventoryReader, c cache.Cache, opts ...Option) *Service {
	s := &Service{repo: repo, inventory: inventory, cache: c, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ListOrders serves a cached page, reading the repository on a miss.
func (s *Service) ListOrders(ctx context.Context, input types.ListOrdersInput) ([]*types.OrderProjection, error) {
	key := ListingCacheKey(input.Page, input.PageSize)
	page, _, err := cache.GetOrLoad(ctx, s.cache, key, ListingCacheTTL, func(ctx context.Context) ([]*types.OrderProjection, error) {
		orders, err := s.repo.ListPage(ctx, pageOffset(input.Page, input.PageSize), input.PageSize)
		if err != nil {
			return nil, err
		}
		return s.project(ctx, orders...)
	})
	if err != nil {
		return nil, mapError(err)
	}
	return types.CloneList(page), nil
}

// pageOffset converts a 1-based page into a row offset. Offsets past math.MaxInt
// saturate so a huge page reads as empty instead of wrapping onto early rows.
func pageOffset(page, pageSize int) int {
	if page <= 1 || pageSize <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (page - 1) * pageSize
}

// GetOrder loads one order with its resolved lines.
func (s *Service) GetOrder(ctx context.Context, id int64) (*types.OrderProjection, error) {
	if err := validation.ValidateID("orderId", id); err != nil {
		return nil, mapError(err)
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	projections, err := s.project(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	return projections[0], nil
}

// CreateOrder validates the order, checks that every referenced item exists,
// and only then persists the order with all of its lines.
func (s *Service) CreateOrder(ctx context.Context, input types.CreateOrderInput) (*types.OrderProjection, error) {
	lines := make([]domain.Line, 0, len(input.Lines))
	for _, l := range input.Lines {
		lines = append(lines, domain.Line{InventoryItemID: l.InventoryItemID, Quantity: l.Quantity})
	}
	order, err := domain.NewOrder(input.OrderID, input.CustomerName, input.DatePlaced, lines, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	missing, err := s.inventory.MissingIDs(ctx, order.ItemIDs())
	if err != nil {
		return nil, mapError(err)
	}
	if len(missing) > 0 {
		return nil, &UnknownItemsError{IDs: missing}
	}
	saved, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	s.invalidateListings(ctx)
	projections, err := s.project(ctx, saved)
	if err != nil {
		return nil, mapError(err)
	}
	return projections[0], nil
}

// DeleteOrder removes the order and its lines as one unit.
func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	if err := validation.ValidateID("orderId", id); err != nil {
		return mapError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	s.invalidateListings(ctx)
	return nil
}

// InvalidateListings drops every cached page. Exposed for orchestrators that
// create orders out of process.
func (s *Service) InvalidateListings(ctx context.Context) {
	s.invalidateListings(ctx)
}

func (s *Service) invalidateListings(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidatePrefix(ctx, ListingCachePrefix)
	}
}

func (s *Service) project(ctx context.Context, orders ...*domain.Order) ([]*types.OrderProjection, error) {
	var ids []int64
	seen := map[int64]struct{}{}
	for _, o := range orders {
		for _, id := range o.ItemIDs() {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	names := map[int64]string{}
	if len(ids) > 0 {
		resolved, err := s.inventory.Names(ctx, ids)
		if err != nil {
			return nil, err
		}
		names = resolved
	}
	out := make([]*types.OrderProjection, 0, len(orders))
	for _, o := range orders {
		p := &types.OrderProjection{
			ID:           o.ID,
			CustomerName: o.CustomerName,
			DatePlaced:   o.DatePlaced,
			Lines:        make([]types.LineProjection, 0, len(o.Lines)),
		}
		for _, line := range o.Lines {
			name, ok := names[line.InventoryItemID]
			p.Lines = append(p.Lines, types.LineProjection{
				ID:              line.ID,
				InventoryItemID: line.InventoryItemID,
				ItemName:        name,
				Quantity:        line.Quantity,
				ItemMissing:     !ok,
			})
		}
		out = append(out, p)
	}
	return out, nil
}

var _ ports.Service = (*Service)(nil)
