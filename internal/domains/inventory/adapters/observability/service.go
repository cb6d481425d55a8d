package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	inventorydomain "github.com/logitrack/logitrack/internal/domains/inventory/domain"
	inventoryports "github.com/logitrack/logitrack/internal/domains/inventory/ports"
)

const tracerName = "github.com/logitrack/logitrack/internal/domains/inventory/adapters/observability/service"

// Service decorates the inventory service with tracing, logging, and metrics.
type Service struct {
	inner   inventoryports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core inventory service.
func New(inner inventoryports.Service, opts ...Option) inventoryports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) ListItems(ctx context.Context) ([]*inventorydomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.ListItems")
	defer span.End()

	result, err := s.inner.ListItems(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list inventory")
	}
	span.SetAttributes(attribute.Int("inventory.items.count", len(result)))
	return result, nil
}

func (s *Service) GetItem(ctx context.Context, id int64) (*inventorydomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.GetItem", trace.WithAttributes(attribute.Int64("item.id", id)))
	defer span.End()

	result, err := s.inner.GetItem(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load inventory item", slog.Int64("item.id", id))
	}
	return result, nil
}

func (s *Service) AddItem(ctx context.Context, input inventoryports.AddItemInput) (*inventorydomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.AddItem",
		trace.WithAttributes(attribute.Int64("item.id", input.ID), attribute.Int("item.quantity", int(input.Quantity))))
	defer span.End()

	s.logInfo(ctx, "adding inventory item", slog.Int64("item.id", input.ID))
	result, err := s.inner.AddItem(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add inventory item", slog.Int64("item.id", input.ID))
	}
	s.metrics.recordAdded(ctx)
	s.logInfo(ctx, "inventory item added", slog.Int64("item.id", result.ID), slog.String("item.location", result.Location))
	return result, nil
}

func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "InventoryService.DeleteItem", trace.WithAttributes(attribute.Int64("item.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting inventory item", slog.Int64("item.id", id))
	if err := s.inner.DeleteItem(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete inventory item", slog.Int64("item.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "inventory item deleted", slog.Int64("item.id", id))
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	itemsAdded   metric.Int64Counter
	itemsDeleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	itemsAdded, _ := m.Int64Counter("inventory.service.items_added", metric.WithDescription("Number of inventory items added"))
	itemsDeleted, _ := m.Int64Counter("inventory.service.items_deleted", metric.WithDescription("Number of inventory items deleted"))
	return serviceMetrics{itemsAdded: itemsAdded, itemsDeleted: itemsDeleted}
}

func (m serviceMetrics) recordAdded(ctx context.Context) {
	if m.itemsAdded != nil {
		m.itemsAdded.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.itemsDeleted != nil {
		m.itemsDeleted.Add(ctx, 1)
	}
}

var _ inventoryports.Service = (*Service)(nil)
