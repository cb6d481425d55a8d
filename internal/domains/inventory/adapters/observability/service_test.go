package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	inventorymemory "github.com/logitrack/logitrack/internal/domains/inventory/adapters/memory"
	inventoryapp "github.com/logitrack/logitrack/internal/domains/inventory/application"
	inventoryports "github.com/logitrack/logitrack/internal/domains/inventory/ports"
	"github.com/logitrack/logitrack/internal/platform/cache"
)

func TestService_TracesAndLogs(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	svc := New(
		inventoryapp.NewService(inventorymemory.NewRepository(), cache.NewMemory()),
		WithLogger(logger),
		WithTracer(provider.Tracer("test")),
	)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, inventoryports.AddItemInput{ID: 1, Name: "Widget", Quantity: 10, Location: "A1"})
	require.NoError(t, err)
	err = svc.DeleteItem(ctx, 99)
	require.ErrorIs(t, err, inventoryapp.ErrNotFound)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "InventoryService.AddItem", spans[0].Name)
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
	assert.Equal(t, "InventoryService.DeleteItem", spans[1].Name)
	assert.Equal(t, codes.Error, spans[1].Status.Code)

	assert.Contains(t, logs.String(), "inventory item added")
	assert.Contains(t, logs.String(), "failed to delete inventory item")
}

func TestNew_DefaultsAreSafe(t *testing.T) {
	svc := New(inventoryapp.NewService(inventorymemory.NewRepository(), nil), nil)
	items, err := svc.ListItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}
