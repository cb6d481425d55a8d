//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "logitrack-api"
	ConsumerName = "dispatch-console"

	StateInventoryBaseline = "inventory and orders are empty"
	StateItemExists        = "inventory item with id 101 exists"
	StateOrderExists       = "order with id 301 exists"
	StateOrderMissing      = "no order with id 999"
)

const (
	ExistingItemID int64 = 101
	UnknownItemID  int64 = 404

	ExistingOrderID int64 = 301
	NewOrderID      int64 = 302
	MissingOrderID  int64 = 999
)

const (
	ExampleItemName   = "Pallet Jack"
	ExampleLocation   = "Dock 4"
	ExampleCustomer   = "Northwind"
	ExampleDatePlaced = "2024-06-12T10:00:00Z"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the dispatch console consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleItemPayload provides stable inventory data for pact interactions.
func ExampleItemPayload() map[string]any {
	return map[string]any{
		"itemId":   ExistingItemID,
		"name":     ExampleItemName,
		"quantity": 12,
		"location": ExampleLocation,
	}
}

// ExampleOrderPayload builds a create-order body referencing itemID.
func ExampleOrderPayload(orderID, itemID int64) map[string]any {
	return map[string]any{
		"orderId":      orderID,
		"customerName": ExampleCustomer,
		"datePlaced":   ExampleDatePlaced,
		"items": []map[string]any{
			{"itemId": itemID, "quantity": 2},
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
