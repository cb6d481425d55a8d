package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/logitrack/logitrack/internal/domains/orders/application/types"
)

func TestToCreateOrderInput(t *testing.T) {
	placed := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	input := ToCreateOrderInput(Order{
		OrderID:      5,
		CustomerName: "Acme",
		DatePlaced:   placed,
		Items:        []OrderLine{{ItemID: 1, Quantity: 2, ItemName: "ignored"}},
	})
	assert.Equal(t, types.CreateOrderInput{
		OrderID:      5,
		CustomerName: "Acme",
		DatePlaced:   placed,
		Lines:        []types.LineInput{{InventoryItemID: 1, Quantity: 2}},
	}, input)
}

func TestFromProjection_MarksMissingItems(t *testing.T) {
	out := FromProjection(&types.OrderProjection{
		ID:           5,
		CustomerName: "Acme",
		Lines: []types.LineProjection{
			{ID: 10, InventoryItemID: 1, ItemName: "Widget", Quantity: 2},
			{ID: 11, InventoryItemID: 2, Quantity: 1, ItemMissing: true},
		},
	})
	assert.Equal(t, []OrderLine{
		{LineID: 10, ItemID: 1, ItemName: "Widget", Quantity: 2},
		{LineID: 11, ItemID: 2, Quantity: 1, ItemMissing: true},
	}, out.Items)
	assert.Equal(t, Order{}, FromProjection(nil))
}
