package mapper

import (
	"time"

	"github.com/logitrack/logitrack/internal/domains/orders/application/types"
)

// OrderLine is one line of an order as seen by clients. ItemName is empty and
// ItemMissing is set when the referenced item has since been deleted.
type OrderLine struct {
	LineID      int64  `json:"lineId,omitempty"`
	ItemID      int64  `json:"itemId"`
	ItemName    string `json:"itemName,omitempty"`
	Quantity    int32  `json:"quantity"`
	ItemMissing bool   `json:"itemMissing,omitempty"`
}

// Order is the transport shape used for both create requests and responses.
type Order struct {
	OrderID      int64       `json:"orderId"`
	CustomerName string      `json:"customerName"`
	DatePlaced   time.Time   `json:"datePlaced"`
	Items        []OrderLine `json:"items"`
}

// ToCreateOrderInput converts a request body into the service input.
func ToCreateOrderInput(order Order) types.CreateOrderInput {
	lines := make([]types.LineInput, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, types.LineInput{InventoryItemID: item.ItemID, Quantity: item.Quantity})
	}
	return types.CreateOrderInput{
		OrderID:      order.OrderID,
		CustomerName: order.CustomerName,
		DatePlaced:   order.DatePlaced,
		Lines:        lines,
	}
}

// FromProjection converts a resolved order to the transport representation.
func FromProjection(p *types.OrderProjection) Order {
	if p == nil {
		return Order{}
	}
	out := Order{
		OrderID:      p.ID,
		CustomerName: p.CustomerName,
		DatePlaced:   p.DatePlaced,
		Items:        make([]OrderLine, 0, len(p.Lines)),
	}
	for _, line := range p.Lines {
		out.Items = append(out.Items, OrderLine{
			LineID:      line.ID,
			ItemID:      line.InventoryItemID,
			ItemName:    line.ItemName,
			Quantity:    line.Quantity,
			ItemMissing: line.ItemMissing,
		})
	}
	return out
}

func FromProjectionList(list []*types.OrderProjection) []Order {
	out := make([]Order, 0, len(list))
	for _, p := range list {
		out = append(out, FromProjection(p))
	}
	return out
}
