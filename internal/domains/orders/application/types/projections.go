package types

import "time"

// OrderProjection is the read model returned to adapters: an order with each
// line's item name resolved.
type OrderProjection struct {
	ID           int64
	CustomerName string
	DatePlaced   time.Time
	Lines        []LineProjection
}

// LineProjection is one order line. ItemMissing is set when the referenced
// inventory item was deleted after the order was placed; ItemName is then empty.
type LineProjection struct {
	ID              int64
	InventoryItemID int64
	ItemName        string
	Quantity        int32
	ItemMissing     bool
}

// Clone returns a deep copy.
func (p *OrderProjection) Clone() *OrderProjection {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Lines = append([]LineProjection(nil), p.Lines...)
	return &clone
}

// CloneList deep-copies a projection slice.
func CloneList(list []*OrderProjection) []*OrderProjection {
	out := make([]*OrderProjection, 0, len(list))
	for _, p := range list {
		out = append(out, p.Clone())
	}
	return out
}
