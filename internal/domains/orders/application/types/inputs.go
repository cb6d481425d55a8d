package types

import "time"

// LineInput is one requested line of a new order.
type LineInput struct {
	InventoryItemID int64
	Quantity        int32
}

// CreateOrderInput carries the caller-supplied fields of a new order.
type CreateOrderInput struct {
	OrderID      int64
	CustomerName string
	DatePlaced   time.Time
	Lines        []LineInput
}

// ListOrdersInput selects one page of orders. Page is 1-based; callers reject
// values below 1 before calling in.
type ListOrdersInput struct {
	Page     int
	PageSize int
}
