package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/logitrack/logitrack/internal/shared/validation"
)

// Order is the aggregate root; it exclusively owns its lines.
type Order struct {
	ID           int64
	CustomerName string
	DatePlaced   time.Time
	Lines        []Line
}

// Line references an inventory item by id only. ID is assigned by the store.
type Line struct {
	ID              int64
	OrderID         int64
	InventoryItemID int64
	Quantity        int32
}

// NewOrder validates every field and line against now and builds the aggregate.
func NewOrder(id int64, customerName string, datePlaced time.Time, lines []Line, now time.Time) (*Order, error) {
	order := &Order{
		ID:           id,
		CustomerName: customerName,
		DatePlaced:   datePlaced,
		Lines:        make([]Line, 0, len(lines)),
	}
	for _, line := range lines {
		line.ID = 0
		line.OrderID = id
		order.Lines = append(order.Lines, line)
	}
	if err := order.Validate(now); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate(now time.Time) error {
	errs := []error{
		validation.ValidateID("orderId", o.ID),
		validation.ValidateText("customerName", o.CustomerName, validation.MaxTextLength),
		validation.ValidateDateNotFuture("datePlaced", o.DatePlaced, now),
	}
	for i, line := range o.Lines {
		errs = append(errs,
			validation.ValidateID(fmt.Sprintf("items[%d].itemId", i), line.InventoryItemID),
			validation.ValidateQuantity(fmt.Sprintf("items[%d].quantity", i), line.Quantity),
		)
	}
	return errors.Join(errs...)
}

// ItemIDs returns the distinct referenced item ids in first-seen order.
func (o *Order) ItemIDs() []int64 {
	seen := make(map[int64]struct{}, len(o.Lines))
	ids := make([]int64, 0, len(o.Lines))
	for _, line := range o.Lines {
		if _, ok := seen[line.InventoryItemID]; ok {
			continue
		}
		seen[line.InventoryItemID] = struct{}{}
		ids = append(ids, line.InventoryItemID)
	}
	return ids
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Lines = append([]Line(nil), o.Lines...)
	return &clone
}
