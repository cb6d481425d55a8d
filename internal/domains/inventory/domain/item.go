package domain

import (
	"errors"

	"github.com/logitrack/logitrack/internal/shared/validation"
)

// Item models a stocked inventory entry. Identifiers are assigned by the caller.
type Item struct {
	ID       int64
	Name     string
	Quantity int32
	Location string
}

// NewItem validates and constructs an Item. All field violations are reported together.
func NewItem(id int64, name string, quantity int32, location string) (*Item, error) {
	item := &Item{
		ID:       id,
		Name:     name,
		Quantity: quantity,
		Location: location,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate enforces invariants on the aggregate.
func (i *Item) Validate() error {
	return errors.Join(
		validation.ValidateID("itemId", i.ID),
		validation.ValidateText("name", i.Name, validation.MaxTextLength),
		validation.ValidateQuantity("quantity", i.Quantity),
		validation.ValidateText("location", i.Location, validation.MaxTextLength),
	)
}

// Clone returns a detached copy.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	clone := *i
	return &clone
}
