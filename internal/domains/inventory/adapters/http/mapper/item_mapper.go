package mapper

import (
	inventorydomain "github.com/logitrack/logitrack/internal/domains/inventory/domain"
	inventoryports "github.com/logitrack/logitrack/internal/domains/inventory/ports"
)

// Item is the transport shape of an inventory item.
type Item struct {
	ItemID   int64  `json:"itemId"`
	Name     string `json:"name"`
	Quantity int32  `json:"quantity"`
	Location string `json:"location"`
}

// ToAddItemInput converts a request body into the service input.
func ToAddItemInput(item Item) inventoryports.AddItemInput {
	return inventoryports.AddItemInput{
		ID:       item.ItemID,
		Name:     item.Name,
		Quantity: item.Quantity,
		Location: item.Location,
	}
}

// FromDomainItem converts a domain item to the transport representation.
func FromDomainItem(item *inventorydomain.Item) Item {
	if item == nil {
		return Item{}
	}
	return Item{
		ItemID:   item.ID,
		Name:     item.Name,
		Quantity: item.Quantity,
		Location: item.Location,
	}
}

func FromDomainItems(items []*inventorydomain.Item) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		out = append(out, FromDomainItem(item))
	}
	return out
}
