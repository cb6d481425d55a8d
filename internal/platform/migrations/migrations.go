package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the inventory and orders bounded contexts.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&inventoryItemRecord{},
		&orderRecord{},
		&orderLineRecord{},
	)
}

// Inventory schema mirrors the inventory Postgres adapter.
type inventoryItemRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false;column:id"`
	Name      string    `gorm:"column:name;size:50;not null"`
	Quantity  int32     `gorm:"column:quantity;not null"`
	Location  string    `gorm:"column:location;size:50;not null"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

func (inventoryItemRecord) TableName() string { return "inventory_items" }

// Order schema mirrors the orders Postgres adapter. Lines cascade with their
// order and carry no constraint towards inventory_items.
type orderRecord struct {
	ID           int64             `gorm:"primaryKey;autoIncrement:false;column:id"`
	CustomerName string            `gorm:"column:customer_name;size:50;not null"`
	DatePlaced   time.Time         `gorm:"column:date_placed;not null"`
	Lines        []orderLineRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"column:created_at;index"`
}

func (orderRecord) TableName() string { return "orders" }

type orderLineRecord struct {
	ID              int64 `gorm:"primaryKey;column:id"`
	OrderID         int64 `gorm:"column:order_id;not null;index"`
	InventoryItemID int64 `gorm:"column:inventory_item_id;not null;index"`
	Quantity        int32 `gorm:"column:quantity;not null"`
}

func (orderLineRecord) TableName() string { return "order_lines" }
