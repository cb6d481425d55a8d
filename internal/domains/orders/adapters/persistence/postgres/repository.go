package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/logitrack/logitrack/internal/domains/orders/domain"
	"github.com/logitrack/logitrack/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders and their lines in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle
// and schema (see platform/migrations).
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate to a relational table.
type orderRecord struct {
	ID           int64             `gorm:"primaryKey;autoIncrement:false;column:id"`
	CustomerName string            `gorm:"column:customer_name;size:50;not null"`
	DatePlaced   time.Time         `gorm:"column:date_placed;not null"`
	Lines        []orderLineRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"column:created_at;index"`
}

func (orderRecord) TableName() string { return "orders" }

// orderLineRecord has no foreign key to inventory_items: deleting an item
// leaves lines that reference it in place.
type orderLineRecord struct {
	ID              int64 `gorm:"primaryKey;column:id"`
	OrderID         int64 `gorm:"column:order_id;not null;index"`
	InventoryItemID int64 `gorm:"column:inventory_item_id;not null;index"`
	Quantity        int32 `gorm:"column:quantity;not null"`
}

func (orderLineRecord) TableName() string { return "order_lines" }

// Create inserts the order and its lines in one transaction. Referenced items
// are share-locked first, so a concurrent item delete waits for the commit.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockItems(tx, order.ItemIDs()); err != nil {
			return err
		}
		if err := tx.Omit("Lines").Create(&record).Error; err != nil {
			return err
		}
		if len(record.Lines) == 0 {
			return nil
		}
		for i := range record.Lines {
			record.Lines[i].OrderID = record.ID
		}
		return tx.Create(&record.Lines).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrAlreadyExists
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches an order with its lines in id order.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.withLines(r.db.WithContext(ctx)).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes the lines and then the order in one transaction.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&orderLineRecord{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&orderRecord{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return nil
	})
}

// ListPage returns one page of orders ordered by id.
func (r *Repository) ListPage(ctx context.Context, offset, limit int) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		return []*domain.Order{}, nil
	}
	var records []orderRecord
	if err := r.withLines(r.db.WithContext(ctx)).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

// lockItems takes FOR SHARE locks on the referenced inventory rows and fails
// with *ports.MissingItemsError when any of them is absent. order_lines has no
// foreign key to inventory_items, so this is the store-level check.
func lockItems(tx *gorm.DB, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	var found []int64
	if err := tx.Raw("SELECT id FROM inventory_items WHERE id = ANY(?) FOR SHARE", pq.Array(ids)).
		Scan(&found).Error; err != nil {
		return err
	}
	present := make(map[int64]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	var missing []int64
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return &ports.MissingItemsError{IDs: missing}
	}
	return nil
}

func (r *Repository) withLines(db *gorm.DB) *gorm.DB {
	return db.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_lines.id ASC")
	})
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	rec := orderRecord{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		DatePlaced:   order.DatePlaced.UTC(),
		Lines:        make([]orderLineRecord, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		rec.Lines = append(rec.Lines, orderLineRecord{
			OrderID:         order.ID,
			InventoryItemID: line.InventoryItemID,
			Quantity:        line.Quantity,
		})
	}
	return rec
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		DatePlaced:   r.DatePlaced,
		Lines:        make([]domain.Line, 0, len(r.Lines)),
	}
	for _, line := range r.Lines {
		order.Lines = append(order.Lines, domain.Line{
			ID:              line.ID,
			OrderID:         line.OrderID,
			InventoryItemID: line.InventoryItemID,
			Quantity:        line.Quantity,
		})
	}
	return order
}
