package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/logitrack/logitrack/internal/domains/inventory/domain"
	"github.com/logitrack/logitrack/internal/domains/inventory/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists inventory items in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle
// and schema (see platform/migrations).
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// itemRecord maps the item aggregate to a relational table.
type itemRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false;column:id"`
	Name      string    `gorm:"column:name;size:50;not null"`
	Quantity  int32     `gorm:"column:quantity;not null"`
	Location  string    `gorm:"column:location;size:50;not null"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

func (itemRecord) TableName() string { return "inventory_items" }

// Insert creates a row; duplicate ids surface as ports.ErrAlreadyExists.
func (r *Repository) Insert(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("item is nil")
	}
	record := toRecord(item)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrAlreadyExists
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches an item by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record itemRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&itemRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes an item by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&itemRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all items ordered by id.
func (r *Repository) List(ctx context.Context) ([]*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []itemRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]*domain.Item, 0, len(records))
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return items, nil
}

func (r *Repository) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	var found []int64
	if err := r.db.WithContext(ctx).Model(&itemRecord{}).
		Where("id = ANY(?)", pq.Array(ids)).
		Pluck("id", &found).Error; err != nil {
		return nil, err
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
	return missing, nil
}

func (r *Repository) Names(ctx context.Context, ids []int64) (map[int64]string, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var records []itemRecord
	if err := r.db.WithContext(ctx).
		Select("id", "name").
		Where("id = ANY(?)", pq.Array(ids)).
		Find(&records).Error; err != nil {
		return nil, err
	}
	for _, rec := range records {
		names[rec.ID] = rec.Name
	}
	return names, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres inventory repository not configured")
	}
	return nil
}

func toRecord(item *domain.Item) itemRecord {
	return itemRecord{
		ID:       item.ID,
		Name:     item.Name,
		Quantity: item.Quantity,
		Location: item.Location,
	}
}

func (r itemRecord) toDomain() *domain.Item {
	return &domain.Item{
		ID:       r.ID,
		Name:     r.Name,
		Quantity: r.Quantity,
		Location: r.Location,
	}
}
