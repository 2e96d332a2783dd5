package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/dinein/app/models"
)

type menuRow struct {
	ID         string  `gorm:"column:id;primaryKey;size:36"`
	Name       string  `gorm:"column:name;size:255;not null"`
	PriceAC    float64 `gorm:"column:price_ac;not null;default:0"`
	PriceNonAC float64 `gorm:"column:price_non_ac;not null;default:0"`
	Price      float64 `gorm:"column:price;not null;default:0"`
	Category   string  `gorm:"column:category;size:50;index"`
	Image      string  `gorm:"column:image;size:255"`
	Seq        int64   `gorm:"column:seq;index"`
}

func (menuRow) TableName() string { return "menu_items" }

func (r menuRow) model() models.MenuItem {
	return models.MenuItem{
		ID:         r.ID,
		Name:       r.Name,
		PriceAC:    r.PriceAC,
		PriceNonAC: r.PriceNonAC,
		Price:      r.Price,
		Category:   r.Category,
		Image:      r.Image,
	}
}

type orderRow struct {
	ID          string            `gorm:"column:id;primaryKey;size:36"`
	TableNumber string            `gorm:"column:table_number;size:50;not null"`
	IsAC        bool              `gorm:"column:is_ac;not null"`
	Items       []models.LineItem `gorm:"column:items;serializer:json;type:text"`
	Total       float64           `gorm:"column:total;not null"`
	Status      string            `gorm:"column:status;size:20;not null;index"`
	CreatedAt   time.Time         `gorm:"column:created_at;not null;index"`
}

func (orderRow) TableName() string { return "orders" }

func (r orderRow) model() models.Order {
	return models.Order{
		ID:          r.ID,
		TableNumber: r.TableNumber,
		IsAC:        r.IsAC,
		Items:       r.Items,
		Total:       r.Total,
		Status:      models.OrderStatus(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}

// AutoMigrate creates or updates the menu_items and orders tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&menuRow{}, &orderRow{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// ─── Catalog ─────────────────────────────────────────────────────────────────

type SQLCatalog struct {
	db *gorm.DB
}

func NewSQLCatalog(db *gorm.DB) *SQLCatalog {
	return &SQLCatalog{db: db}
}

func (s *SQLCatalog) List(ctx context.Context) ([]models.MenuItem, error) {
	var rows []menuRow
	if err := s.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("menu_items: list: %w", err)
	}

	items := make([]models.MenuItem, len(rows))
	for i, r := range rows {
		items[i] = r.model()
	}
	return items, nil
}

func (s *SQLCatalog) Create(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	item.ID = uuid.NewString()
	row := menuRow{
		ID:         item.ID,
		Name:       item.Name,
		PriceAC:    item.PriceAC,
		PriceNonAC: item.PriceNonAC,
		Price:      item.Price,
		Category:   item.Category,
		Image:      item.Image,
		Seq:        time.Now().UnixNano(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.MenuItem{}, fmt.Errorf("menu_items: create: %w", err)
	}
	return item, nil
}

func (s *SQLCatalog) Update(ctx context.Context, item models.MenuItem) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing menuRow
		err := tx.Where("id = ?", item.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("menu_items: find: %w", err)
		}

		err = tx.Model(&menuRow{}).Where("id = ?", item.ID).Updates(map[string]any{
			"name":         item.Name,
			"price_ac":     item.PriceAC,
			"price_non_ac": item.PriceNonAC,
			"price":        item.Price,
			"category":     item.Category,
			"image":        item.Image,
		}).Error
		if err != nil {
			return fmt.Errorf("menu_items: update: %w", err)
		}
		return nil
	})
}

func (s *SQLCatalog) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&menuRow{})
	if res.Error != nil {
		return fmt.Errorf("menu_items: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ─── Orders ──────────────────────────────────────────────────────────────────

// SQLOrders stores created_at in UTC so range scans compare like with like
// on drivers that keep timestamps as text.
type SQLOrders struct {
	db *gorm.DB
}

func NewSQLOrders(db *gorm.DB) *SQLOrders {
	return &SQLOrders{db: db}
}

func (s *SQLOrders) Create(ctx context.Context, order models.Order) (models.Order, error) {
	order.ID = uuid.NewString()
	row := orderRow{
		ID:          order.ID,
		TableNumber: order.TableNumber,
		IsAC:        order.IsAC,
		Items:       order.Items,
		Total:       order.Total,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt.UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Order{}, fmt.Errorf("orders: create: %w", err)
	}
	return order, nil
}

func (s *SQLOrders) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	if !models.CanTransition(models.StatusPending, status) {
		return models.ErrInvalidTransition
	}

	res := s.db.WithContext(ctx).Model(&orderRow{}).
		Where("id = ? AND status = ?", id, string(models.StatusPending)).
		Update("status", string(status))
	if res.Error != nil {
		return fmt.Errorf("orders: update status: %w", res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var n int64
	if err := s.db.WithContext(ctx).Model(&orderRow{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("orders: count: %w", err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return models.ErrInvalidTransition
}

func (s *SQLOrders) ListSince(ctx context.Context, since time.Time) ([]models.Order, error) {
	var rows []orderRow
	err := s.db.WithContext(ctx).
		Where("created_at >= ?", since.UTC()).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("orders: list: %w", err)
	}

	orders := make([]models.Order, len(rows))
	for i, r := range rows {
		orders[i] = r.model()
	}
	return orders, nil
}
