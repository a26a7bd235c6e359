package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderNumber finds an order by its order number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("order_number = ?", orderNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists the order and any tracking records appended since it was
// loaded. Record inserts use ON CONFLICT DO NOTHING so re-saving a loaded
// aggregate does not duplicate history.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.OrderModelFromDomain(o)
		if err := tx.Save(model).Error; err != nil {
			return err
		}

		for i := range o.TrackingRecords {
			record := &models.TrackingRecordModel{}
			record.FromDomain(&o.TrackingRecords[i])
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(record).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// ListTrackingRecords returns the tracking history for an order, newest first
func (r *GormOrderRepository) ListTrackingRecords(ctx context.Context, orderID uuid.UUID) ([]order.TrackingRecord, error) {
	var recordModels []models.TrackingRecordModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]order.TrackingRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
