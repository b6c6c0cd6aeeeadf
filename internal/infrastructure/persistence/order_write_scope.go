package persistence

import (
	"context"
	"time"

	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/erp/orderhub/internal/domain/trade"
	"github.com/erp/orderhub/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderWriteScope implements OrderWriteScope. In atomic mode the unit of
// work is one database transaction; otherwise every write commits on its own.
type GormOrderWriteScope struct {
	db     *gorm.DB
	atomic bool
}

// NewGormOrderWriteScope creates a new GormOrderWriteScope
func NewGormOrderWriteScope(db *gorm.DB, atomic bool) *GormOrderWriteScope {
	return &GormOrderWriteScope{db: db, atomic: atomic}
}

// Execute runs fn against a writer bound to the scope's unit of work.
// In atomic mode an error from fn rolls everything back.
func (s *GormOrderWriteScope) Execute(ctx context.Context, fn func(w trade.OrderWriter) error) error {
	if !s.atomic {
		return fn(&gormOrderWriter{db: s.db.WithContext(ctx)})
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormOrderWriter{db: tx})
	})
}

// Atomic reports whether writes run in a transaction
func (s *GormOrderWriteScope) Atomic() bool {
	return s.atomic
}

// gormOrderWriter performs the individual aggregate writes
type gormOrderWriter struct {
	db *gorm.DB
}

func (w *gormOrderWriter) CreateOrder(ctx context.Context, order *trade.Order) error {
	model := models.OrderModelFromDomain(order)
	err := w.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error
	return translateDuplicate(err, trade.ErrOrderNumberExists)
}

func (w *gormOrderWriter) CreateDetails(ctx context.Context, details []*trade.OrderDetail) error {
	if len(details) == 0 {
		return nil
	}
	rows := make([]models.OrderDetailModel, len(details))
	for i, d := range details {
		rows[i].FromDomain(d)
	}
	return w.db.WithContext(ctx).Omit(clause.Associations).Create(&rows).Error
}

func (w *gormOrderWriter) CreateIngredients(ctx context.Context, ingredients []*trade.OrderDetailIngredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	rows := make([]models.OrderDetailIngredientModel, len(ingredients))
	for i, ing := range ingredients {
		rows[i].FromDomain(ing)
	}
	return w.db.WithContext(ctx).Omit(clause.Associations).Create(&rows).Error
}

func (w *gormOrderWriter) CreateShipping(ctx context.Context, shipping *trade.ShippingDetail) error {
	var model models.ShippingDetailModel
	model.FromDomain(shipping)
	return w.db.WithContext(ctx).Create(&model).Error
}

func (w *gormOrderWriter) UpdateOrder(ctx context.Context, order *trade.Order) error {
	result := w.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"order_date":     order.OrderDate,
			"status":         order.Status,
			"total_price":    order.TotalPrice,
			"total_discount": order.TotalDiscount,
			"total_tax":      order.TotalTax,
			"customer_id":    order.CustomerID,
			"company_id":     order.CompanyID,
			"factory_id":     order.FactoryID,
			"is_deleted":     order.IsDeleted,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (w *gormOrderWriter) DeleteChildren(ctx context.Context, orderID uuid.UUID) error {
	db := w.db.WithContext(ctx)
	if err := db.Where("order_id = ?", orderID).Delete(&models.OrderDetailIngredientModel{}).Error; err != nil {
		return err
	}
	return db.Where("order_id = ?", orderID).Delete(&models.OrderDetailModel{}).Error
}

func (w *gormOrderWriter) SoftDeleteIngredients(ctx context.Context, orderID uuid.UUID) (int64, error) {
	return w.flagDeleted(ctx, &models.OrderDetailIngredientModel{}, "order_id", orderID)
}

func (w *gormOrderWriter) SoftDeleteDetails(ctx context.Context, orderID uuid.UUID) (int64, error) {
	return w.flagDeleted(ctx, &models.OrderDetailModel{}, "order_id", orderID)
}

func (w *gormOrderWriter) SoftDeleteOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	return w.flagDeleted(ctx, &models.OrderModel{}, "id", orderID)
}

// flagDeleted only touches rows not yet flagged so a repeated cascade is a no-op
func (w *gormOrderWriter) flagDeleted(ctx context.Context, model any, column string, id uuid.UUID) (int64, error) {
	result := w.db.WithContext(ctx).Model(model).
		Where(column+" = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{"is_deleted": true, "updated_at": time.Now()})
	return result.RowsAffected, result.Error
}

var (
	_ trade.OrderWriteScope = (*GormOrderWriteScope)(nil)
	_ trade.OrderWriter     = (*gormOrderWriter)(nil)
)
