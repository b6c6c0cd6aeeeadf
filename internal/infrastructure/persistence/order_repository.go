package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/erp/orderhub/internal/domain/trade"
	"github.com/erp/orderhub/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const invoiceDataColumn = "fabric_invoice_data"

// GormOrderRepository implements the read side of orders using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) live(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Omit(invoiceDataColumn).
		Where("is_deleted = ?", false)
}

// withGraph preloads customer, shipping, live details with product and live ingredients with item
func withGraph(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Customer").
		Preload("Shipping").
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_details_number ASC")
		}).
		Preload("Details.Product").
		Preload("Details.Ingredients", "is_deleted = ?", false).
		Preload("Details.Ingredients.Item")
}

// FindByID returns the full order graph
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.OrderView, error) {
	var model models.OrderModel
	if err := withGraph(r.live(ctx)).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	v := model.ToView()
	return &v, nil
}

// FindHeader returns the order header only
func (r *GormOrderRepository) FindHeader(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.live(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindByOrderNumber returns the live order header with the given number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber int64) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.live(ctx).Where("order_number = ?", orderNumber).Take(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// ExistsByOrderNumber checks every row, including soft-deleted ones, because
// the unique index covers them too.
func (r *GormOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("order_number = ?", orderNumber).
		Count(&count).Error
	return count > 0, err
}

// NextOrderNumber returns one past the highest order number in use
func (r *GormOrderRepository) NextOrderNumber(ctx context.Context) (int64, error) {
	var highest int64
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Select("COALESCE(MAX(order_number), 0)").
		Scan(&highest).Error
	if err != nil {
		return 0, err
	}
	return highest + 1, nil
}

// FindAll returns a page of order graphs and the total count
func (r *GormOrderRepository) FindAll(ctx context.Context, filter trade.OrderFilter) ([]trade.OrderView, int64, error) {
	query := r.live(ctx)
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.FactoryID != nil {
		query = query.Where("factory_id = ?", *filter.FactoryID)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		query = query.Where("order_date >= ? AND order_date <= ?", *filter.StartDate, *filter.EndDate)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.OrderModel
	if err := paginate(withGraph(query), filter.Filter, OrderSortFields).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	views := make([]trade.OrderView, len(rows))
	for i := range rows {
		views[i] = rows[i].ToView()
	}
	return views, total, nil
}

// UpdateStatus sets the status of one live order
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status trade.OrderStatus) error {
	result := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindItemRequirements returns live ingredients that are pending or in progress
func (r *GormOrderRepository) FindItemRequirements(ctx context.Context, factoryID *uuid.UUID) ([]trade.ItemRequirement, error) {
	query := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Order", func(db *gorm.DB) *gorm.DB { return db.Omit(invoiceDataColumn) }).
		Preload("OrderDetail").
		Preload("OrderDetail.Product").
		Where("is_deleted = ?", false).
		Where("status IN ?", []trade.OrderStatus{trade.OrderStatusPending, trade.OrderStatusInProgress})
	if factoryID != nil {
		query = query.Where("factory_id = ?", *factoryID)
	}

	var rows []models.OrderDetailIngredientModel
	if err := query.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]trade.ItemRequirement, 0, len(rows))
	for i := range rows {
		req := trade.ItemRequirement{OrderDetailIngredient: *rows[i].ToDomain()}
		if rows[i].Item != nil {
			req.Item = rows[i].Item.ToDomain()
		}
		if rows[i].Order != nil {
			req.Order = rows[i].Order.ToDomain()
		}
		if rows[i].OrderDetail != nil {
			req.OrderDetail = rows[i].OrderDetail.ToDomain()
			if rows[i].OrderDetail.Product != nil {
				req.Product = rows[i].OrderDetail.Product.ToDomain()
			}
		}
		out = append(out, req)
	}
	return out, nil
}

// Analytics counts live orders dated within [start, end] by status and by day
func (r *GormOrderRepository) Analytics(ctx context.Context, start, end time.Time, factoryID *uuid.UUID) (*trade.OrderAnalytics, error) {
	query := r.live(ctx).Select("status", "order_date").
		Where("order_date >= ? AND order_date <= ?", trade.DateOnly(start), trade.DateOnly(end))
	if factoryID != nil {
		query = query.Where("factory_id = ?", *factoryID)
	}

	var rows []models.OrderModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := &trade.OrderAnalytics{
		TotalOrders:    int64(len(rows)),
		OrdersByStatus: map[string]int64{},
		OrdersByDate:   map[string]int64{},
	}
	for _, row := range rows {
		out.OrdersByStatus[string(row.Status)]++
		out.OrdersByDate[row.OrderDate.UTC().Format(time.DateOnly)]++
	}
	return out, nil
}

// FindDetailsByOrderNumber returns live line details of a live order. An
// unknown order number yields no details rather than an error.
func (r *GormOrderRepository) FindDetailsByOrderNumber(ctx context.Context, orderNumber int64) ([]trade.OrderDetail, error) {
	order, err := r.FindByOrderNumber(ctx, orderNumber)
	if errors.Is(err, shared.ErrNotFound) {
		return []trade.OrderDetail{}, nil
	}
	if err != nil {
		return nil, err
	}

	var rows []models.OrderDetailModel
	err = r.db.WithContext(ctx).
		Where("order_id = ? AND is_deleted = ?", order.ID, false).
		Order("order_details_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	details := make([]trade.OrderDetail, len(rows))
	for i := range rows {
		details[i] = *rows[i].ToDomain()
	}
	return details, nil
}

// FindInvoice returns the invoice metadata and inline data
func (r *GormOrderRepository) FindInvoice(ctx context.Context, invoiceNumber string) (*trade.FabricInvoice, error) {
	var model models.OrderModel
	err := r.db.WithContext(ctx).
		Select("id", "fabric_invoice_number", "fabric_invoice_mime", "fabric_invoice_filename",
			"fabric_invoice_size_bytes", "fabric_invoice_storage_key", invoiceDataColumn).
		Where("fabric_invoice_number = ? AND is_deleted = ?", invoiceNumber, false).
		Take(&model).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	inv := model.Invoice()
	if inv == nil {
		return nil, shared.ErrNotFound
	}
	return inv, nil
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
