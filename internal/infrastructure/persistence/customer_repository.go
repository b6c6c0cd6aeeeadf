package persistence

import (
	"context"
	"time"

	"github.com/erp/orderhub/internal/domain/partner"
	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/erp/orderhub/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) live(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.CustomerModel{}).Where("is_deleted = ?", false)
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := r.live(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a customer by exact email
func (r *GormCustomerRepository) FindByEmail(ctx context.Context, email string) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := r.live(ctx).Where("email = ?", email).Take(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of customers and the total count
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, int64, error) {
	query := r.live(ctx)
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.CustomerModel
	if err := paginate(query, filter, CustomerSortFields).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	customers := make([]partner.Customer, len(rows))
	for i := range rows {
		customers[i] = *rows[i].ToDomain()
	}
	return customers, total, nil
}

// ListIDs returns up to limit customer IDs
func (r *GormCustomerRepository) ListIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.live(ctx).Order("created_at ASC").Limit(limit).Pluck("id", &ids).Error
	return ids, err
}

// Create inserts a customer
func (r *GormCustomerRepository) Create(ctx context.Context, customer *partner.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	err := r.db.WithContext(ctx).Create(model).Error
	return translateDuplicate(err, shared.ErrAlreadyExists)
}

// Save updates the mutable customer columns
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	result := r.live(ctx).Where("id = ?", customer.ID).Updates(map[string]any{
		"name":       customer.Name,
		"phone":      customer.Phone,
		"address":    customer.Address,
		"status":     customer.Status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SoftDelete flags the customer as deleted
func (r *GormCustomerRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.live(ctx).Where("id = ?", id).Updates(map[string]any{
		"is_deleted": true,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
