package models

import (
	"time"

	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// SoftDeleteModel adds the is_deleted flag used by every business table
type SoftDeleteModel struct {
	BaseModel
	IsDeleted bool `gorm:"not null;default:false;index"`
}

// All returns every model in migration order
func All() []any {
	return []any{
		&FactoryModel{},
		&CompanyModel{},
		&PermissionModel{},
		&RoleModel{},
		&RolePermissionModel{},
		&UserModel{},
		&CustomerModel{},
		&ProductModel{},
		&StockModel{},
		&ItemModel{},
		&OrderModel{},
		&OrderDetailModel{},
		&OrderDetailIngredientModel{},
		&ShippingDetailModel{},
		&ActivityLogModel{},
	}
}
