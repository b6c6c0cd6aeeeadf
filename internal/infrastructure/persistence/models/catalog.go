package models

import (
	"github.com/erp/orderhub/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	SoftDeleteModel
	Name        string `gorm:"type:varchar(200);not null;uniqueIndex:idx_products_name_live,where:is_deleted = false"`
	Description string `gorm:"type:text"`
	BaseUnit    string `gorm:"type:varchar(20);not null;default:'piece'"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
		BaseUnit:    m.BaseUnit,
		IsDeleted:   m.IsDeleted,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.Description = p.Description
	m.BaseUnit = p.BaseUnit
	m.IsDeleted = p.IsDeleted
}

// StockModel is the persistence model for the Stock domain entity.
type StockModel struct {
	BaseModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	FactoryID *uuid.UUID      `gorm:"type:uuid;index"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockModel) TableName() string {
	return "stock"
}

// FromDomain populates the persistence model from a domain Stock entity.
func (m *StockModel) FromDomain(s *catalog.Stock) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.ProductID = s.ProductID
	m.FactoryID = s.FactoryID
	m.Quantity = s.Quantity
}

// ItemModel is the persistence model for raw material items.
type ItemModel struct {
	SoftDeleteModel
	Name string `gorm:"type:varchar(200);not null"`
	Unit string `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "items"
}

// ToDomain converts the persistence model to a domain Item entity.
func (m *ItemModel) ToDomain() *catalog.Item {
	return &catalog.Item{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Unit:       m.Unit,
		IsDeleted:  m.IsDeleted,
	}
}
