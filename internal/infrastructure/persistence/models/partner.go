package models

import (
	"github.com/erp/orderhub/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer domain entity.
// Email is unique among live customers only.
type CustomerModel struct {
	SoftDeleteModel
	Name    string                 `gorm:"type:varchar(200)"`
	Email   string                 `gorm:"type:varchar(200);not null;uniqueIndex:idx_customers_email_live,where:is_deleted = false"`
	Phone   string                 `gorm:"type:varchar(50)"`
	Address string                 `gorm:"type:text"`
	Status  partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		Address:    m.Address,
		Status:     m.Status,
		IsDeleted:  m.IsDeleted,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.Address = c.Address
	m.Status = c.Status
	m.IsDeleted = c.IsDeleted
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
