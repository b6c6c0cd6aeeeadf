package models

import (
	"github.com/erp/orderhub/internal/domain/identity"
	"github.com/google/uuid"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	SoftDeleteModel
	Name         string              `gorm:"type:varchar(200)"`
	Email        string              `gorm:"type:varchar(200);not null;uniqueIndex:idx_users_email"`
	PasswordHash string              `gorm:"type:varchar(255);not null"`
	RoleID       *uuid.UUID          `gorm:"type:uuid;index"`
	FactoryID    *uuid.UUID          `gorm:"type:uuid;index"`
	Status       identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		RoleID:       m.RoleID,
		FactoryID:    m.FactoryID,
		Status:       m.Status,
		IsDeleted:    m.IsDeleted,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Name = u.Name
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.RoleID = u.RoleID
	m.FactoryID = u.FactoryID
	m.Status = u.Status
	m.IsDeleted = u.IsDeleted
}

// RoleModel is the persistence model for roles.
type RoleModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex:idx_roles_name"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RoleModel) TableName() string {
	return "roles"
}

// ToDomain converts the persistence model to a domain Role.
func (m *RoleModel) ToDomain() *identity.Role {
	return &identity.Role{BaseEntity: m.BaseModel.ToDomain(), Name: m.Name, Description: m.Description}
}

// PermissionModel is the persistence model for permissions.
type PermissionModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex:idx_permissions_name"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PermissionModel) TableName() string {
	return "permissions"
}

// ToDomain converts the persistence model to a domain Permission.
func (m *PermissionModel) ToDomain() *identity.Permission {
	return &identity.Permission{BaseEntity: m.BaseModel.ToDomain(), Name: m.Name, Description: m.Description}
}

// RolePermissionModel links roles to permissions.
type RolePermissionModel struct {
	RoleID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PermissionID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName returns the table name for GORM
func (RolePermissionModel) TableName() string {
	return "role_permissions"
}

// FactoryModel is the persistence model for factories.
type FactoryModel struct {
	SoftDeleteModel
	Name string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (FactoryModel) TableName() string {
	return "factories"
}

// CompanyModel is the persistence model for companies.
type CompanyModel struct {
	SoftDeleteModel
	Name string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}
