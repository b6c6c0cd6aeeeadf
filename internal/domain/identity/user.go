package identity

import (
	"strings"

	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/google/uuid"
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User is a staff account. PasswordHash is a bcrypt hash and never leaves the service.
type User struct {
	shared.BaseEntity
	Name         string
	Email        string
	PasswordHash string
	RoleID       *uuid.UUID
	FactoryID    *uuid.UUID
	Status       UserStatus
	IsDeleted    bool
}

// NewUser creates a new active user with an already hashed password
func NewUser(name, email, passwordHash string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: passwordHash,
		Status:       UserStatusActive,
	}, nil
}

// Update changes profile fields
func (u *User) Update(name string, status UserStatus) error {
	if status != "" && status != UserStatusActive && status != UserStatusInactive {
		return shared.NewDomainError("INVALID_STATUS", "User status must be active or inactive")
	}
	if name != "" {
		u.Name = strings.TrimSpace(name)
	}
	if status != "" {
		u.Status = status
	}
	u.Touch()
	return nil
}

// SetPasswordHash replaces the password hash
func (u *User) SetPasswordHash(hash string) {
	u.PasswordHash = hash
	u.Touch()
}

// AssignRole sets the user's role
func (u *User) AssignRole(roleID uuid.UUID) {
	u.RoleID = &roleID
	u.Touch()
}

// AssignFactory sets the factory the user works for
func (u *User) AssignFactory(factoryID uuid.UUID) {
	u.FactoryID = &factoryID
	u.Touch()
}

// IsActive reports whether the user can sign in
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive && !u.IsDeleted
}
