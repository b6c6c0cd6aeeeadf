package identity

import (
	"context"

	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/google/uuid"
)

// UserFilter narrows user listings
type UserFilter struct {
	shared.Filter
	RoleID    *uuid.UUID
	FactoryID *uuid.UUID
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a non-deleted user by email, including the password hash
	FindByEmail(ctx context.Context, email string) (*User, error)

	FindAll(ctx context.Context, filter UserFilter) ([]User, int64, error)

	// Create inserts a user. A duplicate email returns shared.ErrAlreadyExists.
	Create(ctx context.Context, user *User) error
	Save(ctx context.Context, user *User) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// RoleRepository defines the interface for role and permission lookups
type RoleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)

	// PermissionsForRole returns the permissions granted to a role
	PermissionsForRole(ctx context.Context, roleID uuid.UUID) ([]Permission, error)
}

// OrganizationRepository defines lookups over factories and companies
type OrganizationRepository interface {
	FactoryExists(ctx context.Context, id uuid.UUID) (bool, error)
	ListFactoryIDs(ctx context.Context, limit int) ([]uuid.UUID, error)
	ListCompanyIDs(ctx context.Context, limit int) ([]uuid.UUID, error)
}
