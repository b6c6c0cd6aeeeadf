package partner

import (
	"context"

	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer persistence.
// Soft-deleted customers are invisible to every finder.
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByEmail finds a customer by exact, case-sensitive email
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// FindAll returns a page of customers, newest first, and the total count
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, int64, error)

	// ListIDs returns up to limit customer IDs
	ListIDs(ctx context.Context, limit int) ([]uuid.UUID, error)

	// Create inserts a customer. A duplicate email returns shared.ErrAlreadyExists.
	Create(ctx context.Context, customer *Customer) error

	// Save updates an existing customer
	Save(ctx context.Context, customer *Customer) error

	// SoftDelete flags the customer as deleted
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
