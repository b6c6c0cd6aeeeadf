package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a non-deleted product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByName finds a product by exact, case-sensitive name
	FindByName(ctx context.Context, name string) (*Product, error)

	// FindFirstByNameFold returns the first product whose name matches
	// case-insensitively, ordered by creation time then ID
	FindFirstByNameFold(ctx context.Context, name string) (*Product, error)

	// ListIDs returns up to limit product IDs
	ListIDs(ctx context.Context, limit int) ([]uuid.UUID, error)

	// Create inserts a product. A duplicate name returns shared.ErrAlreadyExists.
	Create(ctx context.Context, product *Product) error
}

// StockRepository defines the interface for stock persistence
type StockRepository interface {
	Create(ctx context.Context, stock *Stock) error
}

// ItemRepository defines the interface for raw material persistence
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	ListIDs(ctx context.Context, limit int) ([]uuid.UUID, error)
}
