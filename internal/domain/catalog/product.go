package catalog

import (
	"strings"

	"github.com/erp/orderhub/internal/domain/shared"
)

const (
	// ImportedProductDescription marks products created from e-commerce line items
	ImportedProductDescription = "Product imported from Shopify"
	// DefaultBaseUnit is the unit given to auto-created products
	DefaultBaseUnit = "piece"
)

// Product is identified by its name
type Product struct {
	shared.BaseEntity
	Name        string
	Description string
	BaseUnit    string
	IsDeleted   bool
}

// NewProduct creates a new product
func NewProduct(name, description, baseUnit string) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if baseUnit == "" {
		baseUnit = DefaultBaseUnit
	}
	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		BaseUnit:    baseUnit,
	}, nil
}

// NewImportedProduct creates the placeholder product for an unseen line-item title
func NewImportedProduct(title string) (*Product, error) {
	return NewProduct(title, ImportedProductDescription, DefaultBaseUnit)
}
