package catalog

import (
	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock is the on-hand quantity of a product, optionally scoped to a factory
type Stock struct {
	shared.BaseEntity
	ProductID uuid.UUID
	FactoryID *uuid.UUID
	Quantity  decimal.Decimal
}

// NewEmptyStock creates the zero-quantity, factory-less row that accompanies a new product
func NewEmptyStock(productID uuid.UUID) *Stock {
	return &Stock{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Quantity:   decimal.Zero,
	}
}
