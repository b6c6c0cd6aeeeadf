package trade

import (
	"time"

	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrOrderNumberExists is returned when an order_number is already taken
var ErrOrderNumberExists = shared.NewDomainError("ORDER_NUMBER_EXISTS", "Order number already exists")

// Order is the aggregate root of an order. Orders are never physically removed.
type Order struct {
	shared.BaseEntity
	OrderNumber   int64
	OrderDate     time.Time
	Status        OrderStatus
	TotalPrice    decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalTax      decimal.Decimal
	CustomerID    uuid.UUID
	CompanyID     *uuid.UUID
	FactoryID     *uuid.UUID
	IsDeleted     bool
}

// NewOrder creates a pending order header
func NewOrder(orderNumber int64, orderDate time.Time, customerID uuid.UUID) *Order {
	return &Order{
		BaseEntity:    shared.NewBaseEntity(),
		OrderNumber:   orderNumber,
		OrderDate:     DateOnly(orderDate),
		Status:        OrderStatusPending,
		TotalPrice:    decimal.Zero,
		TotalDiscount: decimal.Zero,
		TotalTax:      decimal.Zero,
		CustomerID:    customerID,
	}
}

// SetStatus changes the order status
func (o *Order) SetStatus(status OrderStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "invalid status: "+string(status))
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

// OrderDetail is one line of an order
type OrderDetail struct {
	shared.BaseEntity
	OrderID            uuid.UUID
	ProductID          uuid.UUID
	OrderDetailsNumber int
	Quantity           int
	ProductProperties  map[string]any
	PricePerUnit       decimal.Decimal
	Status             OrderStatus
	CompanyID          *uuid.UUID
	FactoryID          *uuid.UUID
	IsDeleted          bool
	Ingredients        []*OrderDetailIngredient
}

// NewOrderDetail creates a line detail for productID
func NewOrderDetail(productID uuid.UUID, quantity int, status OrderStatus) *OrderDetail {
	return &OrderDetail{
		BaseEntity:        shared.NewBaseEntity(),
		ProductID:         productID,
		Quantity:          quantity,
		ProductProperties: map[string]any{},
		PricePerUnit:      decimal.Zero,
		Status:            status,
	}
}

// OrderDetailIngredient is a raw material requirement of a line detail
type OrderDetailIngredient struct {
	shared.BaseEntity
	OrderID       uuid.UUID
	OrderDetailID uuid.UUID
	ItemID        uuid.UUID
	Quantity      decimal.Decimal
	Status        OrderStatus
	CompanyID     *uuid.UUID
	FactoryID     *uuid.UUID
	IsDeleted     bool
}

// NewOrderDetailIngredient creates an ingredient requirement
func NewOrderDetailIngredient(itemID uuid.UUID, quantity decimal.Decimal, status OrderStatus) *OrderDetailIngredient {
	return &OrderDetailIngredient{
		BaseEntity: shared.NewBaseEntity(),
		ItemID:     itemID,
		Quantity:   quantity,
		Status:     status,
	}
}

// ShippingDetail is the one-to-one shipment record of an order
type ShippingDetail struct {
	shared.BaseEntity
	OrderID         uuid.UUID
	ShippingAddress string
	Carrier         string
	ShippingMethod  string
	ShippingCost    decimal.Decimal
	TrackingNumber  string
	Status          ShippingStatus
	Notes           string
}

// NewShippingDetail creates a not-yet-shipped shipment record
func NewShippingDetail(address string) *ShippingDetail {
	return &ShippingDetail{
		BaseEntity:      shared.NewBaseEntity(),
		ShippingAddress: address,
		ShippingCost:    decimal.Zero,
		Status:          ShippingStatusNotShipped,
	}
}

// DateOnly truncates t to midnight UTC of its UTC calendar day
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
