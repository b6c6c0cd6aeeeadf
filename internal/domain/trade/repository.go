package trade

import (
	"context"
	"time"

	"github.com/erp/orderhub/internal/domain/catalog"
	"github.com/erp/orderhub/internal/domain/partner"
	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderFilter narrows order listings. The date range applies only when both
// ends are set.
type OrderFilter struct {
	shared.Filter
	CustomerID *uuid.UUID
	Status     OrderStatus
	FactoryID  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// OrderView is the read-side composition of an order with its related rows
type OrderView struct {
	Order
	Customer *partner.Customer
	Shipping *ShippingDetail
	Details  []DetailView
}

// DetailView is a line detail with its product and ingredients
type DetailView struct {
	OrderDetail
	Product     *catalog.Product
	Ingredients []IngredientView
}

// IngredientView is an ingredient with its item
type IngredientView struct {
	OrderDetailIngredient
	Item *catalog.Item
}

// ItemRequirement is an open ingredient together with what it belongs to
type ItemRequirement struct {
	OrderDetailIngredient
	Item        *catalog.Item
	Order       *Order
	OrderDetail *OrderDetail
	Product     *catalog.Product
}

// OrderAnalytics summarises orders within a date range
type OrderAnalytics struct {
	TotalOrders    int64            `json:"total_orders"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	OrdersByDate   map[string]int64 `json:"orders_by_date"`
}

// OrderRepository is the read side of orders plus single-row status changes.
// Soft-deleted rows are excluded from every read.
type OrderRepository interface {
	// FindByID returns the full order graph
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)

	// FindHeader returns the order header only
	FindHeader(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber returns the order header with the given business key
	FindByOrderNumber(ctx context.Context, orderNumber int64) (*Order, error)

	// ExistsByOrderNumber reports whether any order, deleted or not, uses orderNumber
	ExistsByOrderNumber(ctx context.Context, orderNumber int64) (bool, error)

	// NextOrderNumber returns one past the highest order number in use
	NextOrderNumber(ctx context.Context) (int64, error)

	// FindAll returns a page of order graphs, newest first, and the total count
	FindAll(ctx context.Context, filter OrderFilter) ([]OrderView, int64, error)

	// UpdateStatus sets the status of one order
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error

	// FindItemRequirements returns ingredients still pending or in progress
	FindItemRequirements(ctx context.Context, factoryID *uuid.UUID) ([]ItemRequirement, error)

	// Analytics aggregates orders dated within [start, end]
	Analytics(ctx context.Context, start, end time.Time, factoryID *uuid.UUID) (*OrderAnalytics, error)

	// FindDetailsByOrderNumber returns the live line details of an order, in line order
	FindDetailsByOrderNumber(ctx context.Context, orderNumber int64) ([]OrderDetail, error)

	// FindInvoice returns the fabric invoice with the given number, including inline data
	FindInvoice(ctx context.Context, invoiceNumber string) (*FabricInvoice, error)
}

// OrderWriter performs the individual writes of an order aggregate
type OrderWriter interface {
	// CreateOrder inserts the header. A taken order number returns ErrOrderNumberExists.
	CreateOrder(ctx context.Context, order *Order) error
	CreateDetails(ctx context.Context, details []*OrderDetail) error
	CreateIngredients(ctx context.Context, ingredients []*OrderDetailIngredient) error
	CreateShipping(ctx context.Context, shipping *ShippingDetail) error

	// UpdateOrder writes the header's mutable fields
	UpdateOrder(ctx context.Context, order *Order) error

	// DeleteChildren physically removes every ingredient and detail of the order
	DeleteChildren(ctx context.Context, orderID uuid.UUID) error

	// The soft-delete tiers only touch rows not yet flagged and return the count flagged
	SoftDeleteIngredients(ctx context.Context, orderID uuid.UUID) (int64, error)
	SoftDeleteDetails(ctx context.Context, orderID uuid.UUID) (int64, error)
	SoftDeleteOrder(ctx context.Context, orderID uuid.UUID) (int64, error)
}

// OrderWriteScope runs a sequence of order writes as one unit of work.
// Implementations decide whether the unit is a database transaction.
type OrderWriteScope interface {
	Execute(ctx context.Context, fn func(w OrderWriter) error) error
}
