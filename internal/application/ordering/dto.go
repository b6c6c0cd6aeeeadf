package ordering

import (
	"encoding/json"
	"time"

	apppartner "github.com/erp/orderhub/internal/application/partner"
	"github.com/erp/orderhub/internal/domain/catalog"
	"github.com/erp/orderhub/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Requests ====================

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	CustomerID *uuid.UUID `form:"customer_id"`
	Status     string     `form:"status"`
	FactoryID  *uuid.UUID `form:"factory_id"`
	StartDate  *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"end_date" time_format:"2006-01-02"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// UpdateOrderRequest replaces header fields. When OrderDetails is present the
// whole detail collection is replaced with it.
type UpdateOrderRequest struct {
	OrderDate     *string          `json:"order_date"`
	Status        *string          `json:"status"`
	CustomerID    *uuid.UUID       `json:"customer_id"`
	FactoryID     *uuid.UUID       `json:"factory_id"`
	CompanyID     *uuid.UUID       `json:"company_id"`
	TotalPrice    *decimal.Decimal `json:"total_price"`
	TotalDiscount *decimal.Decimal `json:"total_discount"`
	TotalTax      *decimal.Decimal `json:"total_tax"`
	OrderDetails  json.RawMessage  `json:"order_details,omitempty" swaggertype:"array,object"`
}

// UpdateStatusRequest sets the status of one order
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BulkStatusRequest sets the status of several orders
type BulkStatusRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids" binding:"required,min=1"`
	Status   string      `json:"status" binding:"required"`
}

// DummyOrdersRequest asks for generated test orders
type DummyOrdersRequest struct {
	NumOrders int `json:"num_orders" binding:"omitempty,min=1,max=50"`
}

// ==================== Responses ====================

// OrderResponse is the full order graph
type OrderResponse struct {
	ID              uuid.UUID                    `json:"id"`
	OrderNumber     int64                        `json:"order_number"`
	OrderDate       string                       `json:"order_date"`
	Status          string                       `json:"status"`
	TotalPrice      decimal.Decimal              `json:"total_price"`
	TotalDiscount   decimal.Decimal              `json:"total_discount"`
	TotalTax        decimal.Decimal              `json:"total_tax"`
	CustomerID      uuid.UUID                    `json:"customer_id"`
	CompanyID       *uuid.UUID                   `json:"company_id,omitempty"`
	FactoryID       *uuid.UUID                   `json:"factory_id,omitempty"`
	Customer        *apppartner.CustomerResponse `json:"customers,omitempty"`
	ShippingDetails *ShippingResponse            `json:"shipping_details,omitempty"`
	OrderDetails    []OrderDetailResponse        `json:"order_details"`
	CreatedAt       time.Time                    `json:"created_at"`
	UpdatedAt       time.Time                    `json:"updated_at"`
}

// OrderDetailResponse is one line of an order
type OrderDetailResponse struct {
	ID                 uuid.UUID            `json:"id"`
	OrderDetailsNumber int                  `json:"order_details_number"`
	ProductID          uuid.UUID            `json:"product_id"`
	Product            *ProductResponse     `json:"products,omitempty"`
	Quantity           int                  `json:"quantity"`
	PricePerUnit       decimal.Decimal      `json:"price_per_unit"`
	ProductProperties  map[string]any       `json:"product_properties"`
	Status             string               `json:"status"`
	FactoryID          *uuid.UUID           `json:"factory_id,omitempty"`
	CompanyID          *uuid.UUID           `json:"company_id,omitempty"`
	Ingredients        []IngredientResponse `json:"order_detail_ingredients"`
}

// IngredientResponse is an ingredient with its item
type IngredientResponse struct {
	ID       uuid.UUID       `json:"id"`
	ItemID   uuid.UUID       `json:"item_id"`
	Item     *ItemResponse   `json:"items,omitempty"`
	Quantity decimal.Decimal `json:"quantity"`
	Status   string          `json:"status"`
}

// ProductResponse is the product summary embedded in order lines
type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	BaseUnit    string    `json:"base_unit"`
}

// ItemResponse is the item summary embedded in ingredients
type ItemResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Unit string    `json:"unit"`
}

// ShippingResponse is the shipment record of an order
type ShippingResponse struct {
	ID              uuid.UUID       `json:"id"`
	ShippingAddress string          `json:"shipping_address"`
	Carrier         string          `json:"carrier"`
	ShippingMethod  string          `json:"shipping_method"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	TrackingNumber  string          `json:"tracking_number"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes"`
}

// OrderHeaderResponse is an order without its related rows
type OrderHeaderResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber int64           `json:"order_number"`
	OrderDate   string          `json:"order_date"`
	Status      string          `json:"status"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	FactoryID   *uuid.UUID      `json:"factory_id,omitempty"`
}

// BulkStatusError is one failed order of a bulk update
type BulkStatusError struct {
	OrderID uuid.UUID `json:"order_id"`
	Error   string    `json:"error"`
}

// BulkStatusResult reports a bulk status update
type BulkStatusResult struct {
	UpdatedOrders []uuid.UUID       `json:"updated_orders"`
	Errors        []BulkStatusError `json:"errors"`
}

// ItemRequirementResponse is an open ingredient with what it belongs to
type ItemRequirementResponse struct {
	ID          uuid.UUID            `json:"id"`
	ItemID      uuid.UUID            `json:"item_id"`
	Item        *ItemResponse        `json:"items,omitempty"`
	Quantity    decimal.Decimal      `json:"quantity"`
	Status      string               `json:"status"`
	Order       *OrderHeaderResponse `json:"orders,omitempty"`
	DetailID    uuid.UUID            `json:"order_details_id"`
	DetailIndex int                  `json:"order_details_number"`
	Product     *ProductResponse     `json:"products,omitempty"`
}

// DummyOrdersResult reports generated orders
type DummyOrdersResult struct {
	Created int     `json:"created"`
	Orders  []int64 `json:"order_numbers"`
}

// ==================== Converters ====================

// ToOrderResponse converts an order view to its response
func ToOrderResponse(v *trade.OrderView) OrderResponse {
	resp := OrderResponse{
		ID:            v.ID,
		OrderNumber:   v.OrderNumber,
		OrderDate:     v.OrderDate.Format(time.DateOnly),
		Status:        string(v.Status),
		TotalPrice:    v.TotalPrice,
		TotalDiscount: v.TotalDiscount,
		TotalTax:      v.TotalTax,
		CustomerID:    v.CustomerID,
		CompanyID:     v.CompanyID,
		FactoryID:     v.FactoryID,
		OrderDetails:  make([]OrderDetailResponse, 0, len(v.Details)),
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
	if v.Customer != nil {
		c := apppartner.ToCustomerResponse(v.Customer)
		resp.Customer = &c
	}
	if v.Shipping != nil {
		resp.ShippingDetails = toShippingResponse(v.Shipping)
	}
	for i := range v.Details {
		resp.OrderDetails = append(resp.OrderDetails, toDetailResponse(&v.Details[i]))
	}
	return resp
}

// ToOrderResponses converts a slice of order views
func ToOrderResponses(views []trade.OrderView) []OrderResponse {
	out := make([]OrderResponse, len(views))
	for i := range views {
		out[i] = ToOrderResponse(&views[i])
	}
	return out
}

func toDetailResponse(d *trade.DetailView) OrderDetailResponse {
	resp := OrderDetailResponse{
		ID:                 d.ID,
		OrderDetailsNumber: d.OrderDetailsNumber,
		ProductID:          d.ProductID,
		Product:            toProductResponse(d.Product),
		Quantity:           d.Quantity,
		PricePerUnit:       d.PricePerUnit,
		ProductProperties:  d.ProductProperties,
		Status:             string(d.Status),
		FactoryID:          d.FactoryID,
		CompanyID:          d.CompanyID,
		Ingredients:        make([]IngredientResponse, 0, len(d.Ingredients)),
	}
	if resp.ProductProperties == nil {
		resp.ProductProperties = map[string]any{}
	}
	for _, ing := range d.Ingredients {
		resp.Ingredients = append(resp.Ingredients, IngredientResponse{
			ID:       ing.ID,
			ItemID:   ing.ItemID,
			Item:     toItemResponse(ing.Item),
			Quantity: ing.Quantity,
			Status:   string(ing.Status),
		})
	}
	return resp
}

func toShippingResponse(s *trade.ShippingDetail) *ShippingResponse {
	return &ShippingResponse{
		ID:              s.ID,
		ShippingAddress: s.ShippingAddress,
		Carrier:         s.Carrier,
		ShippingMethod:  s.ShippingMethod,
		ShippingCost:    s.ShippingCost,
		TrackingNumber:  s.TrackingNumber,
		Status:          string(s.Status),
		Notes:           s.Notes,
	}
}

func toProductResponse(p *catalog.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{ID: p.ID, Name: p.Name, Description: p.Description, BaseUnit: p.BaseUnit}
}

func toItemResponse(i *catalog.Item) *ItemResponse {
	if i == nil {
		return nil
	}
	return &ItemResponse{ID: i.ID, Name: i.Name, Unit: i.Unit}
}

func toHeaderResponse(o *trade.Order) *OrderHeaderResponse {
	if o == nil {
		return nil
	}
	return &OrderHeaderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		OrderDate:   o.OrderDate.Format(time.DateOnly),
		Status:      string(o.Status),
		TotalPrice:  o.TotalPrice,
		CustomerID:  o.CustomerID,
		FactoryID:   o.FactoryID,
	}
}

// ToItemRequirementResponses converts open ingredients
func ToItemRequirementResponses(reqs []trade.ItemRequirement) []ItemRequirementResponse {
	out := make([]ItemRequirementResponse, len(reqs))
	for i := range reqs {
		r := &reqs[i]
		out[i] = ItemRequirementResponse{
			ID:       r.ID,
			ItemID:   r.ItemID,
			Item:     toItemResponse(r.Item),
			Quantity: r.Quantity,
			Status:   string(r.Status),
			Order:    toHeaderResponse(r.Order),
			DetailID: r.OrderDetailID,
			Product:  toProductResponse(r.Product),
		}
		if r.OrderDetail != nil {
			out[i].DetailIndex = r.OrderDetail.OrderDetailsNumber
		}
	}
	return out
}
