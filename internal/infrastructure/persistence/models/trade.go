package models

import (
	"time"

	"github.com/erp/orderhub/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderModel is the persistence model for the Order aggregate root.
// order_number is unique across all rows, deleted or not.
type OrderModel struct {
	SoftDeleteModel
	OrderNumber   int64             `gorm:"not null;uniqueIndex:idx_orders_order_number"`
	OrderDate     time.Time         `gorm:"type:date;not null;index"`
	Status        trade.OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	TotalPrice    decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	TotalDiscount decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	TotalTax      decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	CustomerID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	CompanyID     *uuid.UUID        `gorm:"type:uuid;index"`
	FactoryID     *uuid.UUID        `gorm:"type:uuid;index"`

	FabricInvoiceNumber     *string `gorm:"type:varchar(100);uniqueIndex:idx_orders_fabric_invoice_number"`
	FabricInvoiceMime       string  `gorm:"type:varchar(100)"`
	FabricInvoiceFilename   string  `gorm:"type:varchar(255)"`
	FabricInvoiceSizeBytes  int64
	FabricInvoiceStorageKey string `gorm:"type:varchar(500)"`
	FabricInvoiceData       []byte

	Customer *CustomerModel       `gorm:"foreignKey:CustomerID"`
	Shipping *ShippingDetailModel `gorm:"foreignKey:OrderID"`
	Details  []OrderDetailModel   `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *trade.Order {
	return &trade.Order{
		BaseEntity:    m.BaseModel.ToDomain(),
		OrderNumber:   m.OrderNumber,
		OrderDate:     m.OrderDate,
		Status:        m.Status,
		TotalPrice:    m.TotalPrice,
		TotalDiscount: m.TotalDiscount,
		TotalTax:      m.TotalTax,
		CustomerID:    m.CustomerID,
		CompanyID:     m.CompanyID,
		FactoryID:     m.FactoryID,
		IsDeleted:     m.IsDeleted,
	}
}

// FromDomain populates the header columns from a domain Order entity.
// Invoice columns are not touched.
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.OrderNumber = o.OrderNumber
	m.OrderDate = o.OrderDate
	m.Status = o.Status
	m.TotalPrice = o.TotalPrice
	m.TotalDiscount = o.TotalDiscount
	m.TotalTax = o.TotalTax
	m.CustomerID = o.CustomerID
	m.CompanyID = o.CompanyID
	m.FactoryID = o.FactoryID
	m.IsDeleted = o.IsDeleted
}

// ToView converts the model and its preloaded associations to a read view.
func (m *OrderModel) ToView() trade.OrderView {
	v := trade.OrderView{Order: *m.ToDomain()}
	if m.Customer != nil {
		v.Customer = m.Customer.ToDomain()
	}
	if m.Shipping != nil {
		v.Shipping = m.Shipping.ToDomain()
	}
	v.Details = make([]trade.DetailView, 0, len(m.Details))
	for i := range m.Details {
		v.Details = append(v.Details, m.Details[i].ToView())
	}
	return v
}

// Invoice returns the fabric invoice stored on the order, if any
func (m *OrderModel) Invoice() *trade.FabricInvoice {
	if m.FabricInvoiceNumber == nil {
		return nil
	}
	return &trade.FabricInvoice{
		Number:     *m.FabricInvoiceNumber,
		MimeType:   m.FabricInvoiceMime,
		Filename:   m.FabricInvoiceFilename,
		SizeBytes:  m.FabricInvoiceSizeBytes,
		StorageKey: m.FabricInvoiceStorageKey,
		Data:       m.FabricInvoiceData,
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderDetailModel is the persistence model for order line details.
type OrderDetailModel struct {
	SoftDeleteModel
	OrderID            uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductID          uuid.UUID         `gorm:"type:uuid;not null;index"`
	OrderDetailsNumber int               `gorm:"not null;default:1"`
	Quantity           int               `gorm:"not null;default:1"`
	ProductProperties  datatypes.JSONMap `gorm:"column:product_properties"`
	PricePerUnit       decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	Status             trade.OrderStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CompanyID          *uuid.UUID        `gorm:"type:uuid"`
	FactoryID          *uuid.UUID        `gorm:"type:uuid;index"`

	Product     *ProductModel                `gorm:"foreignKey:ProductID"`
	Ingredients []OrderDetailIngredientModel `gorm:"foreignKey:OrderDetailID"`
}

// TableName returns the table name for GORM
func (OrderDetailModel) TableName() string {
	return "order_details"
}

// ToDomain converts the persistence model to a domain OrderDetail.
func (m *OrderDetailModel) ToDomain() *trade.OrderDetail {
	props := map[string]any{}
	for k, v := range m.ProductProperties {
		props[k] = v
	}
	return &trade.OrderDetail{
		BaseEntity:         m.BaseModel.ToDomain(),
		OrderID:            m.OrderID,
		ProductID:          m.ProductID,
		OrderDetailsNumber: m.OrderDetailsNumber,
		Quantity:           m.Quantity,
		ProductProperties:  props,
		PricePerUnit:       m.PricePerUnit,
		Status:             m.Status,
		CompanyID:          m.CompanyID,
		FactoryID:          m.FactoryID,
		IsDeleted:          m.IsDeleted,
	}
}

// ToView converts the model and its preloaded associations to a read view.
func (m *OrderDetailModel) ToView() trade.DetailView {
	v := trade.DetailView{OrderDetail: *m.ToDomain()}
	if m.Product != nil {
		v.Product = m.Product.ToDomain()
	}
	v.Ingredients = make([]trade.IngredientView, 0, len(m.Ingredients))
	for i := range m.Ingredients {
		ing := trade.IngredientView{OrderDetailIngredient: *m.Ingredients[i].ToDomain()}
		if m.Ingredients[i].Item != nil {
			ing.Item = m.Ingredients[i].Item.ToDomain()
		}
		v.Ingredients = append(v.Ingredients, ing)
	}
	return v
}

// FromDomain populates the persistence model from a domain OrderDetail.
func (m *OrderDetailModel) FromDomain(d *trade.OrderDetail) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.OrderID = d.OrderID
	m.ProductID = d.ProductID
	m.OrderDetailsNumber = d.OrderDetailsNumber
	m.Quantity = d.Quantity
	m.ProductProperties = datatypes.JSONMap(d.ProductProperties)
	if m.ProductProperties == nil {
		m.ProductProperties = datatypes.JSONMap{}
	}
	m.PricePerUnit = d.PricePerUnit
	m.Status = d.Status
	m.CompanyID = d.CompanyID
	m.FactoryID = d.FactoryID
	m.IsDeleted = d.IsDeleted
}

// OrderDetailIngredientModel is the persistence model for ingredient rows.
type OrderDetailIngredientModel struct {
	SoftDeleteModel
	OrderID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	OrderDetailID uuid.UUID         `gorm:"type:uuid;not null;index"`
	ItemID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	Quantity      decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Status        trade.OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	CompanyID     *uuid.UUID        `gorm:"type:uuid"`
	FactoryID     *uuid.UUID        `gorm:"type:uuid;index"`

	Item        *ItemModel        `gorm:"foreignKey:ItemID"`
	Order       *OrderModel       `gorm:"foreignKey:OrderID"`
	OrderDetail *OrderDetailModel `gorm:"foreignKey:OrderDetailID"`
}

// TableName returns the table name for GORM
func (OrderDetailIngredientModel) TableName() string {
	return "order_detail_ingredients"
}

// ToDomain converts the persistence model to a domain ingredient.
func (m *OrderDetailIngredientModel) ToDomain() *trade.OrderDetailIngredient {
	return &trade.OrderDetailIngredient{
		BaseEntity:    m.BaseModel.ToDomain(),
		OrderID:       m.OrderID,
		OrderDetailID: m.OrderDetailID,
		ItemID:        m.ItemID,
		Quantity:      m.Quantity,
		Status:        m.Status,
		CompanyID:     m.CompanyID,
		FactoryID:     m.FactoryID,
		IsDeleted:     m.IsDeleted,
	}
}

// FromDomain populates the persistence model from a domain ingredient.
func (m *OrderDetailIngredientModel) FromDomain(i *trade.OrderDetailIngredient) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.OrderID = i.OrderID
	m.OrderDetailID = i.OrderDetailID
	m.ItemID = i.ItemID
	m.Quantity = i.Quantity
	m.Status = i.Status
	m.CompanyID = i.CompanyID
	m.FactoryID = i.FactoryID
	m.IsDeleted = i.IsDeleted
}

// ShippingDetailModel is the persistence model for an order's shipment.
type ShippingDetailModel struct {
	BaseModel
	OrderID         uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_shipping_details_order"`
	ShippingAddress string               `gorm:"type:text"`
	Carrier         string               `gorm:"type:varchar(100)"`
	ShippingMethod  string               `gorm:"type:varchar(100)"`
	ShippingCost    decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	TrackingNumber  string               `gorm:"type:varchar(100)"`
	Status          trade.ShippingStatus `gorm:"type:varchar(20);not null;default:'not_shipped'"`
	Notes           string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ShippingDetailModel) TableName() string {
	return "shipping_details"
}

// ToDomain converts the persistence model to a domain ShippingDetail.
func (m *ShippingDetailModel) ToDomain() *trade.ShippingDetail {
	return &trade.ShippingDetail{
		BaseEntity:      m.BaseModel.ToDomain(),
		OrderID:         m.OrderID,
		ShippingAddress: m.ShippingAddress,
		Carrier:         m.Carrier,
		ShippingMethod:  m.ShippingMethod,
		ShippingCost:    m.ShippingCost,
		TrackingNumber:  m.TrackingNumber,
		Status:          m.Status,
		Notes:           m.Notes,
	}
}

// FromDomain populates the persistence model from a domain ShippingDetail.
func (m *ShippingDetailModel) FromDomain(s *trade.ShippingDetail) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.OrderID = s.OrderID
	m.ShippingAddress = s.ShippingAddress
	m.Carrier = s.Carrier
	m.ShippingMethod = s.ShippingMethod
	m.ShippingCost = s.ShippingCost
	m.TrackingNumber = s.TrackingNumber
	m.Status = s.Status
	m.Notes = s.Notes
}
