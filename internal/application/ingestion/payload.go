package ingestion

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Loose holds a scalar JSON value as text. Shopify sends numbers both as JSON
// numbers and as strings; Loose accepts either and leaves coercion to the
// caller.
type Loose string

// UnmarshalJSON implements json.Unmarshaler
func (l *Loose) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Loose(s)
		return nil
	}
	*l = Loose(data)
	return nil
}

// String returns the trimmed text
func (l Loose) String() string {
	return strings.TrimSpace(string(l))
}

// IsEmpty reports whether the value was absent, null or blank
func (l Loose) IsEmpty() bool {
	return l.String() == ""
}

// Decimal parses the value, returning ok=false when malformed or empty
func (l Loose) Decimal() (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(l.String())
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// DecimalOrZero parses the value, defaulting to zero
func (l Loose) DecimalOrZero() decimal.Decimal {
	d, _ := l.Decimal()
	return d
}

var (
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)
)

// Int64 parses an integral value that fits in an int64
func (l Loose) Int64() (int64, bool) {
	d, ok := l.Decimal()
	if !ok || !d.Equal(d.Truncate(0)) {
		return 0, false
	}
	if d.GreaterThan(maxInt64) || d.LessThan(minInt64) {
		return 0, false
	}
	return d.IntPart(), true
}

// APIOrderPayload is the body of the simplified API order create
type APIOrderPayload struct {
	OrderNumber     *int64           `json:"order_number,omitempty"`
	CreatedAt       string           `json:"created_at,omitempty"`
	OrderDate       string           `json:"order_date,omitempty"`
	Status          string           `json:"status,omitempty"`
	CustomerDetails *APICustomer     `json:"customer_details,omitempty"`
	Customers       *APICustomer     `json:"customers,omitempty"`
	FactoryID       *uuid.UUID       `json:"factory_id,omitempty"`
	CompanyID       *uuid.UUID       `json:"company_id,omitempty"`
	TotalPrice      *decimal.Decimal `json:"total_price,omitempty"`
	TotalDiscount   *decimal.Decimal `json:"total_discount,omitempty"`
	TotalTax        *decimal.Decimal `json:"total_tax,omitempty"`
	// OrderDetails is kept raw so a non-array value can be reported as a violation
	OrderDetails    json.RawMessage `json:"order_details,omitempty" swaggertype:"array,object"`
	ShippingDetails *APIShipping    `json:"shipping_details,omitempty"`
}

// customer returns whichever customer block was supplied
func (p *APIOrderPayload) customer() *APICustomer {
	if p.CustomerDetails != nil {
		return p.CustomerDetails
	}
	return p.Customers
}

// APICustomer is the customer block of an API order
type APICustomer struct {
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"`
	CustomersEmail string `json:"customers_email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	Status         string `json:"status,omitempty"`
}

func (c *APICustomer) email() string {
	if c.Email != "" {
		return c.Email
	}
	return c.CustomersEmail
}

// APIOrderDetail is one line of an API order
type APIOrderDetail struct {
	ProductID         string           `json:"product_id"`
	Quantity          *int             `json:"quantity,omitempty"`
	PricePerUnit      *decimal.Decimal `json:"price_per_unit,omitempty"`
	ProductProperties map[string]any   `json:"product_properties,omitempty"`
	Status            string           `json:"status,omitempty"`
	FactoryID         *uuid.UUID       `json:"factory_id,omitempty"`
	CompanyID         *uuid.UUID       `json:"company_id,omitempty"`
	Ingredients       []APIIngredient  `json:"order_detail_ingredients,omitempty"`
}

// APIIngredient is an ingredient requirement of an API order line
type APIIngredient struct {
	ItemID    string           `json:"item_id"`
	Quantity  *decimal.Decimal `json:"quantity,omitempty"`
	Status    string           `json:"status,omitempty"`
	FactoryID *uuid.UUID       `json:"factory_id,omitempty"`
	CompanyID *uuid.UUID       `json:"company_id,omitempty"`
}

// APIShipping is the optional shipping block of an API order
type APIShipping struct {
	ShippingAddress string           `json:"shipping_address,omitempty"`
	Carrier         string           `json:"carrier,omitempty"`
	ShippingMethod  string           `json:"shipping_method,omitempty"`
	ShippingCost    *decimal.Decimal `json:"shipping_cost,omitempty"`
	TrackingNumber  string           `json:"tracking_number,omitempty"`
	Status          string           `json:"status,omitempty"`
	Notes           string           `json:"notes,omitempty"`
}

// ShopifyOrder is the subset of a Shopify order webhook body this service reads
type ShopifyOrder struct {
	ID                    Loose             `json:"id"`
	OrderNumber           Loose             `json:"order_number"`
	CreatedAt             string            `json:"created_at"`
	FinancialStatus       string            `json:"financial_status"`
	FulfillmentStatus     string            `json:"fulfillment_status"`
	CancelledAt           Loose             `json:"cancelled_at"`
	CancelReason          string            `json:"cancel_reason"`
	TotalPrice            Loose             `json:"total_price"`
	TotalDiscounts        Loose             `json:"total_discounts"`
	TotalTax              Loose             `json:"total_tax"`
	Customer              *ShopifyCustomer  `json:"customer"`
	LineItems             []ShopifyLineItem `json:"line_items"`
	ShippingAddress       *ShopifyAddress   `json:"shipping_address"`
	ShippingLines         []ShopifyShipLine `json:"shipping_lines"`
	TotalShippingPriceSet *ShopifyPriceSet  `json:"total_shipping_price_set"`
}

// IsCancelled reports whether the order carries a cancellation
func (o *ShopifyOrder) IsCancelled() bool {
	return !o.CancelledAt.IsEmpty() || o.FinancialStatus == "voided"
}

// ShopifyCustomer is the customer block of a Shopify order
type ShopifyCustomer struct {
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	DefaultAddress *ShopifyAddress `json:"default_address"`
}

// FullName joins first and last name
func (c *ShopifyCustomer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// ShopifyAddress is a Shopify postal address
type ShopifyAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Country   string `json:"country"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone"`
}

// Format joins the non-empty address parts with ", "
func (a *ShopifyAddress) Format() string {
	if a == nil {
		return ""
	}
	parts := []string{a.FirstName, a.LastName, a.Company, a.Address1, a.Address2, a.City, a.Province, a.Country, a.Zip}
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// ShopifyLineItem is one line of a Shopify order
type ShopifyLineItem struct {
	Title      string            `json:"title"`
	Quantity   Loose             `json:"quantity"`
	Price      Loose             `json:"price"`
	Properties []ShopifyProperty `json:"properties"`
}

// ShopifyProperty is a customisation attached to a line item
type ShopifyProperty struct {
	Name  string `json:"name"`
	Value Loose  `json:"value"`
}

// ShopifyShipLine is a shipping line of a Shopify order
type ShopifyShipLine struct {
	Title string `json:"title"`
	Code  string `json:"code"`
}

// ShopifyPriceSet carries amounts in shop and presentment currency
type ShopifyPriceSet struct {
	ShopMoney struct {
		Amount Loose `json:"amount"`
	} `json:"shop_money"`
}
