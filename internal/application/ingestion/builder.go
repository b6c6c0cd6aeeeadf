package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/erp/orderhub/internal/domain/catalog"
	"github.com/erp/orderhub/internal/domain/partner"
	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/erp/orderhub/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Violation messages reported by the builders
const (
	msgDateRequired         = "Either created_at or order_date is required"
	msgCustomerRequired     = "Customer details are required (use either customer_details or customers field)"
	msgCustomerEmail        = "Customer email is required (use either email or customers_email field)"
	msgDetailsNotArray      = "order_details must be an array"
	msgMissingShopifyFields = "Missing required fields: created_at, customer, line_items, or order_number"
)

// Builder turns inbound order payloads into validated order aggregates,
// resolving the customer and products they refer to. API payloads name their
// products and items by ID and those must already exist.
type Builder struct {
	resolver *Resolver
	orders   trade.OrderRepository
	products catalog.ProductRepository
	items    catalog.ItemRepository
	logger   *zap.Logger
}

// NewBuilder creates a new Builder
func NewBuilder(
	resolver *Resolver,
	orders trade.OrderRepository,
	products catalog.ProductRepository,
	items catalog.ItemRepository,
	logger *zap.Logger,
) *Builder {
	return &Builder{
		resolver: resolver,
		orders:   orders,
		products: products,
		items:    items,
		logger:   logger,
	}
}

// BuildFromAPIPayload validates an API order body and builds its aggregate.
// All violations are collected and returned together as a *shared.ValidationError.
// Without an order number the next free one is assigned.
func (b *Builder) BuildFromAPIPayload(ctx context.Context, p APIOrderPayload) (*trade.OrderAggregate, error) {
	var violations []string

	var orderDate time.Time
	switch {
	case p.OrderDate != "":
		d, err := ParseDate(p.OrderDate)
		if err != nil {
			violations = append(violations, "invalid order_date: "+p.OrderDate)
		}
		orderDate = d
	case p.CreatedAt != "":
		d, err := ParseDate(p.CreatedAt)
		if err != nil {
			violations = append(violations, "invalid created_at: "+p.CreatedAt)
		}
		orderDate = d
	default:
		violations = append(violations, msgDateRequired)
	}

	customer := p.customer()
	if customer == nil {
		violations = append(violations, msgCustomerRequired)
	} else if customer.email() == "" {
		violations = append(violations, msgCustomerEmail)
	}

	status := trade.OrderStatusPending
	if p.Status != "" {
		s, err := trade.ParseOrderStatus(p.Status)
		if err != nil {
			violations = append(violations, err.Error())
		}
		status = s
	}

	decoded, detailViolations := decodeAPIDetails(p.OrderDetails)
	violations = append(violations, detailViolations...)

	if err := shared.NewValidationError(violations); err != nil {
		return nil, err
	}
	details, err := b.checkReferences(ctx, decoded)
	if err != nil {
		return nil, err
	}

	resolved, err := b.resolver.ResolveCustomer(ctx, CustomerDraft{
		Name:    customer.Name,
		Email:   customer.email(),
		Phone:   customer.Phone,
		Address: customer.Address,
		Status:  partner.CustomerStatus(customer.Status),
	})
	if err != nil {
		return nil, err
	}

	orderNumber, err := b.orderNumber(ctx, p.OrderNumber)
	if err != nil {
		return nil, err
	}

	order := trade.NewOrder(orderNumber, orderDate, resolved.ID)
	order.Status = status
	order.FactoryID = p.FactoryID
	order.CompanyID = p.CompanyID
	if p.TotalPrice != nil {
		order.TotalPrice = *p.TotalPrice
	}
	if p.TotalDiscount != nil {
		order.TotalDiscount = *p.TotalDiscount
	}
	if p.TotalTax != nil {
		order.TotalTax = *p.TotalTax
	}

	agg := &trade.OrderAggregate{Order: order}
	for _, d := range details {
		agg.AddDetail(d)
	}
	if p.ShippingDetails != nil {
		shipping, err := shippingFromAPI(p.ShippingDetails)
		if err != nil {
			return nil, err
		}
		agg.Shipping = shipping
	}
	return agg, nil
}

func (b *Builder) orderNumber(ctx context.Context, given *int64) (int64, error) {
	if given != nil {
		return *given, nil
	}
	next, err := b.orders.NextOrderNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("allocate order number: %w", err)
	}
	return next, nil
}

// BuildDetails parses a replacement detail collection in the API format
func (b *Builder) BuildDetails(ctx context.Context, raw json.RawMessage) ([]*trade.OrderDetail, error) {
	decoded, violations := decodeAPIDetails(raw)
	if err := shared.NewValidationError(violations); err != nil {
		return nil, err
	}
	return b.checkReferences(ctx, decoded)
}

// apiDetail is a decoded order detail together with the payload positions of
// the detail and of each ingredient it kept
type apiDetail struct {
	index       int
	ingredients []int
	detail      *trade.OrderDetail
}

// checkReferences looks up every referenced product and item and reports each
// missing one by position
func (b *Builder) checkReferences(ctx context.Context, decoded []apiDetail) ([]*trade.OrderDetail, error) {
	products := make(map[uuid.UUID]bool)
	items := make(map[uuid.UUID]bool)
	var violations []string

	details := make([]*trade.OrderDetail, 0, len(decoded))
	for _, d := range decoded {
		found, err := exists(ctx, products, d.detail.ProductID, b.products.FindByID)
		if err != nil {
			return nil, fmt.Errorf("lookup product: %w", err)
		}
		if !found {
			violations = append(violations, fmt.Sprintf("product_id not found for order detail at index %d", d.index))
		}
		for k, ing := range d.detail.Ingredients {
			found, err := exists(ctx, items, ing.ItemID, b.items.FindByID)
			if err != nil {
				return nil, fmt.Errorf("lookup item: %w", err)
			}
			if !found {
				violations = append(violations,
					fmt.Sprintf("item_id not found for ingredient %d of order detail at index %d", d.ingredients[k], d.index))
			}
		}
		details = append(details, d.detail)
	}
	if err := shared.NewValidationError(violations); err != nil {
		return nil, err
	}
	return details, nil
}

// exists memoizes live-row lookups by ID. Only shared.ErrNotFound counts as absent.
func exists[T any](ctx context.Context, seen map[uuid.UUID]bool, id uuid.UUID, find func(context.Context, uuid.UUID) (T, error)) (bool, error) {
	if found, ok := seen[id]; ok {
		return found, nil
	}
	_, err := find(ctx, id)
	switch {
	case err == nil:
		seen[id] = true
	case errors.Is(err, shared.ErrNotFound):
		seen[id] = false
	default:
		return false, err
	}
	return seen[id], nil
}

// decodeAPIDetails parses the raw order_details value. It reports a missing or
// malformed product_id per index and keeps going so every problem is listed.
func decodeAPIDetails(raw json.RawMessage) ([]apiDetail, []string) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, []string{msgDetailsNotArray}
	}
	var items []APIOrderDetail
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, []string{msgDetailsNotArray}
	}

	var violations []string
	details := make([]apiDetail, 0, len(items))
	for i, item := range items {
		if item.ProductID == "" {
			violations = append(violations, fmt.Sprintf("product_id is required for order detail at index %d", i))
			continue
		}
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			violations = append(violations, fmt.Sprintf("product_id is invalid for order detail at index %d", i))
			continue
		}

		status := trade.OrderStatusPending
		if item.Status != "" {
			s, err := trade.ParseOrderStatus(item.Status)
			if err != nil {
				violations = append(violations, fmt.Sprintf("%s (order detail at index %d)", err.Error(), i))
				continue
			}
			status = s
		}

		quantity := 1
		if item.Quantity != nil {
			quantity = *item.Quantity
		}
		d := trade.NewOrderDetail(productID, quantity, status)
		if item.PricePerUnit != nil {
			d.PricePerUnit = *item.PricePerUnit
		}
		if item.ProductProperties != nil {
			d.ProductProperties = item.ProductProperties
		}
		d.FactoryID = item.FactoryID
		d.CompanyID = item.CompanyID

		decoded := apiDetail{index: i, detail: d}
		for j, ing := range item.Ingredients {
			itemID, err := uuid.Parse(ing.ItemID)
			if err != nil {
				violations = append(violations, fmt.Sprintf("item_id is required for ingredient %d of order detail at index %d", j, i))
				continue
			}
			qty := decimal.Zero
			if ing.Quantity != nil {
				qty = *ing.Quantity
			}
			ingStatus := status
			if ing.Status != "" {
				s, err := trade.ParseOrderStatus(ing.Status)
				if err != nil {
					violations = append(violations, fmt.Sprintf("%s (ingredient %d of order detail at index %d)", err.Error(), j, i))
					continue
				}
				ingStatus = s
			}
			row := trade.NewOrderDetailIngredient(itemID, qty, ingStatus)
			row.FactoryID = ing.FactoryID
			row.CompanyID = ing.CompanyID
			d.Ingredients = append(d.Ingredients, row)
			decoded.ingredients = append(decoded.ingredients, j)
		}
		details = append(details, decoded)
	}
	return details, violations
}

func shippingFromAPI(s *APIShipping) (*trade.ShippingDetail, error) {
	shipping := trade.NewShippingDetail(s.ShippingAddress)
	shipping.Carrier = s.Carrier
	shipping.ShippingMethod = s.ShippingMethod
	shipping.TrackingNumber = s.TrackingNumber
	shipping.Notes = s.Notes
	if s.ShippingCost != nil {
		shipping.ShippingCost = *s.ShippingCost
	}
	if s.Status != "" {
		status := trade.ShippingStatus(s.Status)
		if !status.IsValid() {
			return nil, shared.NewValidationError([]string{"invalid shipping status: " + s.Status})
		}
		shipping.Status = status
	}
	return shipping, nil
}

// BuildFromExternalPayload builds the aggregate of a Shopify order. Malformed
// numbers are coerced rather than rejected; only the required fields and the
// creation timestamp are validated.
func (b *Builder) BuildFromExternalPayload(ctx context.Context, o ShopifyOrder) (*trade.OrderAggregate, error) {
	orderNumber, err := validateShopifyOrder(o)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339, o.CreatedAt)
	if err != nil {
		return nil, shared.NewValidationError([]string{"invalid created_at: " + o.CreatedAt})
	}

	phone := o.Customer.Phone
	if phone == "" && o.Customer.DefaultAddress != nil {
		phone = o.Customer.DefaultAddress.Phone
	}
	customer, err := b.resolver.ResolveCustomer(ctx, CustomerDraft{
		Name:    o.Customer.FullName(),
		Email:   o.Customer.Email,
		Phone:   phone,
		Address: o.Customer.DefaultAddress.Format(),
		Status:  partner.CustomerStatusActive,
	})
	if err != nil {
		return nil, err
	}

	titles := make([]string, len(o.LineItems))
	for i, item := range o.LineItems {
		titles[i] = item.Title
	}
	productIDs, err := b.resolver.ResolveProducts(ctx, titles)
	if err != nil {
		return nil, err
	}

	status, ok := trade.MapFulfillmentStatus(o.FulfillmentStatus)
	if !ok {
		status = trade.OrderStatusPending
	}

	order := trade.NewOrder(orderNumber, createdAt, customer.ID)
	order.Status = status
	order.TotalPrice = o.TotalPrice.DecimalOrZero()
	order.TotalDiscount = o.TotalDiscounts.DecimalOrZero()
	order.TotalTax = o.TotalTax.DecimalOrZero()

	agg := &trade.OrderAggregate{Order: order}
	for i, item := range o.LineItems {
		quantity, ppu := lineItemAmounts(item.Quantity, item.Price)
		d := trade.NewOrderDetail(productIDs[i], quantity, status)
		d.PricePerUnit = ppu
		for _, prop := range item.Properties {
			if prop.Name == "" {
				continue
			}
			d.ProductProperties[prop.Name] = prop.Value.String()
		}
		agg.AddDetail(d)
	}

	if o.ShippingAddress != nil {
		shipping := trade.NewShippingDetail(o.ShippingAddress.Format())
		if len(o.ShippingLines) > 0 {
			shipping.ShippingMethod = o.ShippingLines[0].Title
			shipping.Carrier = o.ShippingLines[0].Code
		}
		if o.TotalShippingPriceSet != nil {
			shipping.ShippingCost = o.TotalShippingPriceSet.ShopMoney.Amount.DecimalOrZero()
		}
		agg.Shipping = shipping
	}

	if o.IsCancelled() {
		agg.Cancel(o.CancelReason)
	}

	b.logger.Debug("Built order from webhook payload",
		zap.Int64("order_number", orderNumber),
		zap.Int("line_items", len(agg.Details)),
		zap.Bool("cancelled", o.IsCancelled()))
	return agg, nil
}

// validateShopifyOrder checks the fields without which no order can be built
// and returns the parsed order number.
func validateShopifyOrder(o ShopifyOrder) (int64, error) {
	if o.CreatedAt == "" || o.Customer == nil || o.LineItems == nil || o.OrderNumber.IsEmpty() {
		return 0, shared.NewValidationError([]string{msgMissingShopifyFields})
	}
	n, ok := o.OrderNumber.Int64()
	if !ok {
		return 0, shared.NewValidationError([]string{"order_number must be an integer: " + o.OrderNumber.String()})
	}
	return n, nil
}

// lineItemAmounts coerces a line item's quantity and derives its unit price.
// A malformed or non-positive quantity becomes 1 and a malformed price 0. A
// fractional quantity is truncated, never below 1. The unit price divides by
// the stored quantity when the raw one was positive, so quantity times unit
// price gives back the line price.
func lineItemAmounts(rawQuantity, rawPrice Loose) (int, decimal.Decimal) {
	price := rawPrice.DecimalOrZero()

	raw, ok := rawQuantity.Decimal()
	if !ok || !raw.IsPositive() {
		return 1, price.Round(2)
	}
	quantity := 1
	if raw.GreaterThanOrEqual(decimal.NewFromInt(2)) && raw.LessThan(decimal.NewFromInt(math.MaxInt32)) {
		quantity = int(raw.IntPart())
	}
	return quantity, price.Div(decimal.NewFromInt(int64(quantity))).Round(2)
}

var dateLayouts = []string{time.RFC3339Nano, time.DateOnly, "2006-01-02T15:04:05", time.DateTime}

// ParseDate accepts an RFC 3339 timestamp or a plain date and returns its UTC date
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return trade.DateOnly(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", raw)
}
