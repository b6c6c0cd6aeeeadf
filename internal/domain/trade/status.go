package trade

import "fmt"

// OrderStatus is the closed set of order and line-detail states
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusShipped    OrderStatus = "shipped"
)

var orderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusInProgress,
	OrderStatusCompleted,
	OrderStatusCancelled,
	OrderStatusShipped,
}

// AllOrderStatuses returns every valid order status
func AllOrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(orderStatuses))
	copy(out, orderStatuses)
	return out
}

// IsValid reports whether s belongs to the closed set
func (s OrderStatus) IsValid() bool {
	for _, v := range orderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// String returns the string representation
func (s OrderStatus) String() string {
	return string(s)
}

// ParseOrderStatus validates a raw status value
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid status: %s", raw)
	}
	return s, nil
}

// Fulfillment vocabulary used by e-commerce order payloads
const (
	FulfillmentUnfulfilled        = "unfulfilled"
	FulfillmentFulfilled          = "fulfilled"
	FulfillmentPartiallyFulfilled = "partially_fulfilled"
	FulfillmentCancelled          = "cancelled"
)

var fulfillmentStatusMap = map[string]OrderStatus{
	FulfillmentUnfulfilled:        OrderStatusPending,
	FulfillmentFulfilled:          OrderStatusCompleted,
	FulfillmentPartiallyFulfilled: OrderStatusInProgress,
	FulfillmentCancelled:          OrderStatusCancelled,
}

// MapFulfillmentStatus translates an external fulfillment status. Unknown or
// empty values return ok=false so callers can pick their own fallback.
func MapFulfillmentStatus(fulfillment string) (OrderStatus, bool) {
	s, ok := fulfillmentStatusMap[fulfillment]
	return s, ok
}

// ShippingStatus represents the state of an order's shipment
type ShippingStatus string

const (
	ShippingStatusNotShipped ShippingStatus = "not_shipped"
	ShippingStatusShipped    ShippingStatus = "shipped"
	ShippingStatusDelivered  ShippingStatus = "delivered"
	ShippingStatusCancelled  ShippingStatus = "cancelled"
)

// IsValid reports whether s is a known shipping status
func (s ShippingStatus) IsValid() bool {
	switch s {
	case ShippingStatusNotShipped, ShippingStatusShipped, ShippingStatusDelivered, ShippingStatusCancelled:
		return true
	}
	return false
}
