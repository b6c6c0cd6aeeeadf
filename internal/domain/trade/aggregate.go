package trade

import (
	"github.com/google/uuid"
)

// OrderAggregate is an order header together with its line details,
// ingredient breakdown and optional shipping record.
type OrderAggregate struct {
	Order    *Order
	Details  []*OrderDetail
	Shipping *ShippingDetail
}

// AddDetail appends a line detail and numbers it by position
func (a *OrderAggregate) AddDetail(d *OrderDetail) {
	a.Details = append(a.Details, d)
	d.OrderDetailsNumber = len(a.Details)
}

// BindOrderID propagates the order ID to every child row. Detail IDs are
// propagated to their ingredients, so this must run after details get IDs.
func (a *OrderAggregate) BindOrderID(orderID uuid.UUID) {
	for _, d := range a.Details {
		d.OrderID = orderID
		for _, ing := range d.Ingredients {
			ing.OrderID = orderID
			ing.OrderDetailID = d.ID
		}
	}
	if a.Shipping != nil {
		a.Shipping.OrderID = orderID
	}
}

// Cancel forces the whole aggregate into the cancelled, soft-deleted state
func (a *OrderAggregate) Cancel(reason string) {
	a.Order.Status = OrderStatusCancelled
	a.Order.IsDeleted = true
	for _, d := range a.Details {
		d.Status = OrderStatusCancelled
		d.IsDeleted = true
		for _, ing := range d.Ingredients {
			ing.Status = OrderStatusCancelled
			ing.IsDeleted = true
		}
	}
	if a.Shipping != nil {
		a.Shipping.Status = ShippingStatusCancelled
		if reason != "" {
			a.Shipping.Notes = reason
		}
	}
}

// Ingredients returns every ingredient row across all details
func (a *OrderAggregate) Ingredients() []*OrderDetailIngredient {
	var out []*OrderDetailIngredient
	for _, d := range a.Details {
		out = append(out, d.Ingredients...)
	}
	return out
}
