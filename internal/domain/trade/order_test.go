package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus(t *testing.T) {
	for _, s := range AllOrderStatuses() {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, OrderStatus("new").IsValid())
	assert.False(t, OrderStatus("").IsValid())

	_, err := ParseOrderStatus("archived")
	require.Error(t, err)
	assert.Equal(t, "invalid status: archived", err.Error())

	s, err := ParseOrderStatus("shipped")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, s)
}

func TestMapFulfillmentStatus(t *testing.T) {
	tests := []struct {
		in   string
		want OrderStatus
		ok   bool
	}{
		{"unfulfilled", OrderStatusPending, true},
		{"fulfilled", OrderStatusCompleted, true},
		{"partially_fulfilled", OrderStatusInProgress, true},
		{"cancelled", OrderStatusCancelled, true},
		{"unknown_status", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := MapFulfillmentStatus(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewOrder_TruncatesDate(t *testing.T) {
	loc := time.FixedZone("EDT", -4*3600)
	o := NewOrder(1001, time.Date(2025, 7, 3, 22, 30, 0, 0, loc), uuid.New())

	assert.Equal(t, time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC), o.OrderDate)
	assert.Equal(t, OrderStatusPending, o.Status)
	assert.True(t, o.TotalPrice.IsZero())
}

func TestOrderAggregate_Cancel(t *testing.T) {
	agg := &OrderAggregate{Order: NewOrder(1, time.Now(), uuid.New())}
	d := NewOrderDetail(uuid.New(), 2, OrderStatusCompleted)
	d.Ingredients = []*OrderDetailIngredient{NewOrderDetailIngredient(uuid.New(), decimal.NewFromInt(3), OrderStatusPending)}
	agg.AddDetail(d)
	agg.Shipping = NewShippingDetail("123 Elm St")

	agg.Cancel("customer")

	assert.Equal(t, OrderStatusCancelled, agg.Order.Status)
	assert.True(t, agg.Order.IsDeleted)
	assert.Equal(t, OrderStatusCancelled, d.Status)
	assert.True(t, d.IsDeleted)
	assert.True(t, d.Ingredients[0].IsDeleted)
	assert.Equal(t, ShippingStatusCancelled, agg.Shipping.Status)
	assert.Equal(t, "customer", agg.Shipping.Notes)
}

func TestOrderAggregate_BindOrderID(t *testing.T) {
	agg := &OrderAggregate{Order: NewOrder(1, time.Now(), uuid.New())}
	d1 := NewOrderDetail(uuid.New(), 1, OrderStatusPending)
	d1.Ingredients = []*OrderDetailIngredient{NewOrderDetailIngredient(uuid.New(), decimal.NewFromInt(1), OrderStatusPending)}
	d2 := NewOrderDetail(uuid.New(), 1, OrderStatusPending)
	agg.AddDetail(d1)
	agg.AddDetail(d2)
	agg.Shipping = NewShippingDetail("")

	agg.BindOrderID(agg.Order.ID)

	assert.Equal(t, 1, d1.OrderDetailsNumber)
	assert.Equal(t, 2, d2.OrderDetailsNumber)
	assert.Equal(t, agg.Order.ID, d2.OrderID)
	assert.Equal(t, d1.ID, d1.Ingredients[0].OrderDetailID)
	assert.Equal(t, agg.Order.ID, d1.Ingredients[0].OrderID)
	assert.Equal(t, agg.Order.ID, agg.Shipping.OrderID)
	assert.Len(t, agg.Ingredients(), 1)
}

func TestFabricInvoice_Defaults(t *testing.T) {
	inv := &FabricInvoice{Number: "INV-7"}
	assert.Equal(t, "fabric_invoice_INV-7.pdf", inv.DownloadFilename())
	assert.Equal(t, "application/pdf", inv.ContentType())

	inv.Filename = "a.pdf"
	inv.MimeType = "application/octet-stream"
	assert.Equal(t, "a.pdf", inv.DownloadFilename())
	assert.Equal(t, "application/octet-stream", inv.ContentType())
}
