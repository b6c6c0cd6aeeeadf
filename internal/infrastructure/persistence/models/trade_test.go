package models

import (
	"testing"
	"time"

	"github.com/erp/orderhub/internal/domain/activity"
	"github.com/erp/orderhub/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderDetailModel_PropertiesRoundTrip(t *testing.T) {
	d := trade.NewOrderDetail(uuid.New(), 4, trade.OrderStatusPending)
	d.ProductProperties = map[string]any{"Length (in)": "20", "Color": "Navy"}
	d.PricePerUnit = decimal.RequireFromString("25.00")

	var m OrderDetailModel
	m.FromDomain(d)
	got := m.ToDomain()

	assert.Equal(t, d.ID, got.ID)
	assert.Equal(t, "20", got.ProductProperties["Length (in)"])
	assert.True(t, got.PricePerUnit.Equal(decimal.NewFromInt(25)))
}

func TestOrderDetailModel_NilPropertiesBecomeEmptyObject(t *testing.T) {
	d := trade.NewOrderDetail(uuid.New(), 1, trade.OrderStatusPending)
	d.ProductProperties = nil

	var m OrderDetailModel
	m.FromDomain(d)

	assert.NotNil(t, m.ProductProperties)
	assert.Empty(t, m.ProductProperties)
}

func TestOrderModel_ToView(t *testing.T) {
	order := trade.NewOrder(1001, time.Now(), uuid.New())
	m := OrderModelFromDomain(order)
	m.Customer = &CustomerModel{Email: "jon@doe.ca"}
	m.Details = []OrderDetailModel{{
		OrderDetailsNumber: 1,
		Product:            &ProductModel{Name: "Cushion"},
		Ingredients:        []OrderDetailIngredientModel{{Item: &ItemModel{Name: "Foam"}}},
	}}

	v := m.ToView()

	assert.Equal(t, int64(1001), v.OrderNumber)
	require.NotNil(t, v.Customer)
	assert.Equal(t, "jon@doe.ca", v.Customer.Email)
	require.Len(t, v.Details, 1)
	assert.Equal(t, "Cushion", v.Details[0].Product.Name)
	require.Len(t, v.Details[0].Ingredients, 1)
	assert.Equal(t, "Foam", v.Details[0].Ingredients[0].Item.Name)
	assert.Nil(t, v.Shipping)
}

func TestOrderModel_Invoice(t *testing.T) {
	m := &OrderModel{}
	assert.Nil(t, m.Invoice())

	number := "INV-1"
	m.FabricInvoiceNumber = &number
	m.FabricInvoiceSizeBytes = 3
	m.FabricInvoiceData = []byte("pdf")

	inv := m.Invoice()
	require.NotNil(t, inv)
	assert.Equal(t, "INV-1", inv.Number)
	assert.Equal(t, []byte("pdf"), inv.Data)
}

func TestActivityLogModel_RoundTrip(t *testing.T) {
	entry := activity.NewLog("orders", "42", "Created order", activity.Actor{UserID: "u1", UserName: "Ada", Email: "ada@example.com"})

	var m ActivityLogModel
	require.NoError(t, m.FromDomain(entry))
	assert.JSONEq(t, `{"user_id":"u1","user_name":"Ada","email":"ada@example.com"}`, string(m.PerformedBy))

	got, err := m.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, entry.PerformedBy, got.PerformedBy)
}
