package ordering

import (
	"context"
	"testing"

	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/erp/orderhub/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExtractDimensions(t *testing.T) {
	d := &trade.OrderDetail{
		OrderDetailsNumber: 2,
		ProductProperties: map[string]any{
			"Length (cm)":   "120",
			"Panel Width":   "60",
			"HEIGHT":        "4",
			"Thickness":     "2",
			"Weight kg":     "9",
			"Colour":        "oak",
			"Length-Weight": "both",
		},
	}

	dims := ExtractDimensions(d)

	assert.Equal(t, 2, dims.OrderDetailsNumber)
	// "Length-Weight" matches length first
	assert.Equal(t, []any{"120", "both"}, dims.Length)
	assert.Equal(t, []any{"60"}, dims.Width)
	assert.Equal(t, []any{"4", "2"}, dims.Thickness)
	assert.Equal(t, []any{"9"}, dims.Weight)
}

func TestExtractDimensions_NoProperties(t *testing.T) {
	dims := ExtractDimensions(&trade.OrderDetail{OrderDetailsNumber: 1})

	assert.NotNil(t, dims.Length)
	assert.Empty(t, dims.Length)
	assert.Empty(t, dims.Weight)
}

func TestShipmentService_Dimensions(t *testing.T) {
	t.Run("one entry per line", func(t *testing.T) {
		orders := new(MockOrderRepository)
		orders.On("FindDetailsByOrderNumber", mock.Anything, int64(1001)).Return([]trade.OrderDetail{
			{OrderDetailsNumber: 1, ProductProperties: map[string]any{"width": "10"}},
			{OrderDetailsNumber: 2},
		}, nil)

		resp, err := NewShipmentService(orders, zap.NewNop()).Dimensions(context.Background(), 1001)

		require.NoError(t, err)
		assert.Equal(t, int64(1001), resp.OrderNumber)
		require.Len(t, resp.Dimensions, 2)
		assert.Equal(t, []any{"10"}, resp.Dimensions[0].Width)
	})

	t.Run("unknown order gives empty dimensions", func(t *testing.T) {
		orders := new(MockOrderRepository)
		orders.On("FindDetailsByOrderNumber", mock.Anything, int64(5)).Return([]trade.OrderDetail(nil), shared.ErrNotFound)

		resp, err := NewShipmentService(orders, zap.NewNop()).Dimensions(context.Background(), 5)

		require.NoError(t, err)
		assert.NotNil(t, resp.Dimensions)
		assert.Empty(t, resp.Dimensions)
	})
}
