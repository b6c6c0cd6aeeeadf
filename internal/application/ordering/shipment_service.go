package ordering

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/erp/orderhub/internal/domain/trade"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

// DetailDimensions groups the measurement properties of one order line
type DetailDimensions struct {
	OrderDetailsNumber int   `json:"order_details_number"`
	Length             []any `json:"length"`
	Width              []any `json:"width"`
	Thickness          []any `json:"thickness"`
	Weight             []any `json:"weight"`
}

// ShipmentResponse lists the dimensions of every line of an order
type ShipmentResponse struct {
	OrderNumber int64              `json:"order_number"`
	Dimensions  []DetailDimensions `json:"dimensions"`
}

// ShipmentService extracts shipping dimensions from line properties
type ShipmentService struct {
	orders trade.OrderRepository
	logger *zap.Logger
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(orders trade.OrderRepository, logger *zap.Logger) *ShipmentService {
	return &ShipmentService{orders: orders, logger: logger}
}

// Dimensions returns the dimensions of each line of the order. An unknown
// order yields an empty list rather than an error.
func (s *ShipmentService) Dimensions(ctx context.Context, orderNumber int64) (*ShipmentResponse, error) {
	details, err := s.orders.FindDetailsByOrderNumber(ctx, orderNumber)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	resp := &ShipmentResponse{
		OrderNumber: orderNumber,
		Dimensions:  make([]DetailDimensions, 0, len(details)),
	}
	for i := range details {
		resp.Dimensions = append(resp.Dimensions, ExtractDimensions(&details[i]))
	}
	s.logger.Debug("Shipment dimensions extracted",
		zap.Int64("order_number", orderNumber),
		zap.Int("lines", len(resp.Dimensions)))
	return resp, nil
}

// ExtractDimensions classifies product properties by case-insensitive key
// substring. The first matching class wins, in the order length, width,
// thickness (or height), weight. Keys are visited in sorted order.
func ExtractDimensions(d *trade.OrderDetail) DetailDimensions {
	dims := DetailDimensions{
		OrderDetailsNumber: d.OrderDetailsNumber,
		Length:             []any{},
		Width:              []any{},
		Thickness:          []any{},
		Weight:             []any{},
	}

	keys := make([]string, 0, len(d.ProductProperties))
	for k := range d.ProductProperties {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	fold := cases.Fold()
	for _, key := range keys {
		value := d.ProductProperties[key]
		k := fold.String(key)
		switch {
		case strings.Contains(k, "length"):
			dims.Length = append(dims.Length, value)
		case strings.Contains(k, "width"):
			dims.Width = append(dims.Width, value)
		case strings.Contains(k, "thickness"), strings.Contains(k, "height"):
			dims.Thickness = append(dims.Thickness, value)
		case strings.Contains(k, "weight"):
			dims.Weight = append(dims.Weight, value)
		}
	}
	return dims
}
