package handler

import (
	"context"
	"time"

	"github.com/erp/orderhub/internal/domain/trade"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockOrderRepository struct {
	mock.Mock
}

var _ trade.OrderRepository = (*MockOrderRepository)(nil)

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.OrderView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.OrderView), args.Error(1)
}

func (m *MockOrderRepository) FindHeader(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber int64) (*trade.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber int64) (bool, error) {
	args := m.Called(ctx, orderNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) NextOrderNumber(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter trade.OrderFilter) ([]trade.OrderView, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.OrderView), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status trade.OrderStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockOrderRepository) FindItemRequirements(ctx context.Context, factoryID *uuid.UUID) ([]trade.ItemRequirement, error) {
	args := m.Called(ctx, factoryID)
	return args.Get(0).([]trade.ItemRequirement), args.Error(1)
}

func (m *MockOrderRepository) Analytics(ctx context.Context, start, end time.Time, factoryID *uuid.UUID) (*trade.OrderAnalytics, error) {
	args := m.Called(ctx, start, end, factoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.OrderAnalytics), args.Error(1)
}

func (m *MockOrderRepository) FindDetailsByOrderNumber(ctx context.Context, orderNumber int64) ([]trade.OrderDetail, error) {
	args := m.Called(ctx, orderNumber)
	return args.Get(0).([]trade.OrderDetail), args.Error(1)
}

func (m *MockOrderRepository) FindInvoice(ctx context.Context, invoiceNumber string) (*trade.FabricInvoice, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.FabricInvoice), args.Error(1)
}

func testOrder(number int64) *trade.Order {
	order := trade.NewOrder(number, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), uuid.New())
	return order
}
