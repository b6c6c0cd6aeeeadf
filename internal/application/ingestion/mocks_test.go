package ingestion

import (
	"context"
	"time"

	"github.com/erp/orderhub/internal/domain/catalog"
	"github.com/erp/orderhub/internal/domain/partner"
	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/erp/orderhub/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*partner.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerRepository) ListIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByName(ctx context.Context, name string) (*catalog.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindFirstByNameFold(ctx context.Context, name string) (*catalog.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ListIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) ListIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) Create(ctx context.Context, stock *catalog.Stock) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

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
	args := m.Called(ctx, id, status)
	return args.Error(0)
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

// =============================================================================
// Write scope
// =============================================================================

type MockOrderWriter struct {
	mock.Mock
}

func (m *MockOrderWriter) CreateOrder(ctx context.Context, order *trade.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderWriter) CreateDetails(ctx context.Context, details []*trade.OrderDetail) error {
	return m.Called(ctx, details).Error(0)
}

func (m *MockOrderWriter) CreateIngredients(ctx context.Context, ingredients []*trade.OrderDetailIngredient) error {
	return m.Called(ctx, ingredients).Error(0)
}

func (m *MockOrderWriter) CreateShipping(ctx context.Context, shipping *trade.ShippingDetail) error {
	return m.Called(ctx, shipping).Error(0)
}

func (m *MockOrderWriter) UpdateOrder(ctx context.Context, order *trade.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderWriter) DeleteChildren(ctx context.Context, orderID uuid.UUID) error {
	return m.Called(ctx, orderID).Error(0)
}

func (m *MockOrderWriter) SoftDeleteIngredients(ctx context.Context, orderID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderWriter) SoftDeleteDetails(ctx context.Context, orderID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderWriter) SoftDeleteOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

// passthroughScope hands its writer to fn without any transaction
type passthroughScope struct {
	writer trade.OrderWriter
	atomic bool
}

func (s *passthroughScope) Execute(_ context.Context, fn func(w trade.OrderWriter) error) error {
	return fn(s.writer)
}

func (s *passthroughScope) Atomic() bool {
	return s.atomic
}

// =============================================================================
// Idempotency & metrics
// =============================================================================

type memoryDedupe struct {
	seen map[string]bool
}

func newMemoryDedupe() *memoryDedupe {
	return &memoryDedupe{seen: map[string]bool{}}
}

func (d *memoryDedupe) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	if d.seen[key] {
		return false, nil
	}
	d.seen[key] = true
	return true, nil
}

func (d *memoryDedupe) Forget(_ context.Context, key string) error {
	delete(d.seen, key)
	return nil
}

func (d *memoryDedupe) Close() error { return nil }

type recordedEvent struct {
	topic, outcome string
}

type fakeRecorder struct {
	events []recordedEvent
}

func (r *fakeRecorder) RecordWebhookEvent(_ context.Context, topic, outcome string) {
	r.events = append(r.events, recordedEvent{topic: topic, outcome: outcome})
}
