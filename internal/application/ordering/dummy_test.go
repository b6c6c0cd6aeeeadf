package ordering

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	appactivity "github.com/erp/orderhub/internal/application/activity"
	"github.com/erp/orderhub/internal/application/ingestion"
	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/erp/orderhub/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type dummyFixture struct {
	customers *MockCustomerRepository
	products  *MockProductRepository
	items     *MockItemRepository
	orgs      *MockOrganizationRepository
	orders    *MockOrderRepository
	writer    *MockOrderWriter
	generator *DummyGenerator
	now       time.Time
}

func newDummyFixture() *dummyFixture {
	f := &dummyFixture{
		customers: new(MockCustomerRepository),
		products:  new(MockProductRepository),
		items:     new(MockItemRepository),
		orgs:      new(MockOrganizationRepository),
		orders:    new(MockOrderRepository),
		writer:    new(MockOrderWriter),
		now:       time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC),
	}
	logger := zap.NewNop()
	seq := ingestion.NewSequencer(&passthroughScope{writer: f.writer, atomic: true}, logger)
	f.generator = NewDummyGenerator(f.customers, f.products, f.items, f.orgs, f.orders, seq,
		appactivity.NewRecorder(nil, logger), logger)
	f.generator.rnd = rand.New(rand.NewPCG(1, 2))
	f.generator.now = func() time.Time { return f.now }
	return f
}

func ids(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func (f *dummyFixture) stockPools(products, items []uuid.UUID) {
	f.customers.On("ListIDs", mock.Anything, mock.Anything).Return(ids(3), nil)
	f.products.On("ListIDs", mock.Anything, mock.Anything).Return(products, nil)
	f.items.On("ListIDs", mock.Anything, mock.Anything).Return(items, nil)
	f.orgs.On("ListFactoryIDs", mock.Anything, mock.Anything).Return(ids(2), nil)
	f.orgs.On("ListCompanyIDs", mock.Anything, 1).Return(ids(1), nil)
}

func TestDummyGenerator_Generate(t *testing.T) {
	f := newDummyFixture()
	products, items := ids(5), ids(6)
	f.stockPools(products, items)
	f.orders.On("NextOrderNumber", mock.Anything).Return(int64(100), nil)

	var orders []*trade.Order
	var details [][]*trade.OrderDetail
	f.writer.On("CreateOrder", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		orders = append(orders, args.Get(1).(*trade.Order))
	}).Return(nil)
	f.writer.On("CreateDetails", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		details = append(details, args.Get(1).([]*trade.OrderDetail))
	}).Return(nil)
	f.writer.On("CreateIngredients", mock.Anything, mock.Anything).Return(nil)

	result, err := f.generator.Generate(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, 10, result.Created)
	assert.Equal(t, int64(100), result.Orders[0])
	assert.Equal(t, int64(109), result.Orders[9])

	oldest := trade.DateOnly(f.now.AddDate(0, 0, -59))
	for i, o := range orders {
		assert.NotEqual(t, trade.OrderStatusCancelled, o.Status)
		assert.False(t, o.OrderDate.Before(oldest), "order %d dated too early", i)
		assert.False(t, o.OrderDate.After(f.now))

		ds := details[i]
		assert.GreaterOrEqual(t, len(ds), 1)
		assert.LessOrEqual(t, len(ds), 3)
		seen := map[uuid.UUID]bool{}
		for _, d := range ds {
			assert.False(t, seen[d.ProductID], "duplicate product")
			seen[d.ProductID] = true
			assert.GreaterOrEqual(t, len(d.Ingredients), 2)
			assert.LessOrEqual(t, len(d.Ingredients), 4)
			for _, ing := range d.Ingredients {
				assert.True(t, ing.Quantity.GreaterThanOrEqual(decimal.NewFromInt(1)))
				assert.True(t, ing.Quantity.LessThanOrEqual(decimal.NewFromInt(11)))
				assert.Equal(t, o.CompanyID, ing.CompanyID)
			}
		}
	}
}

func TestDummyGenerator_DefaultsToFive(t *testing.T) {
	f := newDummyFixture()
	f.stockPools(ids(1), ids(2))
	f.orders.On("NextOrderNumber", mock.Anything).Return(int64(1), nil)
	f.writer.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	f.writer.On("CreateDetails", mock.Anything, mock.Anything).Return(nil)
	f.writer.On("CreateIngredients", mock.Anything, mock.Anything).Return(nil)

	result, err := f.generator.Generate(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, 5, result.Created)
}

func TestDummyGenerator_RejectsOutOfRange(t *testing.T) {
	f := newDummyFixture()

	_, err := f.generator.Generate(context.Background(), 51)

	var ve *shared.ValidationError
	require.ErrorAs(t, err, &ve)
	f.customers.AssertNotCalled(t, "ListIDs", mock.Anything, mock.Anything)
}

func TestDummyGenerator_InsufficientData(t *testing.T) {
	f := newDummyFixture()
	f.stockPools(ids(2), []uuid.UUID{})

	_, err := f.generator.Generate(context.Background(), 3)

	assert.ErrorIs(t, err, ErrInsufficientData)
	f.writer.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestPickDistinct_CapsAtPoolSize(t *testing.T) {
	rnd := rand.New(rand.NewPCG(7, 7))
	pool := []int{1, 2}

	got := pickDistinct(rnd, pool, 4)

	assert.ElementsMatch(t, pool, got)
}
