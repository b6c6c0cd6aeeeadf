package ordering

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	appactivity "github.com/erp/orderhub/internal/application/activity"
	"github.com/erp/orderhub/internal/application/ingestion"
	"github.com/erp/orderhub/internal/domain/catalog"
	"github.com/erp/orderhub/internal/domain/identity"
	"github.com/erp/orderhub/internal/domain/partner"
	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/erp/orderhub/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultDummyOrders = 5
	maxDummyOrders     = 50
	dummyLookbackDays  = 60
	// candidate rows loaded per reference table
	dummyPoolSize = 500
)

// ErrInsufficientData is returned when a reference table needed for dummy orders is empty
var ErrInsufficientData = shared.NewDomainError("INVALID_INPUT",
	"Insufficient data available. Please ensure customers, products, items, factories, and companies exist.")

var (
	dummyOrderStatuses  = []trade.OrderStatus{trade.OrderStatusPending, trade.OrderStatusConfirmed, trade.OrderStatusInProgress, trade.OrderStatusCompleted, trade.OrderStatusShipped}
	dummyDetailStatuses = []trade.OrderStatus{trade.OrderStatusPending, trade.OrderStatusConfirmed, trade.OrderStatusInProgress, trade.OrderStatusCompleted}
)

// DummyGenerator creates random orders from existing reference data
type DummyGenerator struct {
	customers partner.CustomerRepository
	products  catalog.ProductRepository
	items     catalog.ItemRepository
	orgs      identity.OrganizationRepository
	orders    trade.OrderRepository
	sequencer *ingestion.Sequencer
	activity  *appactivity.Recorder
	logger    *zap.Logger
	rnd       *rand.Rand
	now       func() time.Time
}

// NewDummyGenerator creates a new DummyGenerator
func NewDummyGenerator(
	customers partner.CustomerRepository,
	products catalog.ProductRepository,
	items catalog.ItemRepository,
	orgs identity.OrganizationRepository,
	orders trade.OrderRepository,
	sequencer *ingestion.Sequencer,
	activity *appactivity.Recorder,
	logger *zap.Logger,
) *DummyGenerator {
	return &DummyGenerator{
		customers: customers,
		products:  products,
		items:     items,
		orgs:      orgs,
		orders:    orders,
		sequencer: sequencer,
		activity:  activity,
		logger:    logger,
		rnd:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		now:       time.Now,
	}
}

type dummyPools struct {
	customers []uuid.UUID
	products  []uuid.UUID
	items     []uuid.UUID
	factories []uuid.UUID
	companies []uuid.UUID
}

func (g *DummyGenerator) loadPools(ctx context.Context) (*dummyPools, error) {
	var (
		p   dummyPools
		err error
	)
	if p.customers, err = g.customers.ListIDs(ctx, dummyPoolSize); err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	if p.products, err = g.products.ListIDs(ctx, dummyPoolSize); err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	if p.items, err = g.items.ListIDs(ctx, dummyPoolSize); err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	if p.factories, err = g.orgs.ListFactoryIDs(ctx, dummyPoolSize); err != nil {
		return nil, fmt.Errorf("load factories: %w", err)
	}
	if p.companies, err = g.orgs.ListCompanyIDs(ctx, 1); err != nil {
		return nil, fmt.Errorf("load companies: %w", err)
	}
	if len(p.customers) == 0 || len(p.products) == 0 || len(p.items) == 0 ||
		len(p.factories) == 0 || len(p.companies) == 0 {
		return nil, ErrInsufficientData
	}
	return &p, nil
}

// Generate creates numOrders random orders. Zero means the default of five.
// Every order uses the first company and a random customer and factory.
func (g *DummyGenerator) Generate(ctx context.Context, numOrders int) (*DummyOrdersResult, error) {
	if numOrders == 0 {
		numOrders = defaultDummyOrders
	}
	if numOrders < 1 || numOrders > maxDummyOrders {
		return nil, shared.NewValidationError([]string{
			fmt.Sprintf("num_orders must be between 1 and %d", maxDummyOrders),
		})
	}

	pools, err := g.loadPools(ctx)
	if err != nil {
		return nil, err
	}
	next, err := g.orders.NextOrderNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocate order number: %w", err)
	}

	result := &DummyOrdersResult{Orders: make([]int64, 0, numOrders)}
	for i := 0; i < numOrders; i++ {
		agg := g.randomOrder(next+int64(i), pools)
		if _, err := g.sequencer.Persist(ctx, agg); err != nil {
			return result, err
		}
		result.Orders = append(result.Orders, agg.Order.OrderNumber)
		result.Created++
	}

	g.activity.Record(ctx, activityModule, "", fmt.Sprintf("Created %d dummy orders via API", result.Created))
	g.logger.Info("Dummy orders created", zap.Int("count", result.Created))
	return result, nil
}

func (g *DummyGenerator) randomOrder(orderNumber int64, pools *dummyPools) *trade.OrderAggregate {
	daysAgo := g.rnd.IntN(dummyLookbackDays)
	orderDate := g.now().AddDate(0, 0, -daysAgo)

	order := trade.NewOrder(orderNumber, orderDate, pick(g.rnd, pools.customers))
	order.Status = pick(g.rnd, dummyOrderStatuses)
	company := pools.companies[0]
	factory := pick(g.rnd, pools.factories)
	order.CompanyID = &company
	order.FactoryID = &factory

	agg := &trade.OrderAggregate{Order: order}
	for _, productID := range pickDistinct(g.rnd, pools.products, 1+g.rnd.IntN(3)) {
		detail := trade.NewOrderDetail(productID, 1, pick(g.rnd, dummyDetailStatuses))
		detail.CompanyID = order.CompanyID
		detail.FactoryID = order.FactoryID
		for _, itemID := range pickDistinct(g.rnd, pools.items, 2+g.rnd.IntN(3)) {
			// 1.00 to 11.00
			qty := decimal.NewFromFloat(g.rnd.Float64()*10 + 1).Round(2)
			ing := trade.NewOrderDetailIngredient(itemID, qty, pick(g.rnd, dummyDetailStatuses))
			ing.CompanyID = order.CompanyID
			ing.FactoryID = order.FactoryID
			detail.Ingredients = append(detail.Ingredients, ing)
		}
		agg.AddDetail(detail)
	}
	return agg
}

func pick[T any](rnd *rand.Rand, from []T) T {
	return from[rnd.IntN(len(from))]
}

// pickDistinct returns up to n distinct elements of from in random order
func pickDistinct[T any](rnd *rand.Rand, from []T, n int) []T {
	n = min(n, len(from))
	out := make([]T, 0, n)
	for _, idx := range rnd.Perm(len(from))[:n] {
		out = append(out, from[idx])
	}
	return out
}
