package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/erp/orderhub/internal/application/ingestion"
	"github.com/erp/orderhub/internal/domain/trade"
	"github.com/erp/orderhub/internal/infrastructure/cache"
	"github.com/erp/orderhub/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pipeline struct {
	db      *TestDB
	orders  *persistence.GormOrderRepository
	gateway *ingestion.Gateway
}

func newPipeline(t *testing.T) *pipeline {
	t.Helper()
	tdb := NewTestDB(t)
	log := zap.NewNop()

	orders := persistence.NewGormOrderRepository(tdb.DB)
	products := persistence.NewGormProductRepository(tdb.DB)
	resolver := ingestion.NewResolver(
		persistence.NewGormCustomerRepository(tdb.DB),
		products,
		persistence.NewGormStockRepository(tdb.DB),
		ingestion.ResolverConfig{Concurrency: 4},
		log,
	)
	builder := ingestion.NewBuilder(resolver, orders, products, persistence.NewGormItemRepository(tdb.DB), log)
	sequencer := ingestion.NewSequencer(persistence.NewGormOrderWriteScope(tdb.DB, true), log)
	dedupe := cache.NewInMemoryIdempotencyStore(0)
	t.Cleanup(func() { _ = dedupe.Close() })

	gateway := ingestion.NewGateway(builder, sequencer, orders, dedupe, nil,
		ingestion.GatewayConfig{DedupeTTL: time.Hour}, log)
	return &pipeline{db: tdb, orders: orders, gateway: gateway}
}

func shopifyBody(t *testing.T, orderNumber int, email string, titles ...string) []byte {
	t.Helper()
	items := make([]map[string]any, 0, len(titles))
	for _, title := range titles {
		items = append(items, map[string]any{
			"title":    title,
			"quantity": 2,
			"price":    "50.00",
			"properties": []map[string]any{
				{"name": "Length", "value": "120"},
			},
		})
	}
	body, err := json.Marshal(map[string]any{
		"id":                 900000 + orderNumber,
		"order_number":       orderNumber,
		"created_at":         "2025-07-03T10:00:00-04:00",
		"financial_status":   "paid",
		"fulfillment_status": nil,
		"total_price":        "100.00",
		"customer": map[string]any{
			"first_name": "Jon",
			"last_name":  "Doe",
			"email":      email,
		},
		"line_items": items,
		"shipping_address": map[string]any{
			"address1": "123 Elm St",
			"city":     "Ottawa",
		},
	})
	require.NoError(t, err)
	return body
}

func TestIngestion_CreateThenConflict(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	p := newPipeline(t)
	ctx := context.Background()

	r := p.gateway.HandleCreate(ctx, ingestion.Event{
		DeliveryID: "d-1",
		Body:       shopifyBody(t, 1001, "jon@doe.ca", "Custom Cushion"),
	})
	require.True(t, r.Success, r.Details)

	order, err := p.orders.FindByOrderNumber(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusPending, order.Status)
	assert.Equal(t, "100", order.TotalPrice.String())
	assert.Equal(t, int64(1), p.db.Count("order_details", "order_id = ?", order.ID))
	assert.Equal(t, int64(1), p.db.Count("shipping_details", "order_id = ?", order.ID))

	// same delivery again is a duplicate, a new delivery of the same number a conflict
	dup := p.gateway.HandleCreate(ctx, ingestion.Event{
		DeliveryID: "d-1",
		Body:       shopifyBody(t, 1001, "jon@doe.ca", "Custom Cushion"),
	})
	assert.True(t, dup.Success)
	assert.Equal(t, "Duplicate delivery ignored", dup.Message)

	conflict := p.gateway.HandleCreate(ctx, ingestion.Event{
		DeliveryID: "d-2",
		Body:       shopifyBody(t, 1001, "other@doe.ca", "Other Product"),
	})
	assert.False(t, conflict.Success)
	assert.Equal(t, "Order number 1001 already exists", conflict.Details)

	assert.Equal(t, int64(1), p.db.Count("orders", "order_number = ?", 1001))
	assert.Equal(t, int64(0), p.db.Count("customers", "email = ?", "other@doe.ca"))
}

func TestIngestion_ConcurrentDeliveriesShareCustomerAndProduct(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	p := newPipeline(t)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	receipts := make([]ingestion.Receipt, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			receipts[i] = p.gateway.HandleCreate(ctx, ingestion.Event{
				DeliveryID: fmt.Sprintf("d-%d", i),
				Body:       shopifyBody(t, 2000+i, "shared@doe.ca", "Linen Throw", "Wool Rug"),
			})
		}()
	}
	wg.Wait()

	for i, r := range receipts {
		assert.True(t, r.Success, "delivery %d: %s", i, r.Details)
	}
	assert.Equal(t, int64(n), p.db.Count("orders", "order_number >= ?", 2000))
	assert.Equal(t, int64(1), p.db.Count("customers", "email = ?", "shared@doe.ca"))
	assert.Equal(t, int64(1), p.db.Count("products", "name = ?", "Linen Throw"))
	assert.Equal(t, int64(1), p.db.Count("products", "name = ?", "Wool Rug"))
}

func TestIngestion_UpdateAndCancel(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	p := newPipeline(t)
	ctx := context.Background()

	created := p.gateway.HandleCreate(ctx, ingestion.Event{Body: shopifyBody(t, 3001, "a@b.co", "Pillow")})
	require.True(t, created.Success, created.Details)

	updated := p.gateway.HandleUpdate(ctx, ingestion.Event{
		Body: []byte(`{"order_number":3001,"fulfillment_status":"fulfilled","total_price":"80.50"}`),
	})
	require.True(t, updated.Success, updated.Details)

	order, err := p.orders.FindByOrderNumber(ctx, 3001)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusCompleted, order.Status)
	assert.Equal(t, "80.5", order.TotalPrice.String())
	assert.Equal(t, int64(1), p.db.Count("order_details", "order_id = ? AND is_deleted = FALSE", order.ID))

	cancelled := p.gateway.HandleCancel(ctx, ingestion.Event{
		Body: []byte(`{"order_number":3001,"cancel_reason":"customer"}`),
	})
	require.True(t, cancelled.Success, cancelled.Details)

	order, err = p.orders.FindByOrderNumber(ctx, 3001)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusCancelled, order.Status)

	missing := p.gateway.HandleCancel(ctx, ingestion.Event{Body: []byte(`{"order_number":9999}`)})
	assert.False(t, missing.Success)
	assert.Equal(t, "Order 9999 not found", missing.Details)
}
