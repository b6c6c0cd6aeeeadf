package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/erp/orderhub/internal/domain/trade"
	"go.uber.org/zap"
)

// Webhook topics
const (
	TopicOrderCreate    = "orders/create"
	TopicOrderUpdated   = "orders/updated"
	TopicOrderCancelled = "orders/cancelled"
)

// Outcomes recorded for every webhook event
const (
	OutcomeCreated   = "created"
	OutcomeUpdated   = "updated"
	OutcomeCancelled = "cancelled"
	OutcomeDuplicate = "duplicate"
	OutcomeConflict  = "conflict"
	OutcomeNotFound  = "not_found"
	OutcomeInvalid   = "invalid"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

var failureMessages = map[string]string{
	TopicOrderCreate:    "Webhook received but processing failed",
	TopicOrderUpdated:   "Order update received but processing failed",
	TopicOrderCancelled: "Order cancellation received but processing failed",
}

var successMessages = map[string]string{
	TopicOrderCreate:    "Webhook processed successfully",
	TopicOrderUpdated:   "Order update processed successfully",
	TopicOrderCancelled: "Order cancellation processed successfully",
}

// Event is one webhook delivery
type Event struct {
	Topic string
	// DeliveryID is the X-Shopify-Webhook-Id header, empty when absent
	DeliveryID string
	Body       []byte
}

// Receipt is the acknowledgement body returned for every delivery
type Receipt struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
	Details string         `json:"details,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// EventRecorder counts processed webhook events
type EventRecorder interface {
	RecordWebhookEvent(ctx context.Context, topic, outcome string)
}

// GatewayConfig configures the Gateway
type GatewayConfig struct {
	// DedupeTTL is how long a delivery ID is remembered; zero disables dedupe
	DedupeTTL time.Duration
}

// Gateway turns webhook deliveries into order writes and always answers with
// a receipt instead of an error.
type Gateway struct {
	builder   *Builder
	sequencer *Sequencer
	orders    trade.OrderRepository
	dedupe    shared.IdempotencyStore
	recorder  EventRecorder
	config    GatewayConfig
	logger    *zap.Logger
}

// NewGateway creates a new Gateway. dedupe and recorder may be nil.
func NewGateway(
	builder *Builder,
	sequencer *Sequencer,
	orders trade.OrderRepository,
	dedupe shared.IdempotencyStore,
	recorder EventRecorder,
	config GatewayConfig,
	logger *zap.Logger,
) *Gateway {
	return &Gateway{
		builder:   builder,
		sequencer: sequencer,
		orders:    orders,
		dedupe:    dedupe,
		recorder:  recorder,
		config:    config,
		logger:    logger,
	}
}

// HandleCreate ingests a new order
func (g *Gateway) HandleCreate(ctx context.Context, ev Event) Receipt {
	ev.Topic = TopicOrderCreate
	payload, receipt, ok := g.decode(ctx, ev)
	if !ok {
		return receipt
	}
	if _, err := validateShopifyOrder(payload); err != nil {
		return g.fail(ctx, ev, payload.OrderNumber.String(), OutcomeInvalid, err)
	}

	if g.seen(ctx, ev) {
		return g.duplicate(ctx, ev, payload.OrderNumber.String())
	}

	data, outcome, err := g.create(ctx, payload)
	if err != nil {
		g.forget(ctx, ev)
		return g.fail(ctx, ev, payload.OrderNumber.String(), outcome, err)
	}
	return g.succeed(ctx, ev, payload.OrderNumber.String(), OutcomeCreated, data)
}

func (g *Gateway) create(ctx context.Context, payload ShopifyOrder) (map[string]any, string, error) {
	orderNumber, _ := payload.OrderNumber.Int64()
	exists, err := g.orders.ExistsByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, OutcomeFailed, err
	}
	if exists {
		return nil, OutcomeConflict, fmt.Errorf("Order number %d already exists", orderNumber)
	}

	agg, err := g.builder.BuildFromExternalPayload(ctx, payload)
	if err != nil {
		return nil, classify(err), err
	}

	persisted, err := g.sequencer.Persist(ctx, agg)
	if errors.Is(err, trade.ErrOrderNumberExists) {
		return nil, OutcomeConflict, fmt.Errorf("Order number %d already exists", orderNumber)
	}
	if err != nil {
		return nil, OutcomeFailed, err
	}

	status := "created"
	if payload.IsCancelled() {
		status = string(trade.OrderStatusCancelled)
	}
	data := map[string]any{
		"order_id":            persisted.OrderID,
		"order_number":        persisted.OrderNumber,
		"customer_id":         persisted.CustomerID,
		"shipping_details_id": persisted.ShippingDetailsID,
		"status":              status,
	}
	return data, OutcomeCreated, nil
}

// HandleUpdate applies a fulfillment status change and a new total to an
// existing order. An unknown fulfillment status keeps the current one.
func (g *Gateway) HandleUpdate(ctx context.Context, ev Event) Receipt {
	ev.Topic = TopicOrderUpdated
	payload, receipt, ok := g.decode(ctx, ev)
	if !ok {
		return receipt
	}
	number := payload.OrderNumber.String()

	if g.seen(ctx, ev) {
		return g.duplicate(ctx, ev, number)
	}

	order, err := g.findOrder(ctx, payload.OrderNumber)
	if err != nil {
		g.forget(ctx, ev)
		return g.fail(ctx, ev, number, classify(err), err)
	}

	if status, ok := trade.MapFulfillmentStatus(payload.FulfillmentStatus); ok {
		order.Status = status
	}
	order.TotalPrice = payload.TotalPrice.DecimalOrZero()

	if err := g.sequencer.Replace(ctx, order.ID, order, nil); err != nil {
		g.forget(ctx, ev)
		return g.fail(ctx, ev, number, classify(err), err)
	}

	return g.succeed(ctx, ev, number, OutcomeUpdated, map[string]any{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"status":       order.Status,
	})
}

// HandleCancel marks an existing order cancelled
func (g *Gateway) HandleCancel(ctx context.Context, ev Event) Receipt {
	ev.Topic = TopicOrderCancelled
	payload, receipt, ok := g.decode(ctx, ev)
	if !ok {
		return receipt
	}
	number := payload.OrderNumber.String()

	if g.seen(ctx, ev) {
		return g.duplicate(ctx, ev, number)
	}

	order, err := g.findOrder(ctx, payload.OrderNumber)
	if err != nil {
		g.forget(ctx, ev)
		return g.fail(ctx, ev, number, classify(err), err)
	}
	if err := g.orders.UpdateStatus(ctx, order.ID, trade.OrderStatusCancelled); err != nil {
		g.forget(ctx, ev)
		return g.fail(ctx, ev, number, classify(err), err)
	}

	return g.succeed(ctx, ev, number, OutcomeCancelled, map[string]any{
		"order_id":      order.ID,
		"order_number":  order.OrderNumber,
		"status":        trade.OrderStatusCancelled,
		"cancel_reason": payload.CancelReason,
	})
}

// Reject answers a delivery that was refused before processing, such as one
// with a bad signature.
func (g *Gateway) Reject(ctx context.Context, topic, reason string) Receipt {
	return g.fail(ctx, Event{Topic: topic}, "", OutcomeRejected, errors.New(reason))
}

func (g *Gateway) findOrder(ctx context.Context, raw Loose) (*trade.Order, error) {
	number, ok := raw.Int64()
	if !ok {
		return nil, shared.NewValidationError([]string{"order_number is required"})
	}
	order, err := g.orders.FindByOrderNumber(ctx, number)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("Order %d not found: %w", number, shared.ErrNotFound)
	}
	return order, err
}

func (g *Gateway) decode(ctx context.Context, ev Event) (ShopifyOrder, Receipt, bool) {
	var payload ShopifyOrder
	if err := json.Unmarshal(ev.Body, &payload); err != nil {
		return payload, g.fail(ctx, ev, "", OutcomeInvalid, fmt.Errorf("malformed JSON body: %w", err)), false
	}
	return payload, Receipt{}, true
}

// seen reports whether this delivery was already processed and marks it
// otherwise. Store failures let the delivery through.
func (g *Gateway) seen(ctx context.Context, ev Event) bool {
	if g.dedupe == nil || g.config.DedupeTTL <= 0 || ev.DeliveryID == "" {
		return false
	}
	fresh, err := g.dedupe.MarkProcessed(ctx, dedupeKey(ev), g.config.DedupeTTL)
	if err != nil {
		g.logger.Warn("Webhook dedupe unavailable", zap.String("delivery_id", ev.DeliveryID), zap.Error(err))
		return false
	}
	return !fresh
}

// forget releases the delivery mark so a retry of a failed delivery is processed
func (g *Gateway) forget(ctx context.Context, ev Event) {
	if g.dedupe == nil || g.config.DedupeTTL <= 0 || ev.DeliveryID == "" {
		return
	}
	if err := g.dedupe.Forget(ctx, dedupeKey(ev)); err != nil {
		g.logger.Warn("Failed to release webhook delivery", zap.String("delivery_id", ev.DeliveryID), zap.Error(err))
	}
}

func dedupeKey(ev Event) string {
	return "webhook:" + ev.Topic + ":" + ev.DeliveryID
}

func (g *Gateway) succeed(ctx context.Context, ev Event, orderNumber, outcome string, data map[string]any) Receipt {
	g.observe(ctx, ev, orderNumber, outcome, nil)
	return Receipt{Success: true, Message: successMessages[ev.Topic], Data: data}
}

func (g *Gateway) duplicate(ctx context.Context, ev Event, orderNumber string) Receipt {
	g.observe(ctx, ev, orderNumber, OutcomeDuplicate, nil)
	return Receipt{Success: true, Message: "Duplicate delivery ignored"}
}

func (g *Gateway) fail(ctx context.Context, ev Event, orderNumber, outcome string, err error) Receipt {
	g.observe(ctx, ev, orderNumber, outcome, err)
	msg, ok := failureMessages[ev.Topic]
	if !ok {
		msg = failureMessages[TopicOrderCreate]
	}
	return Receipt{Success: false, Error: msg, Details: errorDetails(err)}
}

func (g *Gateway) observe(ctx context.Context, ev Event, orderNumber, outcome string, err error) {
	fields := []zap.Field{
		zap.String("topic", ev.Topic),
		zap.String("outcome", outcome),
		zap.String("order_number", orderNumber),
	}
	if ev.DeliveryID != "" {
		fields = append(fields, zap.String("delivery_id", ev.DeliveryID))
	}
	switch {
	case err == nil:
		g.logger.Info("Webhook processed", fields...)
	case outcome == OutcomeFailed:
		g.logger.Error("Webhook processing failed", append(fields, zap.Error(err))...)
	default:
		g.logger.Warn("Webhook not applied", append(fields, zap.Error(err))...)
	}
	if g.recorder != nil {
		g.recorder.RecordWebhookEvent(ctx, ev.Topic, outcome)
	}
}

func classify(err error) string {
	var ve *shared.ValidationError
	switch {
	case errors.As(err, &ve):
		return OutcomeInvalid
	case errors.Is(err, shared.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, trade.ErrOrderNumberExists), errors.Is(err, shared.ErrAlreadyExists):
		return OutcomeConflict
	default:
		return OutcomeFailed
	}
}

// errorDetails renders err for the receipt. Validation errors list their
// violations; a not-found keeps only the message that names the order.
func errorDetails(err error) string {
	var ve *shared.ValidationError
	if errors.As(err, &ve) {
		return strings.Join(ve.Violations, "; ")
	}
	var pe *PersistError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	msg := err.Error()
	if i := strings.Index(msg, ": "+shared.ErrNotFound.Message); i > 0 {
		return msg[:i]
	}
	return msg
}
