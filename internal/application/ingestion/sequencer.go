package ingestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/orderhub/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Write steps of an aggregate, in execution order
const (
	StepOrder       = "order"
	StepDetails     = "details"
	StepIngredients = "ingredients"
	StepShipping    = "shipping"
)

// PersistError reports the step at which persisting an aggregate failed.
// OrderID is set once the header was written.
type PersistError struct {
	Step    string
	OrderID uuid.UUID
	Err     error
}

func (e *PersistError) Error() string {
	if e.OrderID == uuid.Nil {
		return fmt.Sprintf("persist %s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("persist %s of order %s: %v", e.Step, e.OrderID, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// PersistedOrder identifies the rows written for an aggregate
type PersistedOrder struct {
	OrderID           uuid.UUID
	OrderNumber       int64
	CustomerID        uuid.UUID
	ShippingDetailsID *uuid.UUID
	Status            trade.OrderStatus
}

// Sequencer writes order aggregates in dependency order: header, details,
// ingredients, shipping.
type Sequencer struct {
	scope  trade.OrderWriteScope
	logger *zap.Logger
}

// NewSequencer creates a new Sequencer
func NewSequencer(scope trade.OrderWriteScope, logger *zap.Logger) *Sequencer {
	return &Sequencer{scope: scope, logger: logger}
}

// Persist writes a freshly built aggregate
func (s *Sequencer) Persist(ctx context.Context, agg *trade.OrderAggregate) (*PersistedOrder, error) {
	order := agg.Order

	err := s.scope.Execute(ctx, func(w trade.OrderWriter) error {
		if err := w.CreateOrder(ctx, order); err != nil {
			return &PersistError{Step: StepOrder, Err: err}
		}
		agg.BindOrderID(order.ID)

		if err := w.CreateDetails(ctx, agg.Details); err != nil {
			return &PersistError{Step: StepDetails, OrderID: order.ID, Err: err}
		}
		if err := w.CreateIngredients(ctx, agg.Ingredients()); err != nil {
			return &PersistError{Step: StepIngredients, OrderID: order.ID, Err: err}
		}
		if agg.Shipping != nil {
			if err := w.CreateShipping(ctx, agg.Shipping); err != nil {
				return &PersistError{Step: StepShipping, OrderID: order.ID, Err: err}
			}
		}
		return nil
	})
	if err != nil {
		s.logFailure(err, order.OrderNumber)
		return nil, err
	}

	persisted := &PersistedOrder{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		CustomerID:  order.CustomerID,
		Status:      order.Status,
	}
	if agg.Shipping != nil {
		id := agg.Shipping.ID
		persisted.ShippingDetailsID = &id
	}

	s.logger.Info("Order persisted",
		zap.String("order_id", order.ID.String()),
		zap.Int64("order_number", order.OrderNumber),
		zap.Int("details", len(agg.Details)))
	return persisted, nil
}

// logFailure records what was left behind. Only a non-atomic scope can leave
// a partial order.
func (s *Sequencer) logFailure(err error, orderNumber int64) {
	var pe *PersistError
	if !errors.As(err, &pe) {
		s.logger.Error("Order persist failed", zap.Int64("order_number", orderNumber), zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.Int64("order_number", orderNumber),
		zap.String("failed_step", pe.Step),
		zap.Error(pe.Err),
	}
	if pe.OrderID != uuid.Nil {
		fields = append(fields, zap.String("order_id", pe.OrderID.String()))
	}
	if a, ok := s.scope.(interface{ Atomic() bool }); ok && !a.Atomic() && pe.OrderID != uuid.Nil {
		s.logger.Error("Order partially persisted", fields...)
		return
	}
	s.logger.Warn("Order persist failed", fields...)
}

// Replace updates an order header and, when details is non-nil, swaps the
// whole detail collection for the given one. An empty non-nil slice clears it.
func (s *Sequencer) Replace(ctx context.Context, orderID uuid.UUID, header *trade.Order, details []*trade.OrderDetail) error {
	header.ID = orderID
	agg := &trade.OrderAggregate{Order: header}
	for _, d := range details {
		agg.AddDetail(d)
	}
	agg.BindOrderID(orderID)

	return s.scope.Execute(ctx, func(w trade.OrderWriter) error {
		if err := w.UpdateOrder(ctx, header); err != nil {
			return err
		}
		if details == nil {
			return nil
		}
		if err := w.DeleteChildren(ctx, orderID); err != nil {
			return fmt.Errorf("clear details: %w", err)
		}
		if err := w.CreateDetails(ctx, agg.Details); err != nil {
			return fmt.Errorf("insert details: %w", err)
		}
		if err := w.CreateIngredients(ctx, agg.Ingredients()); err != nil {
			return fmt.Errorf("insert ingredients: %w", err)
		}
		return nil
	})
}

// SoftDelete flags ingredients, then details, then the order as deleted.
// Rows already flagged are left alone so a retried delete is harmless.
func (s *Sequencer) SoftDelete(ctx context.Context, orderID uuid.UUID) error {
	return s.scope.Execute(ctx, func(w trade.OrderWriter) error {
		ingredients, err := w.SoftDeleteIngredients(ctx, orderID)
		if err != nil {
			return fmt.Errorf("delete ingredients: %w", err)
		}
		details, err := w.SoftDeleteDetails(ctx, orderID)
		if err != nil {
			return fmt.Errorf("delete details: %w", err)
		}
		orders, err := w.SoftDeleteOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		s.logger.Debug("Order soft-deleted",
			zap.String("order_id", orderID.String()),
			zap.Int64("ingredients", ingredients),
			zap.Int64("details", details),
			zap.Int64("orders", orders))
		return nil
	})
}
