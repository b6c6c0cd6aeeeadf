package ordering

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	appactivity "github.com/erp/orderhub/internal/application/activity"
	"github.com/erp/orderhub/internal/application/ingestion"
	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/erp/orderhub/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const activityModule = "Orders"

// OrderService handles the order API on top of the ingestion builder and
// persistence sequencer.
type OrderService struct {
	orders    trade.OrderRepository
	builder   *ingestion.Builder
	sequencer *ingestion.Sequencer
	activity  *appactivity.Recorder
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orders trade.OrderRepository,
	builder *ingestion.Builder,
	sequencer *ingestion.Sequencer,
	activity *appactivity.Recorder,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		builder:   builder,
		sequencer: sequencer,
		activity:  activity,
		logger:    logger,
	}
}

// invalidStatusError lists the accepted statuses
func invalidStatusError() error {
	names := make([]string, 0, len(trade.AllOrderStatuses()))
	for _, s := range trade.AllOrderStatuses() {
		names = append(names, s.String())
	}
	return shared.NewValidationError([]string{
		"Invalid status. Valid statuses are: " + strings.Join(names, ", "),
	})
}

func parseStatus(raw string) (trade.OrderStatus, error) {
	status, err := trade.ParseOrderStatus(raw)
	if err != nil {
		return "", invalidStatusError()
	}
	return status, nil
}

// List returns a page of orders with their full graph
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := trade.OrderFilter{
		Filter:     shared.DefaultFilter(),
		CustomerID: filter.CustomerID,
		FactoryID:  filter.FactoryID,
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		status, err := parseStatus(filter.Status)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Status = status
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		domainFilter.StartDate = filter.StartDate
		domainFilter.EndDate = filter.EndDate
	}

	views, total, err := s.orders.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(views), total, nil
}

// GetByID returns one order with its full graph
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	view, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(view)
	return &resp, nil
}

// Create validates an API order body and persists it. A given order number
// that is already taken is rejected before anything is resolved.
func (s *OrderService) Create(ctx context.Context, payload ingestion.APIOrderPayload) (*OrderResponse, error) {
	if payload.OrderNumber != nil {
		exists, err := s.orders.ExistsByOrderNumber(ctx, *payload.OrderNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, orderNumberTaken(*payload.OrderNumber)
		}
	}

	agg, err := s.builder.BuildFromAPIPayload(ctx, payload)
	if err != nil {
		return nil, err
	}
	persisted, err := s.sequencer.Persist(ctx, agg)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, activityModule, persisted.OrderID.String(),
		fmt.Sprintf("Created order %d", persisted.OrderNumber))
	return s.GetByID(ctx, persisted.OrderID)
}

func orderNumberTaken(n int64) error {
	return shared.NewDomainError(trade.ErrOrderNumberExists.Code, fmt.Sprintf("Order number %d already exists", n))
}

// Update changes header fields and, when order_details is sent, replaces the
// order's details and ingredients with the given ones.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	order, err := s.orders.FindHeader(ctx, id)
	if err != nil {
		return nil, err
	}

	var violations []string
	if req.OrderDate != nil {
		d, err := ingestion.ParseDate(*req.OrderDate)
		if err != nil {
			violations = append(violations, "invalid order_date: "+*req.OrderDate)
		}
		order.OrderDate = d
	}
	if req.Status != nil {
		status, err := trade.ParseOrderStatus(*req.Status)
		if err != nil {
			violations = append(violations, err.Error())
		}
		order.Status = status
	}

	var details []*trade.OrderDetail
	if raw := bytes.TrimSpace(req.OrderDetails); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		details, err = s.builder.BuildDetails(ctx, raw)
		if err != nil {
			var ve *shared.ValidationError
			if !errors.As(err, &ve) {
				return nil, err
			}
			violations = append(violations, ve.Violations...)
		}
		if details == nil {
			details = []*trade.OrderDetail{}
		}
	}
	if err := shared.NewValidationError(violations); err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		order.CustomerID = *req.CustomerID
	}
	if req.FactoryID != nil {
		order.FactoryID = req.FactoryID
	}
	if req.CompanyID != nil {
		order.CompanyID = req.CompanyID
	}
	if req.TotalPrice != nil {
		order.TotalPrice = *req.TotalPrice
	}
	if req.TotalDiscount != nil {
		order.TotalDiscount = *req.TotalDiscount
	}
	if req.TotalTax != nil {
		order.TotalTax = *req.TotalTax
	}

	if err := s.sequencer.Replace(ctx, id, order, details); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, activityModule, id.String(), fmt.Sprintf("Updated order %d", order.OrderNumber))
	return s.GetByID(ctx, id)
}

// UpdateStatus sets the status of one order
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*OrderHeaderResponse, error) {
	status, err := parseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	return s.updateStatus(ctx, id, status)
}

func (s *OrderService) updateStatus(ctx context.Context, id uuid.UUID, status trade.OrderStatus) (*OrderHeaderResponse, error) {
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order, err := s.orders.FindHeader(ctx, id)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, activityModule, id.String(), "Updated order status to "+status.String())
	return toHeaderResponse(order), nil
}

// BulkUpdateStatus sets status on each order in turn. Failures are collected
// per order and never stop the remaining updates.
func (s *OrderService) BulkUpdateStatus(ctx context.Context, req BulkStatusRequest) (*BulkStatusResult, error) {
	if len(req.OrderIDs) == 0 {
		return nil, shared.NewValidationError([]string{"order_ids array is required"})
	}
	status, err := parseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	result := &BulkStatusResult{
		UpdatedOrders: make([]uuid.UUID, 0, len(req.OrderIDs)),
		Errors:        []BulkStatusError{},
	}
	for _, id := range req.OrderIDs {
		if _, err := s.updateStatus(ctx, id, status); err != nil {
			result.Errors = append(result.Errors, BulkStatusError{OrderID: id, Error: err.Error()})
			continue
		}
		result.UpdatedOrders = append(result.UpdatedOrders, id)
	}

	s.logger.Info("Bulk status update completed",
		zap.String("status", status.String()),
		zap.Int("updated", len(result.UpdatedOrders)),
		zap.Int("failed", len(result.Errors)))
	return result, nil
}

// Delete soft-deletes the order with its details and ingredients
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.orders.FindHeader(ctx, id)
	if err != nil {
		return err
	}
	if err := s.sequencer.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, activityModule, id.String(), fmt.Sprintf("Deleted order %d", order.OrderNumber))
	return nil
}

// ListByCustomer returns the orders of one customer
func (s *OrderService) ListByCustomer(ctx context.Context, customerID uuid.UUID, page, pageSize int) ([]OrderResponse, int64, error) {
	return s.List(ctx, OrderListFilter{CustomerID: &customerID, Page: page, PageSize: pageSize})
}

// ListByStatus returns the orders in one status
func (s *OrderService) ListByStatus(ctx context.Context, status string, page, pageSize int) ([]OrderResponse, int64, error) {
	if status == "" {
		return nil, 0, invalidStatusError()
	}
	return s.List(ctx, OrderListFilter{Status: status, Page: page, PageSize: pageSize})
}

// ListByFactory returns the orders assigned to one factory
func (s *OrderService) ListByFactory(ctx context.Context, factoryID uuid.UUID, page, pageSize int) ([]OrderResponse, int64, error) {
	return s.List(ctx, OrderListFilter{FactoryID: &factoryID, Page: page, PageSize: pageSize})
}

// ItemsRequired returns ingredients that still have to be produced
func (s *OrderService) ItemsRequired(ctx context.Context, factoryID *uuid.UUID) ([]ItemRequirementResponse, error) {
	reqs, err := s.orders.FindItemRequirements(ctx, factoryID)
	if err != nil {
		return nil, err
	}
	return ToItemRequirementResponses(reqs), nil
}

// Analytics summarises orders dated between start and end inclusive
func (s *OrderService) Analytics(ctx context.Context, start, end string, factoryID *uuid.UUID) (*trade.OrderAnalytics, error) {
	if start == "" || end == "" {
		return nil, shared.NewValidationError([]string{"start_date and end_date are required"})
	}
	var violations []string
	from, err := ingestion.ParseDate(start)
	if err != nil {
		violations = append(violations, "invalid start_date: "+start)
	}
	to, err := ingestion.ParseDate(end)
	if err != nil {
		violations = append(violations, "invalid end_date: "+end)
	}
	if err := shared.NewValidationError(violations); err != nil {
		return nil, err
	}
	return s.orders.Analytics(ctx, from, to, factoryID)
}
