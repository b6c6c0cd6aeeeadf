package partner

import (
	"context"
	"errors"

	appactivity "github.com/erp/orderhub/internal/application/activity"
	"github.com/erp/orderhub/internal/domain/partner"
	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const activityModule = "Customers"

// ErrEmailExists is returned when a live customer already uses the email
var ErrEmailExists = shared.NewDomainError("ALREADY_EXISTS", "Email already exists")

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	activity     *appactivity.Recorder
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, activity *appactivity.Recorder, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		activity:     activity,
		logger:       logger,
	}
}

// Create creates a new customer. The email must not belong to a live customer.
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	customer.SetContact(req.Phone, req.Address)
	if err := customer.SetStatus(partner.CustomerStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	s.activity.Record(ctx, activityModule, customer.ID.String(), "Created customer "+customer.Email)
	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves live customers, newest first by default
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Filters = make(map[string]any)
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	customers, total, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToCustomerResponses(customers), total, nil
}

// Update updates a customer's mutable attributes
func (s *CustomerService) Update(ctx context.Context, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	name, phone, address := customer.Name, customer.Phone, customer.Address
	if req.Name != nil {
		name = *req.Name
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Address != nil {
		address = *req.Address
	}
	if err := customer.Update(name, phone, address); err != nil {
		return nil, err
	}
	if req.Status != nil {
		if err := customer.SetStatus(partner.CustomerStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, activityModule, customer.ID.String(), "Updated customer "+customer.Email)
	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete soft-deletes a customer
func (s *CustomerService) Delete(ctx context.Context, customerID uuid.UUID) error {
	if err := s.customerRepo.SoftDelete(ctx, customerID); err != nil {
		return err
	}
	s.activity.Record(ctx, activityModule, customerID.String(), "Deleted customer")
	s.logger.Info("Customer deleted", zap.String("customer_id", customerID.String()))
	return nil
}
