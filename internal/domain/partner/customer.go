package partner

import (
	"strings"

	"github.com/erp/orderhub/internal/domain/shared"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Customer is identified by its email address. Ingestion creates customers on
// first sighting and never changes them afterwards.
type Customer struct {
	shared.BaseEntity
	Name      string
	Email     string
	Phone     string
	Address   string
	Status    CustomerStatus
	IsDeleted bool
}

// NewCustomer creates a new active customer
func NewCustomer(name, email string) (*Customer, error) {
	if strings.TrimSpace(email) == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Customer email cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}

	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      email,
		Status:     CustomerStatusActive,
	}, nil
}

// SetContact sets phone and formatted address
func (c *Customer) SetContact(phone, address string) {
	c.Phone = phone
	c.Address = address
	c.Touch()
}

// SetStatus changes the customer status; an empty status keeps the current one
func (c *Customer) SetStatus(status CustomerStatus) error {
	if status == "" {
		return nil
	}
	if status != CustomerStatusActive && status != CustomerStatusInactive {
		return shared.NewDomainError("INVALID_STATUS", "Customer status must be active or inactive")
	}
	c.Status = status
	c.Touch()
	return nil
}

// Update replaces the mutable attributes. Email is the identity key and cannot change.
func (c *Customer) Update(name, phone, address string) error {
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	c.Name = name
	c.Phone = phone
	c.Address = address
	c.Touch()
	return nil
}

// MarkDeleted soft-deletes the customer
func (c *Customer) MarkDeleted() {
	c.IsDeleted = true
	c.Touch()
}
