package identity

import "github.com/erp/orderhub/internal/domain/shared"

// Factory is a production site that orders and users can be scoped to
type Factory struct {
	shared.BaseEntity
	Name string
}

// Company is a legal entity that orders can be billed under
type Company struct {
	shared.BaseEntity
	Name string
}
