package identity

import "github.com/erp/orderhub/internal/domain/shared"

// Role groups permissions
type Role struct {
	shared.BaseEntity
	Name        string
	Description string
}

// Permission is a named capability granted through roles
type Permission struct {
	shared.BaseEntity
	Name        string
	Description string
}
