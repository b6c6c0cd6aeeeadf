package catalog

import "github.com/erp/orderhub/internal/domain/shared"

// Item is a raw material consumed by order detail ingredients
type Item struct {
	shared.BaseEntity
	Name      string
	Unit      string
	IsDeleted bool
}
