// Package models contains the GORM persistence models. Each model converts to
// and from its domain entity with ToDomain/FromDomain so domain packages stay
// free of storage tags.
package models
