// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"vendorwatch/internal/domain/entity"
)

// ErrPropertyNotFound is a domain-specific error returned when a property is not found.
var ErrPropertyNotFound = errors.New("property not found")

// PropertyRepository defines the standard operations for property persistence.
// The application layer will depend on this interface, not the concrete implementation.
type PropertyRepository interface {
	// FindByID retrieves a single property by its document ID.
	FindByID(ctx context.Context, id string) (*entity.Property, error)

	// FindAll retrieves every property in the portfolio.
	FindAll(ctx context.Context) ([]*entity.Property, error)

	// Create persists a new property entity to the storage.
	Create(ctx context.Context, property *entity.Property) error

	// Save replaces the stored property document with the given entity.
	Save(ctx context.Context, property *entity.Property) error

	// UpdateFields applies a partial update. Keys are dot-separated field
	// paths as stored in the document, e.g. "vendor.currentPrice".
	UpdateFields(ctx context.Context, id string, fields map[string]any) error

	// Delete removes the property document.
	Delete(ctx context.Context, id string) error
}
