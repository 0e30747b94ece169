package repository

import (
	"context"

	"vendorwatch/internal/domain/entity"
)

// ImportBatch is one atomic portfolio write: the properties parsed from an
// uploaded sheet plus the user accounts derived from its manager columns.
type ImportBatch struct {
	Properties []*entity.Property
	Users      []*entity.UserProfile
}

// PortfolioImporter writes whole-portfolio batches. Implementations must
// apply each batch atomically: either every property and derived user lands,
// or none do.
type PortfolioImporter interface {
	// ImportBatch persists the batch atomically and returns the number of
	// documents written.
	ImportBatch(ctx context.Context, batch *ImportBatch) (int, error)

	// ClearAll deletes every property document. Returns the number removed.
	ClearAll(ctx context.Context) (int, error)
}
