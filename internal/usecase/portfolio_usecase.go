// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"vendorwatch/internal/domain/entity"
)

// SortKey is one key of a multi-key sort. Field is a dot-path into the
// property view, e.g. "vendor.name" or "terms.endDate".
type SortKey struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc"`
}

// GridQuery describes one grid fetch: free-text search, per-column
// categorical filters, multi-key sort and page slicing.
type GridQuery struct {
	Search   string              `json:"search"`
	Filters  map[string][]string `json:"filters"`
	Sort     []SortKey           `json:"sort"`
	Page     int                 `json:"page" validate:"gte=0"`
	PageSize int                 `json:"page_size" validate:"gte=0,lte=500"`
}

// PropertyView is a property together with its derived status. The stored
// status field is never exposed directly.
type PropertyView struct {
	*entity.Property
	EffectiveStatus entity.PropertyStatus `json:"effectiveStatus"`
}

// GridPage is one page of the portfolio grid plus the filter option sets
// derived from the full scoped result.
type GridPage struct {
	Items         []*PropertyView     `json:"items"`
	Total         int                 `json:"total"`
	Page          int                 `json:"page"`
	PageSize      int                 `json:"page_size"`
	FilterOptions map[string][]string `json:"filter_options"`
}

// PortfolioUsecase serves the dashboard grid over the viewer's visible slice
// of the portfolio.
type PortfolioUsecase interface {
	// ListPortfolio returns one grid page for the viewer. Scope filtering is
	// applied before search, filters, sort and paging.
	ListPortfolio(ctx context.Context, viewer *entity.UserProfile, query GridQuery) (*GridPage, error)
}
