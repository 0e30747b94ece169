package usecase

import (
	"context"
	"io"

	"vendorwatch/internal/domain/entity"
)

// ImportSummary reports what an import landed.
type ImportSummary struct {
	Properties   int `json:"properties"`
	DerivedUsers int `json:"derived_users"`
	Written      int `json:"written"`
}

// ImportUsecase is the spreadsheet interchange pipeline: portfolio import
// with derived user accounts, template and export generation, and the admin
// bulk clear.
type ImportUsecase interface {
	// ImportPortfolio parses the sheet, derives PM/RPM user accounts from the
	// manager columns, and commits properties and users in one atomic batch.
	ImportPortfolio(ctx context.Context, viewer *entity.UserProfile, sheet io.Reader) (*ImportSummary, error)

	// WriteTemplate writes the empty import template.
	WriteTemplate(w io.Writer) error

	// ExportPortfolio writes the viewer's visible portfolio under the
	// template headers.
	ExportPortfolio(ctx context.Context, viewer *entity.UserProfile, w io.Writer) error

	// ClearPortfolio deletes every property. Admin only. Returns the number
	// removed.
	ClearPortfolio(ctx context.Context, viewer *entity.UserProfile) (int, error)
}
