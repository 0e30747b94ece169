// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	deliverycontext "vendorwatch/internal/delivery/context"
	"vendorwatch/internal/domain/entity"
	"vendorwatch/internal/domain/repository"
	"vendorwatch/internal/domain/status"
	"vendorwatch/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultPageSize = 50

// filterableColumns are the grid columns whose unique value sets are derived
// for categorical filtering.
var filterableColumns = []string{
	"area", "region", "market", "state", "city",
	"vendor.name", "effectiveStatus", "manager.name", "regionalManager.name",
}

// portfolioService implements the PortfolioUsecase interface.
type portfolioService struct {
	propertyRepo repository.PropertyRepository
	logger       *slog.Logger
	now          func() time.Time
}

// PortfolioServiceParams holds dependencies for PortfolioService, injected by Fx.
type PortfolioServiceParams struct {
	fx.In

	PropertyRepo repository.PropertyRepository
	Logger       *slog.Logger
}

// NewPortfolioService is the constructor for portfolioService.
func NewPortfolioService(params PortfolioServiceParams) usecase.PortfolioUsecase {
	return &portfolioService{
		propertyRepo: params.PropertyRepo,
		logger:       params.Logger,
		now:          time.Now,
	}
}

func (srv *portfolioService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListPortfolio returns one grid page for the viewer. The pipeline is:
// scope filter, classify, text search, column filters, sort, page.
func (srv *portfolioService) ListPortfolio(ctx context.Context, viewer *entity.UserProfile, query usecase.GridQuery) (*usecase.GridPage, error) {
	properties, err := srv.propertyRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch portfolio")
	}

	now := srv.now()
	scope := viewer.VisibleScope()
	viewerEmail := viewer.Key()

	views := make([]*usecase.PropertyView, 0, len(properties))
	for _, p := range properties {
		if !scope.Allows(p, viewerEmail) {
			continue
		}
		views = append(views, &usecase.PropertyView{
			Property:        p,
			EffectiveStatus: status.Classify(p, now),
		})
	}

	// Filter option sets come from the scoped slice, before search and
	// filters narrow it, so the UI can always widen a filter again.
	options := filterOptions(views)

	if search := strings.TrimSpace(query.Search); search != "" {
		views = searchViews(views, search)
	}
	views = applyFilters(views, query.Filters)
	sortViews(views, query.Sort)

	total := len(views)
	page, pageSize := query.Page, query.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if page < 0 {
		page = 0
	}

	start := page * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	srv.log(ctx).Debug("portfolio grid served",
		slog.Int("scoped", len(properties)),
		slog.Int("matched", total),
		slog.Int("page", page),
	)

	return &usecase.GridPage{
		Items:         views[start:end],
		Total:         total,
		Page:          page,
		PageSize:      pageSize,
		FilterOptions: options,
	}, nil
}

// fieldValue resolves a dot-path grid column to its display value.
func fieldValue(v *usecase.PropertyView, path string) string {
	switch path {
	case "id":
		return v.ID
	case "name":
		return v.Name
	case "address":
		return v.Address
	case "city":
		return v.City
	case "state":
		return v.State
	case "zip":
		return v.Zip
	case "area":
		return v.Area
	case "region":
		return v.Region
	case "market":
		return v.Market
	case "manager.name":
		return v.Manager.Name
	case "manager.email":
		return v.Manager.Email
	case "regionalManager.name":
		return v.RegionalManager.Name
	case "regionalManager.email":
		return v.RegionalManager.Email
	case "vendor.name":
		return v.Vendor.Name
	case "vendor.accountNumber":
		return v.Vendor.AccountNumber
	case "vendor.billingFrequency":
		return v.Vendor.BillingFrequency
	case "terms.startDate":
		return v.Terms.StartDate
	case "terms.endDate":
		return v.Terms.EndDate
	case "terms.cancellationWindow":
		return v.Terms.CancellationWindow
	case "effectiveStatus":
		return v.EffectiveStatus.String()
	default:
		return ""
	}
}

// numericValue resolves the grid's numeric columns; ok is false for string
// columns so the comparator falls back to text ordering.
func numericValue(v *usecase.PropertyView, path string) (float64, bool) {
	switch path {
	case "unitCount":
		return float64(v.UnitCount), true
	case "vendor.rating":
		return float64(v.Vendor.Rating), true
	case "vendor.currentPrice":
		return v.Vendor.CurrentPrice, true
	default:
		return 0, false
	}
}

func searchViews(views []*usecase.PropertyView, search string) []*usecase.PropertyView {
	needle := strings.ToLower(search)
	searchFields := []string{"name", "address", "city", "zip", "id", "vendor.name"}

	matched := views[:0]
	for _, v := range views {
		for _, field := range searchFields {
			if strings.Contains(strings.ToLower(fieldValue(v, field)), needle) {
				matched = append(matched, v)

				break
			}
		}
	}

	return matched
}

func applyFilters(views []*usecase.PropertyView, filters map[string][]string) []*usecase.PropertyView {
	if len(filters) == 0 {
		return views
	}

	matched := views[:0]
	for _, v := range views {
		if matchesFilters(v, filters) {
			matched = append(matched, v)
		}
	}

	return matched
}

func matchesFilters(v *usecase.PropertyView, filters map[string][]string) bool {
	for column, accepted := range filters {
		if len(accepted) == 0 {
			continue
		}

		value := fieldValue(v, column)
		found := false
		for _, candidate := range accepted {
			if strings.EqualFold(value, candidate) {
				found = true

				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func sortViews(views []*usecase.PropertyView, keys []usecase.SortKey) {
	if len(keys) == 0 {
		// Stable default ordering by name keeps pages deterministic.
		keys = []usecase.SortKey{{Field: "name"}}
	}

	sort.SliceStable(views, func(i, j int) bool {
		for _, key := range keys {
			cmp := compareViews(views[i], views[j], key.Field)
			if cmp == 0 {
				continue
			}
			if key.Desc {
				return cmp > 0
			}

			return cmp < 0
		}

		return false
	})
}

func compareViews(a, b *usecase.PropertyView, field string) int {
	if av, ok := numericValue(a, field); ok {
		bv, _ := numericValue(b, field)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(
		strings.ToLower(fieldValue(a, field)),
		strings.ToLower(fieldValue(b, field)),
	)
}

func filterOptions(views []*usecase.PropertyView) map[string][]string {
	options := make(map[string][]string, len(filterableColumns))
	for _, column := range filterableColumns {
		seen := make(map[string]struct{})
		var values []string
		for _, v := range views {
			value := fieldValue(v, column)
			if value == "" {
				continue
			}
			if _, dup := seen[value]; dup {
				continue
			}
			seen[value] = struct{}{}
			values = append(values, value)
		}
		sort.Strings(values)
		options[column] = values
	}

	return options
}
