package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	deliverycontext "vendorwatch/internal/delivery/context"
	"vendorwatch/internal/domain/entity"
	domainerrors "vendorwatch/internal/domain/errors"
	"vendorwatch/internal/domain/repository"
	"vendorwatch/internal/infra/spreadsheet"
	"vendorwatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// importService implements the ImportUsecase interface.
type importService struct {
	propertyRepo repository.PropertyRepository
	importer     repository.PortfolioImporter
	codec        *spreadsheet.Codec
	logger       *slog.Logger
	now          func() time.Time
}

// ImportServiceParams holds dependencies for ImportService, injected by Fx.
type ImportServiceParams struct {
	fx.In

	PropertyRepo repository.PropertyRepository
	Importer     repository.PortfolioImporter
	Logger       *slog.Logger
}

// NewImportService is the constructor for importService.
func NewImportService(params ImportServiceParams) usecase.ImportUsecase {
	return &importService{
		propertyRepo: params.PropertyRepo,
		importer:     params.Importer,
		codec:        spreadsheet.NewCodec(),
		logger:       params.Logger,
		now:          time.Now,
	}
}

func (srv *importService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ImportPortfolio parses the sheet, derives user accounts from the manager
// columns, and commits properties and users in one atomic batch.
func (srv *importService) ImportPortfolio(ctx context.Context, viewer *entity.UserProfile, sheet io.Reader) (*usecase.ImportSummary, error) {
	if !viewer.Role.CanManageUsers() {
		return nil, domainerrors.ErrForbidden.WrapMessage("only administrators may import the portfolio")
	}

	properties, err := srv.codec.Parse(sheet)
	if err != nil {
		return nil, domainerrors.ErrImportHeaderMismatch.WithDetails(err.Error())
	}
	if len(properties) == 0 {
		return nil, domainerrors.ErrImportEmpty
	}

	for _, p := range properties {
		p.ID = uuid.New().String()
	}

	users := deriveUsers(properties)

	written, err := srv.importer.ImportBatch(ctx, &repository.ImportBatch{
		Properties: properties,
		Users:      users,
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("portfolio imported",
		slog.Int("properties", len(properties)),
		slog.Int("derived_users", len(users)),
	)

	return &usecase.ImportSummary{
		Properties:   len(properties),
		DerivedUsers: len(users),
		Written:      written,
	}, nil
}

// WriteTemplate writes the empty import template.
func (srv *importService) WriteTemplate(w io.Writer) error {
	return srv.codec.WriteTemplate(w)
}

// ExportPortfolio writes the viewer's visible portfolio under the template headers.
func (srv *importService) ExportPortfolio(ctx context.Context, viewer *entity.UserProfile, w io.Writer) error {
	properties, err := srv.propertyRepo.FindAll(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to fetch portfolio for export")
	}

	scope := viewer.VisibleScope()
	viewerEmail := viewer.Key()

	visible := make([]*entity.Property, 0, len(properties))
	for _, p := range properties {
		if scope.Allows(p, viewerEmail) {
			visible = append(visible, p)
		}
	}

	return srv.codec.Export(w, visible)
}

// ClearPortfolio deletes every property. Admin only.
func (srv *importService) ClearPortfolio(ctx context.Context, viewer *entity.UserProfile) (int, error) {
	if !viewer.Role.CanManageUsers() {
		return 0, domainerrors.ErrForbidden.WrapMessage("only administrators may clear the portfolio")
	}

	removed, err := srv.importer.ClearAll(ctx)
	if err != nil {
		return removed, err
	}

	srv.log(ctx).Warn("portfolio cleared",
		slog.String("by", viewer.Key()),
		slog.Int("removed", removed),
	)

	return removed, nil
}

// deriveUsers builds the implied PM and RPM accounts embedded in the sheet's
// manager columns. PMs get a personal portfolio scope; RPMs get a named
// region scope accumulated across their rows. Existing accounts are simply
// overwritten, last write wins.
func deriveUsers(properties []*entity.Property) []*entity.UserProfile {
	byEmail := make(map[string]*entity.UserProfile)
	order := make([]string, 0)

	upsert := func(person entity.Personnel, role entity.Role, scope *entity.AccessScope) *entity.UserProfile {
		email := strings.ToLower(strings.TrimSpace(person.Email))
		if email == "" {
			return nil
		}

		u, ok := byEmail[email]
		if !ok {
			u = &entity.UserProfile{
				Email: email,
				Name:  person.Name,
				Phone: person.Phone,
				Role:  role,
				Scope: scope,
			}
			byEmail[email] = u
			order = append(order, email)
		}

		return u
	}

	for _, p := range properties {
		upsert(p.Manager, entity.RolePM, &entity.AccessScope{Type: entity.ScopeTypePortfolio})

		rpm := upsert(p.RegionalManager, entity.RoleRegionalPM, &entity.AccessScope{Type: entity.ScopeTypeRegion})
		if rpm != nil && p.Region != "" {
			addScopeValue(rpm.Scope, p.Region)
		}
	}

	users := make([]*entity.UserProfile, 0, len(order))
	for _, email := range order {
		users = append(users, byEmail[email])
	}

	return users
}

func addScopeValue(scope *entity.AccessScope, value string) {
	for _, existing := range scope.Values {
		if strings.EqualFold(existing, value) {
			return
		}
	}
	scope.Values = append(scope.Values, value)
}
