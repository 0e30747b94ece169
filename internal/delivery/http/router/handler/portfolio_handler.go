package handler

import (
	"log/slog"
	"net/http"

	"vendorwatch/internal/delivery/http/middleware"
	"vendorwatch/internal/delivery/http/response"
	"vendorwatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PortfolioHandler serves the dashboard grid and the spreadsheet round-trip.
type PortfolioHandler struct {
	portfolioUC usecase.PortfolioUsecase
	importUC    usecase.ImportUsecase
	logger      *slog.Logger
}

// NewPortfolioHandler is the constructor for PortfolioHandler, injected by Fx.
func NewPortfolioHandler(portfolioUC usecase.PortfolioUsecase, importUC usecase.ImportUsecase, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioUC: portfolioUC,
		importUC:    importUC,
		logger:      logger,
	}
}

// Query returns one grid page. The query arrives as a JSON body because the
// filter map and multi-key sort do not flatten into URL parameters well.
func (h *PortfolioHandler) Query(c echo.Context) error {
	var query usecase.GridQuery
	if err := c.Bind(&query); err != nil {
		return response.BindingError(c, "Invalid grid query")
	}
	if err := c.Validate(&query); err != nil {
		return errors.WithStack(err)
	}

	page, err := h.portfolioUC.ListPortfolio(c.Request().Context(), middleware.Viewer(c), query)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page)
}

// Import ingests an uploaded portfolio sheet. The sheet travels as a
// multipart file field named "sheet".
func (h *PortfolioHandler) Import(c echo.Context) error {
	fileHeader, err := c.FormFile("sheet")
	if err != nil {
		return response.BindingError(c, "Multipart field 'sheet' is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded sheet")
	}
	defer file.Close()

	summary, err := h.importUC.ImportPortfolio(c.Request().Context(), middleware.Viewer(c), file)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary)
}

// Template serves the empty import template.
func (h *PortfolioHandler) Template(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="portfolio_template.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	return errors.WithStack(h.importUC.WriteTemplate(c.Response()))
}

// Export streams the viewer's visible portfolio as a sheet that re-imports
// unchanged.
func (h *PortfolioHandler) Export(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="portfolio.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	return errors.WithStack(h.importUC.ExportPortfolio(c.Request().Context(), middleware.Viewer(c), c.Response()))
}

// Clear deletes every property. Admin only; meant for re-imports during rollout.
func (h *PortfolioHandler) Clear(c echo.Context) error {
	removed, err := h.importUC.ClearPortfolio(c.Request().Context(), middleware.Viewer(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"removed": removed})
}
