package handler

import (
	"io"
	"log/slog"
	"net/http"

	"vendorwatch/internal/delivery/http/middleware"
	"vendorwatch/internal/delivery/http/response"
	"vendorwatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DocumentHandler holds dependencies for property document handlers.
type DocumentHandler struct {
	uc     usecase.DocumentUsecase
	logger *slog.Logger
}

// NewDocumentHandler is the constructor for DocumentHandler, injected by Fx.
func NewDocumentHandler(uc usecase.DocumentUsecase, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		uc:     uc,
		logger: logger,
	}
}

// Upload stores an uploaded file against a property. The file travels as a
// multipart field named "file".
func (h *DocumentHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BindingError(c, "Multipart field 'file' is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return errors.Wrap(err, "failed to read uploaded file")
	}

	doc, err := h.uc.UploadDocument(c.Request().Context(), middleware.Viewer(c), c.Param("id"), usecase.UploadDocumentInput{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, doc)
}

// List returns a property's document metadata.
func (h *DocumentHandler) List(c echo.Context) error {
	docs, err := h.uc.ListDocuments(c.Request().Context(), middleware.Viewer(c), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, docs)
}

// Download streams a stored document.
func (h *DocumentHandler) Download(c echo.Context) error {
	reader, doc, err := h.uc.OpenDocument(c.Request().Context(), middleware.Viewer(c), c.Param("id"), c.Param("documentId"))
	if err != nil {
		return errors.WithStack(err)
	}
	defer reader.Close()

	contentType := doc.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+doc.Name+`"`)

	return c.Stream(http.StatusOK, contentType, reader)
}

// Delete removes a document's blob and metadata together.
func (h *DocumentHandler) Delete(c echo.Context) error {
	if err := h.uc.DeleteDocument(c.Request().Context(), middleware.Viewer(c), c.Param("id"), c.Param("documentId")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"deleted": c.Param("documentId")})
}
