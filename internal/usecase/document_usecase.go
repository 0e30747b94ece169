package usecase

import (
	"context"
	"io"

	"vendorwatch/internal/domain/entity"
)

// UploadDocumentInput defines an uploaded file and its metadata.
type UploadDocumentInput struct {
	Name        string `json:"name" validate:"required"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// DocumentUsecase manages uploaded contract documents: blob content plus the
// metadata list embedded on the property document.
type DocumentUsecase interface {
	// UploadDocument writes the blob, then appends metadata to the property.
	// When the metadata write fails the blob is deleted best-effort so no
	// orphan remains.
	UploadDocument(ctx context.Context, viewer *entity.UserProfile, propertyID string, input UploadDocumentInput) (*entity.PropertyDocument, error)

	// ListDocuments returns the property's document metadata.
	ListDocuments(ctx context.Context, viewer *entity.UserProfile, propertyID string) ([]entity.PropertyDocument, error)

	// OpenDocument streams a stored document.
	OpenDocument(ctx context.Context, viewer *entity.UserProfile, propertyID, documentID string) (io.ReadCloser, *entity.PropertyDocument, error)

	// DeleteDocument removes blob and metadata together.
	DeleteDocument(ctx context.Context, viewer *entity.UserProfile, propertyID, documentID string) error
}
