package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	deliverycontext "vendorwatch/internal/delivery/context"
	"vendorwatch/internal/domain/entity"
	domainerrors "vendorwatch/internal/domain/errors"
	"vendorwatch/internal/domain/repository"
	"vendorwatch/internal/domain/service"
	"vendorwatch/internal/usecase"
	"vendorwatch/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// documentService implements the DocumentUsecase interface.
type documentService struct {
	propertyRepo repository.PropertyRepository
	storage      service.DocumentStorage
	logger       *slog.Logger
	now          func() time.Time
}

// DocumentServiceParams holds dependencies for DocumentService, injected by Fx.
type DocumentServiceParams struct {
	fx.In

	PropertyRepo repository.PropertyRepository
	Storage      service.DocumentStorage
	Logger       *slog.Logger
}

// NewDocumentService is the constructor for documentService.
func NewDocumentService(params DocumentServiceParams) usecase.DocumentUsecase {
	return &documentService{
		propertyRepo: params.PropertyRepo,
		storage:      params.Storage,
		logger:       params.Logger,
		now:          time.Now,
	}
}

func (srv *documentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *documentService) loadVisible(ctx context.Context, viewer *entity.UserProfile, propertyID string) (*entity.Property, error) {
	p, err := srv.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return nil, domainerrors.ErrPropertyNotFound
		}

		return nil, err
	}
	if !viewer.VisibleScope().Allows(p, viewer.Key()) {
		return nil, domainerrors.ErrPropertyNotFound
	}

	return p, nil
}

// UploadDocument writes the blob first, then appends metadata to the
// property. When the metadata write fails the blob is deleted again so no
// orphan remains.
func (srv *documentService) UploadDocument(ctx context.Context, viewer *entity.UserProfile, propertyID string, input usecase.UploadDocumentInput) (*entity.PropertyDocument, error) {
	if err := requireEditor(viewer); err != nil {
		return nil, err
	}
	p, err := srv.loadVisible(ctx, viewer, propertyID)
	if err != nil {
		return nil, err
	}
	if len(input.Data) == 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("document is empty")
	}

	docID := uuid.New().String()
	storagePath := path.Join("properties", propertyID, fmt.Sprintf("%s-%s", docID, input.Name))

	url, err := srv.storage.Upload(ctx, storagePath, input.ContentType, input.Data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upload document blob")
	}

	doc := entity.PropertyDocument{
		ID:          docID,
		Name:        input.Name,
		URL:         url,
		ContentType: input.ContentType,
		UploadedBy:  viewer.Key(),
		UploadedAt:  srv.now().UTC(),
		StoragePath: storagePath,
		Checksum:    util.CalculateChecksum(input.Data),
		SizeBytes:   int64(len(input.Data)),
	}

	p.Documents = append(p.Documents, doc)
	if err := srv.propertyRepo.Save(ctx, p); err != nil {
		// Compensate: the blob landed but its metadata did not.
		if delErr := srv.storage.Delete(ctx, storagePath); delErr != nil {
			srv.log(ctx).Error("orphaned blob after metadata failure",
				slog.String("path", storagePath),
				slog.Any("error", delErr),
			)
		}

		return nil, errors.Wrap(err, "failed to persist document metadata")
	}

	srv.log(ctx).Info("document uploaded",
		slog.String("property_id", propertyID),
		slog.String("document_id", docID),
		slog.String("size", util.FormatBytes(doc.SizeBytes)),
	)

	return &doc, nil
}

// ListDocuments returns the property's document metadata.
func (srv *documentService) ListDocuments(ctx context.Context, viewer *entity.UserProfile, propertyID string) ([]entity.PropertyDocument, error) {
	p, err := srv.loadVisible(ctx, viewer, propertyID)
	if err != nil {
		return nil, err
	}

	return p.Documents, nil
}

// OpenDocument streams a stored document.
func (srv *documentService) OpenDocument(ctx context.Context, viewer *entity.UserProfile, propertyID, documentID string) (io.ReadCloser, *entity.PropertyDocument, error) {
	p, err := srv.loadVisible(ctx, viewer, propertyID)
	if err != nil {
		return nil, nil, err
	}

	for i := range p.Documents {
		if p.Documents[i].ID != documentID {
			continue
		}

		reader, err := srv.storage.Open(ctx, p.Documents[i].StoragePath)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to open document blob")
		}

		return reader, &p.Documents[i], nil
	}

	return nil, nil, domainerrors.ErrDocumentNotFound
}

// DeleteDocument removes blob and metadata together.
func (srv *documentService) DeleteDocument(ctx context.Context, viewer *entity.UserProfile, propertyID, documentID string) error {
	if err := requireEditor(viewer); err != nil {
		return err
	}
	p, err := srv.loadVisible(ctx, viewer, propertyID)
	if err != nil {
		return err
	}

	kept := make([]entity.PropertyDocument, 0, len(p.Documents))
	var removed *entity.PropertyDocument
	for _, doc := range p.Documents {
		if doc.ID == documentID {
			d := doc
			removed = &d

			continue
		}
		kept = append(kept, doc)
	}
	if removed == nil {
		return domainerrors.ErrDocumentNotFound
	}

	if err := srv.storage.Delete(ctx, removed.StoragePath); err != nil {
		return errors.Wrap(err, "failed to delete document blob")
	}

	p.Documents = kept
	if err := srv.propertyRepo.Save(ctx, p); err != nil {
		return errors.Wrap(err, "failed to persist document removal")
	}

	srv.log(ctx).Info("document deleted",
		slog.String("property_id", propertyID),
		slog.String("document_id", documentID),
	)

	return nil
}
