package firestore

import (
	"context"
	"time"

	"vendorwatch/internal/domain/constants"
	"vendorwatch/internal/domain/entity"
	domainerrors "vendorwatch/internal/domain/errors"
	"vendorwatch/internal/domain/repository"
	"vendorwatch/internal/infra/persistence/model"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// propertyRepository implements the repository.PropertyRepository interface
// on the properties collection.
type propertyRepository struct {
	client *firestore.Client
}

// NewPropertyRepository is the constructor for propertyRepository.
// It returns the repository as a repository.PropertyRepository interface, adhering to dependency inversion.
func NewPropertyRepository(client *firestore.Client) repository.PropertyRepository {
	return &propertyRepository{client: client}
}

func (repo *propertyRepository) collection() *firestore.CollectionRef {
	return repo.client.Collection(constants.PropertiesCollection)
}

// FindByID retrieves a single property by its document ID.
func (repo *propertyRepository) FindByID(ctx context.Context, id string) (*entity.Property, error) {
	snap, err := repo.collection().Doc(id).Get(ctx)
	if err != nil {
		// Translate the store's not-found into the domain-specific error.
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrPropertyNotFound
		}

		return nil, errors.Wrap(err, "failed to find property by id")
	}

	var m model.PropertyModel
	if err := snap.DataTo(&m); err != nil {
		return nil, errors.Wrap(err, "failed to decode property document")
	}

	return model.ToPropertyDomain(&m), nil
}

// FindAll retrieves every property in the portfolio.
func (repo *propertyRepository) FindAll(ctx context.Context) ([]*entity.Property, error) {
	iter := repo.collection().Documents(ctx)
	defer iter.Stop()

	var properties []*entity.Property
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate properties")
		}

		var m model.PropertyModel
		if err := snap.DataTo(&m); err != nil {
			return nil, errors.Wrap(err, "failed to decode property document")
		}
		properties = append(properties, model.ToPropertyDomain(&m))
	}

	return properties, nil
}

// Create persists a new property entity to the storage.
func (repo *propertyRepository) Create(ctx context.Context, property *entity.Property) error {
	now := time.Now().UTC()
	property.CreatedAt = now
	property.UpdatedAt = now

	m := model.FromPropertyDomain(property)
	// Create fails when the document already exists.
	if _, err := repo.collection().Doc(property.ID).Create(ctx, m); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return domainerrors.ErrConflict.WrapMessage("property already exists")
		}

		return domainerrors.NewDatastoreExecuteError(err, "failed to create property")
	}

	return nil
}

// Save replaces the stored property document with the given entity.
func (repo *propertyRepository) Save(ctx context.Context, property *entity.Property) error {
	property.UpdatedAt = time.Now().UTC()

	m := model.FromPropertyDomain(property)
	if _, err := repo.collection().Doc(property.ID).Set(ctx, m); err != nil {
		return domainerrors.NewDatastoreExecuteError(err, "failed to save property")
	}

	return nil
}

// UpdateFields applies a partial update. Keys are dot-separated field paths
// as stored in the document, e.g. "vendor.currentPrice".
func (repo *propertyRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now().UTC()})

	if _, err := repo.collection().Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrPropertyNotFound
		}

		return domainerrors.NewDatastoreExecuteError(err, "failed to update property fields")
	}

	return nil
}

// Delete removes the property document.
func (repo *propertyRepository) Delete(ctx context.Context, id string) error {
	// Existence check first: Firestore deletes are idempotent and would hide
	// a bad ID from the caller.
	if _, err := repo.collection().Doc(id).Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrPropertyNotFound
		}

		return errors.Wrap(err, "failed to check property existence")
	}

	if _, err := repo.collection().Doc(id).Delete(ctx); err != nil {
		return domainerrors.NewDatastoreExecuteError(err, "failed to delete property")
	}

	return nil
}
