package firestore

import (
	"context"
	"time"

	"vendorwatch/internal/domain/constants"
	domainerrors "vendorwatch/internal/domain/errors"
	"vendorwatch/internal/domain/repository"
	"vendorwatch/internal/infra/persistence/model"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
)

// batchWriteLimit is Firestore's hard cap on writes per atomic batch.
const batchWriteLimit = 500

// portfolioImporter implements repository.PortfolioImporter with Firestore
// write batches. Each ImportBatch call is atomic.
type portfolioImporter struct {
	client *firestore.Client
}

// NewPortfolioImporter is the constructor for portfolioImporter.
func NewPortfolioImporter(client *firestore.Client) repository.PortfolioImporter {
	return &portfolioImporter{client: client}
}

// ImportBatch persists the batch atomically and returns the number of
// documents written. Properties and their derived user accounts land in one
// commit; Firestore caps a batch at 500 writes, so oversized imports are
// rejected rather than split.
func (imp *portfolioImporter) ImportBatch(ctx context.Context, batch *repository.ImportBatch) (int, error) {
	total := len(batch.Properties) + len(batch.Users)
	if total == 0 {
		return 0, domainerrors.ErrImportEmpty
	}
	if total > batchWriteLimit {
		return 0, domainerrors.ErrImportTooLarge.WrapMessage(
			errors.Errorf("%d documents exceed the %d-write batch limit", total, batchWriteLimit).Error())
	}

	now := time.Now().UTC()
	writeBatch := imp.client.Batch()

	properties := imp.client.Collection(constants.PropertiesCollection)
	for _, p := range batch.Properties {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now
		writeBatch.Set(properties.Doc(p.ID), model.FromPropertyDomain(p))
	}

	users := imp.client.Collection(constants.UsersCollection)
	for _, u := range batch.Users {
		if u.CreatedAt.IsZero() {
			u.CreatedAt = now
		}
		u.UpdatedAt = now
		writeBatch.Set(users.Doc(u.Key()), model.FromUserDomain(u))
	}

	if _, err := writeBatch.Commit(ctx); err != nil {
		return 0, domainerrors.NewDatastoreExecuteError(err, "failed to commit import batch")
	}

	return total, nil
}

// ClearAll deletes every property document in batched commits. Returns the
// number removed.
func (imp *portfolioImporter) ClearAll(ctx context.Context) (int, error) {
	collection := imp.client.Collection(constants.PropertiesCollection)
	removed := 0

	for {
		// Fetch up to one batch worth of document refs at a time.
		iter := collection.Limit(batchWriteLimit).Documents(ctx)
		refs := make([]*firestore.DocumentRef, 0, batchWriteLimit)
		for {
			snap, err := iter.Next()
			if errors.Is(err, iterator.Done) {
				break
			}
			if err != nil {
				iter.Stop()

				return removed, errors.Wrap(err, "failed to list properties for clearing")
			}
			refs = append(refs, snap.Ref)
		}
		iter.Stop()

		if len(refs) == 0 {
			return removed, nil
		}

		writeBatch := imp.client.Batch()
		for _, ref := range refs {
			writeBatch.Delete(ref)
		}
		if _, err := writeBatch.Commit(ctx); err != nil {
			return removed, domainerrors.NewDatastoreExecuteError(err, "failed to commit clear batch")
		}
		removed += len(refs)
	}
}
