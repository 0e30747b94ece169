package firestore

import (
	"context"
	"log/slog"
	"strings"

	"vendorwatch/internal/domain/constants"
	"vendorwatch/internal/domain/entity"
	"vendorwatch/internal/domain/repository"
	"vendorwatch/internal/infra/persistence/model"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

// propertyWatcher implements repository.PropertyWatcher on Firestore
// collection snapshots.
type propertyWatcher struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewPropertyWatcher is the constructor for propertyWatcher.
func NewPropertyWatcher(client *firestore.Client, logger *slog.Logger) repository.PropertyWatcher {
	return &propertyWatcher{client: client, logger: logger}
}

// Watch delivers batches of changes until ctx is cancelled. The first
// snapshot reports every existing document as added, which lets consumers
// build their initial state from the stream itself.
func (w *propertyWatcher) Watch(ctx context.Context) (<-chan []repository.PropertyChange, error) {
	snapshots := w.client.Collection(constants.PropertiesCollection).Snapshots(ctx)
	changes := make(chan []repository.PropertyChange)

	go func() {
		defer close(changes)
		defer snapshots.Stop()

		for {
			snap, err := snapshots.Next()
			if err != nil {
				if ctx.Err() == nil {
					w.logger.Error("property snapshot stream ended",
						slog.Any("error", err),
					)
				}

				return
			}

			batch := make([]repository.PropertyChange, 0, len(snap.Changes))
			for _, change := range snap.Changes {
				converted, err := toPropertyChange(change)
				if err != nil {
					w.logger.Warn("skipping undecodable property change",
						slog.String("doc", change.Doc.Ref.ID),
						slog.Any("error", err),
					)

					continue
				}
				batch = append(batch, converted)
			}

			if len(batch) == 0 {
				continue
			}

			select {
			case changes <- batch:
			case <-ctx.Done():
				return
			}
		}
	}()

	return changes, nil
}

func toPropertyChange(change firestore.DocumentChange) (repository.PropertyChange, error) {
	var m model.PropertyModel
	if err := change.Doc.DataTo(&m); err != nil {
		return repository.PropertyChange{}, errors.Wrap(err, "failed to decode property change")
	}

	kind := repository.ChangeModified
	switch change.Kind {
	case firestore.DocumentAdded:
		kind = repository.ChangeAdded
	case firestore.DocumentRemoved:
		kind = repository.ChangeRemoved
	case firestore.DocumentModified:
		kind = repository.ChangeModified
	}

	return repository.PropertyChange{
		Kind:     kind,
		Property: model.ToPropertyDomain(&m),
	}, nil
}

// userWatcher implements repository.UserWatcher on single-document snapshots.
type userWatcher struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewUserWatcher is the constructor for userWatcher.
func NewUserWatcher(client *firestore.Client, logger *slog.Logger) repository.UserWatcher {
	return &userWatcher{client: client, logger: logger}
}

// Watch delivers the profile on every change until ctx is cancelled.
func (w *userWatcher) Watch(ctx context.Context, email string) (<-chan *entity.UserProfile, error) {
	key := strings.ToLower(strings.TrimSpace(email))
	snapshots := w.client.Collection(constants.UsersCollection).Doc(key).Snapshots(ctx)
	profiles := make(chan *entity.UserProfile)

	go func() {
		defer close(profiles)
		defer snapshots.Stop()

		for {
			snap, err := snapshots.Next()
			if err != nil {
				if ctx.Err() == nil {
					w.logger.Error("user snapshot stream ended",
						slog.String("email", key),
						slog.Any("error", err),
					)
				}

				return
			}

			// Deleted profiles surface as a nil send so sessions can react.
			var profile *entity.UserProfile
			if snap.Exists() {
				var m model.UserModel
				if err := snap.DataTo(&m); err != nil {
					w.logger.Warn("skipping undecodable user change",
						slog.String("email", key),
						slog.Any("error", err),
					)

					continue
				}
				profile = model.ToUserDomain(&m)
			}

			select {
			case profiles <- profile:
			case <-ctx.Done():
				return
			}
		}
	}()

	return profiles, nil
}
