package firestore

import (
	"context"
	"strings"
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

// userRepository implements the repository.UserRepository interface on the
// users collection, keyed by lowercased email.
type userRepository struct {
	client *firestore.Client
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(client *firestore.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (repo *userRepository) collection() *firestore.CollectionRef {
	return repo.client.Collection(constants.UsersCollection)
}

func userKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindByEmail retrieves a single profile by email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.UserProfile, error) {
	snap, err := repo.collection().Doc(userKey(email)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	var m model.UserModel
	if err := snap.DataTo(&m); err != nil {
		return nil, errors.Wrap(err, "failed to decode user document")
	}

	return model.ToUserDomain(&m), nil
}

// FindAll retrieves the full user roster.
func (repo *userRepository) FindAll(ctx context.Context) ([]*entity.UserProfile, error) {
	iter := repo.collection().Documents(ctx)
	defer iter.Stop()

	var users []*entity.UserProfile
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate users")
		}

		var m model.UserModel
		if err := snap.DataTo(&m); err != nil {
			return nil, errors.Wrap(err, "failed to decode user document")
		}
		users = append(users, model.ToUserDomain(&m))
	}

	return users, nil
}

// Upsert creates the profile or replaces it when it already exists.
func (repo *userRepository) Upsert(ctx context.Context, profile *entity.UserProfile) error {
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	m := model.FromUserDomain(profile)
	if _, err := repo.collection().Doc(profile.Key()).Set(ctx, m); err != nil {
		return domainerrors.NewDatastoreExecuteError(err, "failed to upsert user")
	}

	return nil
}

// UpdateFields applies a partial update to the stored profile.
func (repo *userRepository) UpdateFields(ctx context.Context, email string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now().UTC()})

	if _, err := repo.collection().Doc(userKey(email)).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatastoreExecuteError(err, "failed to update user fields")
	}

	return nil
}

// Delete removes the profile.
func (repo *userRepository) Delete(ctx context.Context, email string) error {
	if _, err := repo.collection().Doc(userKey(email)).Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to check user existence")
	}

	if _, err := repo.collection().Doc(userKey(email)).Delete(ctx); err != nil {
		return domainerrors.NewDatastoreExecuteError(err, "failed to delete user")
	}

	return nil
}
