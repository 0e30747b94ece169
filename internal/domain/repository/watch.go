package repository

import (
	"context"

	"vendorwatch/internal/domain/entity"
)

// ChangeKind discriminates property change notifications.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeModified ChangeKind = "modified"
	ChangeRemoved  ChangeKind = "removed"
)

// PropertyChange is one observed mutation of a property document.
type PropertyChange struct {
	Kind     ChangeKind
	Property *entity.Property
}

// PropertyWatcher streams live changes to the properties collection.
type PropertyWatcher interface {
	// Watch delivers batches of changes until ctx is cancelled. The channel
	// is closed when the stream ends.
	Watch(ctx context.Context) (<-chan []PropertyChange, error)
}

// UserWatcher streams live changes to a single user profile, used to push
// role or scope updates to connected sessions.
type UserWatcher interface {
	// Watch delivers the profile on every change until ctx is cancelled.
	Watch(ctx context.Context, email string) (<-chan *entity.UserProfile, error)
}
