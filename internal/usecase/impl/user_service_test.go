package impl

import (
	"context"
	"testing"
	"time"

	"vendorwatch/internal/domain/entity"
	domainerrors "vendorwatch/internal/domain/errors"
	"vendorwatch/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(repo *fakeUserRepo) *userService {
	return &userService{
		userRepo:     repo,
		userWatcher:  &fakeUserWatcher{ch: make(chan *entity.UserProfile, 1)},
		hasher:       fakeHasher{},
		tokenService: fakeTokenService{},
		logger:       testLogger(),
		now:          time.Now,
	}
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	srv := newUserService(repo)

	profile, err := srv.Register(context.Background(), usecase.RegisterInput{
		Email:    "  New.User@Example.com ",
		Password: "s3cret",
		Name:     "New User",
	})
	require.NoError(t, err)
	assert.Equal(t, "new.user@example.com", profile.Email)
	assert.Equal(t, entity.RoleUser, profile.Role)
	assert.Equal(t, "hashed:s3cret", profile.PasswordHash)
	assert.Nil(t, profile.Scope)

	_, err = srv.Register(context.Background(), usecase.RegisterInput{
		Email:    "new.user@example.com",
		Password: "other",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo(&entity.UserProfile{
		Email:        "pm@example.com",
		Role:         entity.RolePM,
		PasswordHash: "hashed:s3cret",
	})
	srv := newUserService(repo)

	session, err := srv.Login(context.Background(), usecase.LoginInput{
		Email:    "PM@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "access:pm@example.com", session.AccessToken)
	assert.Equal(t, "refresh:pm@example.com:pm", session.RefreshToken)
	require.NotNil(t, session.User.LastLogin)

	stored, err := repo.FindByEmail(context.Background(), "pm@example.com")
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)
}

func TestLogin_BadCredentialsAreUniform(t *testing.T) {
	repo := newFakeUserRepo(&entity.UserProfile{
		Email:        "pm@example.com",
		PasswordHash: "hashed:s3cret",
	})
	srv := newUserService(repo)

	// Wrong password and unknown account return the same error.
	_, err := srv.Login(context.Background(), usecase.LoginInput{Email: "pm@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = srv.Login(context.Background(), usecase.LoginInput{Email: "nobody@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	repo := newFakeUserRepo(&entity.UserProfile{
		Email: "pm@example.com",
		Role:  entity.RolePM,
	})
	srv := newUserService(repo)

	session, err := srv.Refresh(context.Background(), "refresh:pm@example.com:pm")
	require.NoError(t, err)
	assert.Equal(t, "access:pm@example.com", session.AccessToken)

	// Access tokens are not accepted as refresh tokens.
	_, err = srv.Refresh(context.Background(), "access:pm@example.com")
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)

	// A refresh token for a deleted account is dead.
	_, err = srv.Refresh(context.Background(), "refresh:gone@example.com:pm")
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestRoster_AdminOnly(t *testing.T) {
	repo := newFakeUserRepo(adminViewer(), pmViewer())
	srv := newUserService(repo)

	users, err := srv.Roster(context.Background(), adminViewer())
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = srv.Roster(context.Background(), pmViewer())
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestSetRoleAndScope(t *testing.T) {
	repo := newFakeUserRepo(&entity.UserProfile{Email: "pm@example.com", Role: entity.RoleUser})
	srv := newUserService(repo)

	profile, err := srv.SetRoleAndScope(context.Background(), adminViewer(), "pm@example.com", usecase.SetRoleInput{
		Role:        "regional_pm",
		ScopeType:   "region",
		ScopeValues: []string{"Southeast"},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleRegionalPM, profile.Role)
	require.NotNil(t, profile.Scope)
	assert.Equal(t, entity.ScopeTypeRegion, profile.Scope.Type)
	assert.Equal(t, []string{"Southeast"}, profile.Scope.Values)

	// An empty scope type clears the stored scope.
	profile, err = srv.SetRoleAndScope(context.Background(), adminViewer(), "pm@example.com", usecase.SetRoleInput{
		Role: "executive",
	})
	require.NoError(t, err)
	assert.Nil(t, profile.Scope)

	_, err = srv.SetRoleAndScope(context.Background(), adminViewer(), "pm@example.com", usecase.SetRoleInput{
		Role: "warlock",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)

	_, err = srv.SetRoleAndScope(context.Background(), pmViewer(), "pm@example.com", usecase.SetRoleInput{
		Role: "admin",
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = srv.SetRoleAndScope(context.Background(), adminViewer(), "nobody@example.com", usecase.SetRoleInput{
		Role: "pm",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestSetRoleAndScope_UnknownScopeTypeRejected(t *testing.T) {
	repo := newFakeUserRepo(&entity.UserProfile{
		Email: "vp@example.com",
		Role:  entity.RoleRegionVP,
		Scope: &entity.AccessScope{Type: entity.ScopeTypeRegion, Values: []string{"Southeast"}},
	})
	srv := newUserService(repo)

	// A misspelled scope type would resolve to global visibility if stored;
	// it must be rejected instead.
	_, err := srv.SetRoleAndScope(context.Background(), adminViewer(), "vp@example.com", usecase.SetRoleInput{
		Role:        "region_vp",
		ScopeType:   "regin",
		ScopeValues: []string{"Southeast"},
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidScope)

	// The stored scope is untouched and still restricts visibility.
	profile, err := srv.GetProfile(context.Background(), "vp@example.com")
	require.NoError(t, err)
	require.NotNil(t, profile.Scope)
	assert.Equal(t, entity.ScopeTypeRegion, profile.Scope.Type)
	assert.Equal(t, entity.ScopeNamed, profile.VisibleScope().Kind)
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeUserRepo(adminViewer(), pmViewer())
	srv := newUserService(repo)

	assert.ErrorIs(t,
		srv.DeleteUser(context.Background(), pmViewer(), "admin@example.com"),
		domainerrors.ErrForbidden,
	)

	// Admins cannot delete themselves.
	assert.ErrorIs(t,
		srv.DeleteUser(context.Background(), adminViewer(), "Admin@Example.com"),
		domainerrors.ErrConflict,
	)

	require.NoError(t, srv.DeleteUser(context.Background(), adminViewer(), "pm@example.com"))
	assert.ErrorIs(t,
		srv.DeleteUser(context.Background(), adminViewer(), "pm@example.com"),
		domainerrors.ErrUserNotFound,
	)
}

func TestWatchProfile(t *testing.T) {
	watcher := &fakeUserWatcher{ch: make(chan *entity.UserProfile, 1)}
	srv := newUserService(newFakeUserRepo())
	srv.userWatcher = watcher

	updated := &entity.UserProfile{Email: "pm@example.com", Role: entity.RoleRegionalPM}
	watcher.ch <- updated

	ch, err := srv.WatchProfile(context.Background(), "pm@example.com")
	require.NoError(t, err)
	assert.Equal(t, updated, <-ch)
}
