package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "vendorwatch/internal/delivery/context"
	"vendorwatch/internal/domain/entity"
	domainerrors "vendorwatch/internal/domain/errors"
	"vendorwatch/internal/domain/repository"
	"vendorwatch/internal/domain/service"
	"vendorwatch/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	userWatcher  repository.UserWatcher
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
	now          func() time.Time
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	UserWatcher  repository.UserWatcher
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:     params.UserRepo,
		userWatcher:  params.UserWatcher,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account with the default role and no scope.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.UserProfile, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := srv.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, domainerrors.ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check existing account")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	profile := &entity.UserProfile{
		Email:        email,
		Name:         input.Name,
		Phone:        input.Phone,
		Role:         entity.RoleUser,
		PasswordHash: hash,
	}

	if err := srv.userRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("account registered", slog.String("email", email))

	return profile, nil
}

// Login verifies credentials, stamps lastLogin and issues a token pair.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.SessionOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	profile, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Same error as a bad password; account existence is not probeable.
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to load account")
	}

	if !srv.hasher.Check(input.Password, profile.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(profile.Key(), profile.Role.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	now := srv.now().UTC()
	if err := srv.userRepo.UpdateFields(ctx, profile.Key(), map[string]any{"lastLogin": now}); err != nil {
		// The session is already valid; a lost lastLogin is not worth failing it.
		srv.log(ctx).Warn("failed to stamp lastLogin",
			slog.String("email", profile.Key()),
			slog.Any("error", err),
		)
	} else {
		profile.LastLogin = &now
	}

	srv.log(ctx).Info("login succeeded", slog.String("email", profile.Key()))

	return &usecase.SessionOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         profile,
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (srv *userService) Refresh(ctx context.Context, refreshToken string) (*usecase.SessionOutput, error) {
	claims, err := srv.tokenService.ValidateToken(refreshToken)
	if err != nil || claims.Type != "refresh" {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	profile, err := srv.userRepo.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrRefreshTokenInvalid
		}

		return nil, errors.Wrap(err, "failed to load account")
	}

	accessToken, newRefreshToken, err := srv.tokenService.GenerateTokens(profile.Key(), profile.Role.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	return &usecase.SessionOutput{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		User:         profile,
	}, nil
}

// GetProfile returns the stored profile for an email.
func (srv *userService) GetProfile(ctx context.Context, email string) (*entity.UserProfile, error) {
	profile, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, err
	}

	return profile, nil
}

// Roster lists every account. Requires a role that can manage users.
func (srv *userService) Roster(ctx context.Context, viewer *entity.UserProfile) ([]*entity.UserProfile, error) {
	if !viewer.Role.CanManageUsers() {
		return nil, domainerrors.ErrForbidden.WrapMessage("role may not view the roster")
	}

	return srv.userRepo.FindAll(ctx)
}

// SetRoleAndScope assigns role and scope. Requires a role that can manage users.
func (srv *userService) SetRoleAndScope(ctx context.Context, viewer *entity.UserProfile, email string, input usecase.SetRoleInput) (*entity.UserProfile, error) {
	if !viewer.Role.CanManageUsers() {
		return nil, domainerrors.ErrForbidden.WrapMessage("role may not manage users")
	}

	role := entity.Role(input.Role)
	if !role.IsValid() {
		return nil, domainerrors.ErrInvalidRole
	}

	// An unknown scope type would resolve to unrestricted visibility, so it
	// must be rejected rather than stored.
	scopeType := entity.ScopeType(input.ScopeType)
	if input.ScopeType != "" && !scopeType.IsValid() {
		return nil, domainerrors.ErrInvalidScope
	}

	profile, err := srv.GetProfile(ctx, email)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{"role": role.String()}
	if input.ScopeType == "" {
		fields["scope"] = nil
		profile.Scope = nil
	} else {
		scope := &entity.AccessScope{
			Type:   scopeType,
			Values: input.ScopeValues,
		}
		fields["scope"] = map[string]any{
			"type":   input.ScopeType,
			"values": input.ScopeValues,
		}
		profile.Scope = scope
	}
	profile.Role = role

	if err := srv.userRepo.UpdateFields(ctx, profile.Key(), fields); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("role assigned",
		slog.String("email", profile.Key()),
		slog.String("role", role.String()),
		slog.String("by", viewer.Key()),
	)

	return profile, nil
}

// DeleteUser removes an account. Requires a role that can manage users.
func (srv *userService) DeleteUser(ctx context.Context, viewer *entity.UserProfile, email string) error {
	if !viewer.Role.CanManageUsers() {
		return domainerrors.ErrForbidden.WrapMessage("role may not manage users")
	}
	if strings.EqualFold(strings.TrimSpace(email), viewer.Key()) {
		return domainerrors.ErrConflict.WrapMessage("cannot delete your own account")
	}

	if err := srv.userRepo.Delete(ctx, email); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return err
	}

	srv.log(ctx).Info("account deleted",
		slog.String("email", strings.ToLower(email)),
		slog.String("by", viewer.Key()),
	)

	return nil
}

// WatchProfile streams the viewer's own profile so connected sessions see
// role and scope changes live.
func (srv *userService) WatchProfile(ctx context.Context, email string) (<-chan *entity.UserProfile, error) {
	return srv.userWatcher.Watch(ctx, email)
}
