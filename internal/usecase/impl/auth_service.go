// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	deliverycontext "dentist/internal/delivery/context"
	"dentist/internal/domain/entity"
	domainerrors "dentist/internal/domain/errors"
	"dentist/internal/domain/repository"
	"dentist/internal/domain/service"
	"dentist/internal/errors"
	"dentist/internal/usecase"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger.With(slog.String("module", "auth")),
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *authService) VerifyCredentials(ctx context.Context, userName, password string) (*entity.User, error) {
	if userName == "" || password == "" {
		return nil, domainerrors.ErrInvalidCredential.WrapMessage("missing username or password")
	}

	user, err := srv.userRepo.FindByUserName(ctx, userName)
	if err != nil {
		// Unknown user and store failures look the same to the caller.
		srv.log(ctx).Debug("Credential lookup failed", slog.String("userName", userName), slog.Any("error", err))

		return nil, domainerrors.ErrInvalidCredential.WrapMessage("login failed")
	}

	if !srv.hasher.Check(password, user.PasswordHash) {
		srv.log(ctx).Debug("Password mismatch", slog.String("userName", userName))

		return nil, domainerrors.ErrInvalidCredential.WrapMessage("login failed")
	}

	return user, nil
}

func (srv *authService) Login(ctx context.Context, user *entity.User) (*usecase.LoginOutput, error) {
	token, err := srv.tokenService.Issue(user.UserName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	if err := srv.userRepo.AddToken(ctx, user.UserName, token); err != nil {
		return nil, errors.Wrap(err, "failed to store token")
	}

	srv.log(ctx).Info("User logged in", slog.String("userName", user.UserName))

	return &usecase.LoginOutput{Token: token}, nil
}

func (srv *authService) Logout(ctx context.Context, user *entity.User, token string) (bool, error) {
	if err := srv.userRepo.RemoveToken(ctx, user.UserName, token); err != nil {
		return false, errors.Wrap(err, "failed to revoke token")
	}

	srv.log(ctx).Info("User logged out", slog.String("userName", user.UserName))

	return true, nil
}

func (srv *authService) ResolveByToken(ctx context.Context, token string) (*entity.User, error) {
	user, err := srv.userRepo.FindByToken(ctx, token)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrInvalidToken) {
			srv.log(ctx).Warn("Token lookup failed", slog.Any("error", err))
		}

		return nil, domainerrors.ErrInvalidToken.WrapMessage("token rejected")
	}

	return user, nil
}

func (srv *authService) ResetPassword(ctx context.Context, userName, newPassword string) (bool, error) {
	if newPassword == "" {
		return false, domainerrors.ErrValidation.WithRaw(map[string]any{
			"errors":  []string{"password: is required"},
			"dataVar": "body",
		})
	}

	hash, err := srv.hasher.Hash(newPassword)
	if err != nil {
		return false, errors.Wrap(err, "failed to hash password")
	}

	if err := srv.userRepo.UpdatePasswordHash(ctx, userName, hash); err != nil {
		return false, errors.Wrapf(err, "failed to reset password of %s", userName)
	}

	srv.log(ctx).Info("Password reset", slog.String("userName", userName))

	return true, nil
}
