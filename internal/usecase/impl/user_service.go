package impl

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	deliverycontext "dentist/internal/delivery/context"
	"dentist/internal/domain/entity"
	"dentist/internal/domain/repository"
	"dentist/internal/domain/service"
	"dentist/internal/errors"
	"dentist/internal/usecase"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		logger:   params.Logger.With(slog.String("module", "user")),
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *userService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*entity.User, error) {
	// A user created without a password cannot log in until one is set.
	var hash string
	if input.Password != "" {
		var err error
		if hash, err = srv.hasher.Hash(input.Password); err != nil {
			return nil, errors.Wrap(err, "failed to hash password")
		}
	}

	created, err := srv.userRepo.Create(ctx, &entity.User{
		UserName:     input.UserName,
		Name:         input.Name,
		Surname:      input.Surname,
		Telephone:    input.Telephone,
		FiscalCode:   input.FiscalCode,
		BornDate:     input.BornDate,
		PasswordHash: hash,
		Role:         entity.RoleOrDefault(input.Role),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create user %s", input.UserName)
	}

	srv.log(ctx).Info("User created", slog.String("userName", created.UserName), slog.String("role", created.Role.String()))

	return created, nil
}

func (srv *userService) GetUser(ctx context.Context, userName string) (*entity.User, error) {
	user, err := srv.userRepo.FindByUserName(ctx, userName)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get user %s", userName)
	}

	return user, nil
}

func (srv *userService) UpdateUser(ctx context.Context, userName string, patch entity.UserPatch) (*entity.User, error) {
	updated, err := srv.userRepo.Update(ctx, userName, patch)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update user %s", userName)
	}

	srv.log(ctx).Info("User updated", slog.String("userName", userName), slog.Int("version", updated.Version))

	return updated, nil
}

func (srv *userService) DeleteUser(ctx context.Context, userName string) error {
	if err := srv.userRepo.Delete(ctx, userName); err != nil {
		return errors.Wrapf(err, "failed to delete user %s", userName)
	}

	srv.log(ctx).Info("User deleted", slog.String("userName", userName))

	return nil
}

func (srv *userService) ListUsers(ctx context.Context) (*entity.UserList, error) {
	list, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return list, nil
}
