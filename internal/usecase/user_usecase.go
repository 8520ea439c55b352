package usecase

import (
	"context"

	"dentist/internal/domain/entity"
)

// CreateUserInput defines the data required to add a user to the directory.
type CreateUserInput struct {
	UserName   string
	Password   string
	Name       string
	Surname    string
	Telephone  string
	FiscalCode string
	BornDate   string
	Role       entity.Role
}

// UserUsecase is the admin user directory.
type UserUsecase interface {
	CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error)
	GetUser(ctx context.Context, userName string) (*entity.User, error)
	UpdateUser(ctx context.Context, userName string, patch entity.UserPatch) (*entity.User, error)
	DeleteUser(ctx context.Context, userName string) error
	ListUsers(ctx context.Context) (*entity.UserList, error)
}
