// Package usecase holds testify mocks of the usecase contracts.
package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dentist/internal/domain/entity"
	"dentist/internal/usecase"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockAuthUsecase is a testify mock of usecase.AuthUsecase.
type MockAuthUsecase struct {
	mock.Mock
}

var _ usecase.AuthUsecase = (*MockAuthUsecase)(nil)

func NewMockAuthUsecase(t testingT) *MockAuthUsecase {
	m := &MockAuthUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func userArg(args mock.Arguments, i int) *entity.User {
	u, _ := args.Get(i).(*entity.User)

	return u
}

func (m *MockAuthUsecase) VerifyCredentials(ctx context.Context, userName, password string) (*entity.User, error) {
	args := m.Called(ctx, userName, password)

	return userArg(args, 0), args.Error(1)
}

func (m *MockAuthUsecase) Login(ctx context.Context, user *entity.User) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, user)
	out, _ := args.Get(0).(*usecase.LoginOutput)

	return out, args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, user *entity.User, token string) (bool, error) {
	args := m.Called(ctx, user, token)

	return args.Bool(0), args.Error(1)
}

func (m *MockAuthUsecase) ResolveByToken(ctx context.Context, token string) (*entity.User, error) {
	args := m.Called(ctx, token)

	return userArg(args, 0), args.Error(1)
}

func (m *MockAuthUsecase) ResetPassword(ctx context.Context, userName, newPassword string) (bool, error) {
	args := m.Called(ctx, userName, newPassword)

	return args.Bool(0), args.Error(1)
}
