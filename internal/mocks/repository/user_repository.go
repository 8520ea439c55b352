// Package repository holds testify mocks of the domain repository contracts.
package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dentist/internal/domain/entity"
)

// MockUserRepository is a testify mock of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a mock that asserts its expectations when
// the test ends.
func NewMockUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func userResult(args mock.Arguments, i int) *entity.User {
	if u, ok := args.Get(i).(*entity.User); ok {
		return u
	}

	return nil
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	args := m.Called(ctx, user)

	return userResult(args, 0), args.Error(1)
}

func (m *MockUserRepository) FindByUserName(ctx context.Context, userName string) (*entity.User, error) {
	args := m.Called(ctx, userName)

	return userResult(args, 0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, userName string, patch entity.UserPatch) (*entity.User, error) {
	args := m.Called(ctx, userName, patch)

	return userResult(args, 0), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, userName string) error {
	return m.Called(ctx, userName).Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) (*entity.UserList, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).(*entity.UserList)

	return list, args.Error(1)
}

func (m *MockUserRepository) AddToken(ctx context.Context, userName, token string) error {
	return m.Called(ctx, userName, token).Error(0)
}

func (m *MockUserRepository) RemoveToken(ctx context.Context, userName, token string) error {
	return m.Called(ctx, userName, token).Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userName, hash string) error {
	return m.Called(ctx, userName, hash).Error(0)
}

func (m *MockUserRepository) FindByToken(ctx context.Context, token string) (*entity.User, error) {
	args := m.Called(ctx, token)

	return userResult(args, 0), args.Error(1)
}
