// Package memory is an in-process credential store. It keeps the same
// conditional-write semantics as the DynamoDB adapter and is selected with
// store.driver=memory.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"dentist/internal/domain/entity"
	domainerrors "dentist/internal/domain/errors"
	"dentist/internal/domain/repository"
	"dentist/internal/domain/service"
)

type userRepository struct {
	mu           sync.RWMutex
	users        map[string]*entity.User
	tokenService service.TokenService
	now          func() time.Time
}

// NewUserRepository creates an empty store.
func NewUserRepository(tokenService service.TokenService) repository.UserRepository {
	return &userRepository{
		users:        make(map[string]*entity.User),
		tokenService: tokenService,
		now:          time.Now,
	}
}

func clone(u *entity.User) *entity.User {
	cp := *u
	cp.Tokens = slices.Clone(u.Tokens)

	return &cp
}

// touch bumps version and modified time on a stored record. Callers hold mu.
func (r *userRepository) touch(u *entity.User) {
	u.Version++
	u.Modified = r.now().UTC()
}

func (r *userRepository) Create(_ context.Context, user *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.UserName]; ok {
		return nil, domainerrors.ErrAlreadyExists.WrapMessage("user " + user.UserName)
	}

	stored := clone(user)
	stored.Role = entity.RoleOrDefault(stored.Role)
	stored.Version = 1
	stored.Created = r.now().UTC()
	stored.Modified = stored.Created
	r.users[user.UserName] = stored

	return clone(stored), nil
}

func (r *userRepository) FindByUserName(_ context.Context, userName string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userName]
	if !ok {
		return nil, domainerrors.ErrNotFound.WrapMessage("user " + userName)
	}

	return clone(u), nil
}

func (r *userRepository) Update(_ context.Context, userName string, patch entity.UserPatch) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userName]
	if !ok {
		return nil, domainerrors.ErrNotFound.WrapMessage("user " + userName)
	}

	patch.Apply(u)
	r.touch(u)

	return clone(u), nil
}

func (r *userRepository) Delete(_ context.Context, userName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userName]; !ok {
		return domainerrors.ErrNotFound.WrapMessage("user " + userName)
	}
	delete(r.users, userName)

	return nil
}

func (r *userRepository) List(_ context.Context) (*entity.UserList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		data = append(data, clone(u))
	}
	sort.Slice(data, func(i, j int) bool { return data[i].UserName < data[j].UserName })

	return &entity.UserList{Count: len(data), Data: data}, nil
}

func (r *userRepository) AddToken(_ context.Context, userName, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userName]
	if !ok {
		return domainerrors.ErrNotFound.WrapMessage("user " + userName)
	}
	if !slices.Contains(u.Tokens, token) {
		u.Tokens = append(u.Tokens, token)
	}
	r.touch(u)

	return nil
}

func (r *userRepository) RemoveToken(_ context.Context, userName, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userName]
	if !ok {
		return domainerrors.ErrNotFound.WrapMessage("user " + userName)
	}
	u.Tokens = slices.DeleteFunc(u.Tokens, func(t string) bool { return t == token })
	r.touch(u)

	return nil
}

func (r *userRepository) UpdatePasswordHash(_ context.Context, userName, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userName]
	if !ok {
		return domainerrors.ErrNotFound.WrapMessage("user " + userName)
	}
	u.PasswordHash = hash
	r.touch(u)

	return nil
}

func (r *userRepository) FindByToken(ctx context.Context, token string) (*entity.User, error) {
	claims, err := r.tokenService.Decode(token)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("decode")
	}

	u, err := r.FindByUserName(ctx, claims.UserName)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("unknown subject")
	}
	if !u.HasToken(token) {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("token revoked")
	}

	return u, nil
}
