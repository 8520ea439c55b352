package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dentist/config"
	"dentist/internal/domain/entity"
	domainerrors "dentist/internal/domain/errors"
	"dentist/internal/domain/repository"
	"dentist/internal/errors"
	"dentist/internal/infra/auth"
)

func newTestRepo(t *testing.T) repository.UserRepository {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = time.Hour
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return NewUserRepository(tokens)
}

func TestUserRepository_CreateIsConditional(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &entity.User{UserName: "mario", Name: "Mario"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.Version)
	assert.Equal(t, entity.RoleUser, created.Role)
	assert.False(t, created.Created.IsZero())

	_, err = repo.Create(ctx, &entity.User{UserName: "mario", Name: "Other"})
	assert.True(t, errors.Is(err, domainerrors.ErrAlreadyExists))

	got, err := repo.FindByUserName(ctx, "mario")
	require.NoError(t, err)
	assert.Equal(t, "Mario", got.Name)
}

func TestUserRepository_MissingUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	name := "ghost"

	_, err := repo.FindByUserName(ctx, "ghost")
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	_, err = repo.Update(ctx, "ghost", entity.UserPatch{Name: &name})
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	assert.True(t, errors.Is(repo.Delete(ctx, "ghost"), domainerrors.ErrNotFound))
	assert.True(t, errors.Is(repo.AddToken(ctx, "ghost", "t"), domainerrors.ErrNotFound))
	assert.True(t, errors.Is(repo.RemoveToken(ctx, "ghost", "t"), domainerrors.ErrNotFound))
	assert.True(t, errors.Is(repo.UpdatePasswordHash(ctx, "ghost", "h"), domainerrors.ErrNotFound))
}

func TestUserRepository_UpdateReturnsNewRecord(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &entity.User{UserName: "mario", Name: "Mario", Surname: "Rossi"})
	require.NoError(t, err)

	name := "Luigi"
	updated, err := repo.Update(ctx, "mario", entity.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Luigi", updated.Name)
	assert.Equal(t, "Rossi", updated.Surname)
	assert.Equal(t, 2, updated.Version)
}

func TestUserRepository_TokenSet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &entity.User{UserName: "mario"})
	require.NoError(t, err)

	require.NoError(t, repo.AddToken(ctx, "mario", "a"))
	require.NoError(t, repo.AddToken(ctx, "mario", "b"))
	require.NoError(t, repo.AddToken(ctx, "mario", "a"))
	require.NoError(t, repo.RemoveToken(ctx, "mario", "missing"))

	got, err := repo.FindByUserName(ctx, "mario")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, got.Tokens)

	require.NoError(t, repo.RemoveToken(ctx, "mario", "a"))
	got, err = repo.FindByUserName(ctx, "mario")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, got.Tokens)
}

func TestUserRepository_FindByToken(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = time.Hour
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	repo := NewUserRepository(tokens)
	ctx := context.Background()

	_, err = repo.Create(ctx, &entity.User{UserName: "mario"})
	require.NoError(t, err)

	token, err := tokens.Issue("mario")
	require.NoError(t, err)

	_, err = repo.FindByToken(ctx, token)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken), "issued but never stored")

	require.NoError(t, repo.AddToken(ctx, "mario", token))
	u, err := repo.FindByToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "mario", u.UserName)

	orphan, err := tokens.Issue("nobody")
	require.NoError(t, err)
	_, err = repo.FindByToken(ctx, orphan)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))

	_, err = repo.FindByToken(ctx, "garbage")
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestUserRepository_ConcurrentTokenWrites(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &entity.User{UserName: "mario"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, tok := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.AddToken(ctx, "mario", tok))
		}()
	}
	wg.Wait()

	got, err := repo.FindByUserName(ctx, "mario")
	require.NoError(t, err)
	assert.Len(t, got.Tokens, 8)
	assert.Equal(t, 9, got.Version)
}

func TestUserRepository_ListAndDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"b", "a", "c"} {
		_, err := repo.Create(ctx, &entity.User{UserName: name})
		require.NoError(t, err)
	}
	require.NoError(t, repo.Delete(ctx, "b"))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, "a", list.Data[0].UserName)
	assert.Equal(t, "c", list.Data[1].UserName)
}
