package impl

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"dentist/config"
	"dentist/internal/domain/repository"
	"dentist/internal/domain/service"
	"dentist/internal/infra/auth"
	"dentist/internal/infra/persistence/memory"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// inMemoryStack wires the real hasher and token service over the memory store.
type inMemoryStack struct {
	repo   repository.UserRepository
	hasher service.PasswordHasher
	tokens service.TokenService
}

func newInMemoryStack(t *testing.T) inMemoryStack {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = time.Hour

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return inMemoryStack{
		repo:   memory.NewUserRepository(tokens),
		hasher: auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		tokens: tokens,
	}
}
