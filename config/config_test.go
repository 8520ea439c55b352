package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "dentist/internal/domain/errors"
	"dentist/internal/errors"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.HTTP.Port = 3000
	cfg.JWT.Secret = "secret"
	cfg.Store.Driver = StoreDriverDynamoDB
	cfg.DynamoDB.Region = "eu-west-1"

	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.JWT.Secret = "" }, wantErr: domainerrors.ErrConfigNotFound},
		{name: "missing port", mutate: func(c *Config) { c.HTTP.Port = 0 }, wantErr: domainerrors.ErrConfigNotFound},
		{name: "missing region", mutate: func(c *Config) { c.DynamoDB.Region = "" }, wantErr: domainerrors.ErrConfigNotFound},
		{
			name: "memory store needs no region",
			mutate: func(c *Config) {
				c.Store.Driver = StoreDriverMemory
				c.DynamoDB.Region = ""
			},
		},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "redis" }, wantErr: domainerrors.ErrConfigNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestNew_AppliesLegacyEnvAndDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DYNAMODB_PREFIX_TABLE", "test-")
	t.Setenv("HTTP_PORT", "8081")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, "test-dentist", cfg.DynamoDB.TableName())
	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, 72*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeouts.ReadTimeout)
	assert.Equal(t, StoreDriverDynamoDB, cfg.Store.Driver)
}

func TestNew_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := New()
	require.Error(t, err)

	var appErr *domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONFIG_ERROR", appErr.ErrorCode())
	assert.Equal(t, domainerrors.CauseConfigNotFound, appErr.Cause())
}

func TestNew_PortNotNumber(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("HTTP_PORT", "eighty")

	_, err := New()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrConfigNotNumber))
	assert.False(t, errors.Is(err, domainerrors.ErrConfigNotFound))
}
