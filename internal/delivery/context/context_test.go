package context

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dentist/internal/domain/entity"
)

func TestAuthContext_RoundTrip(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, ok := GetAuth(c)
	assert.False(t, ok)

	SetAuth(c, &AuthContext{User: &entity.User{UserName: "admin"}, Token: "tok"})

	auth, ok := GetAuth(c)
	require.True(t, ok)
	assert.Equal(t, "admin", auth.User.UserName)
	assert.Equal(t, "tok", auth.Token)

	fromCtx, ok := AuthFromContext(c.Request().Context())
	require.True(t, ok)
	assert.Same(t, auth, fromCtx)
}

func TestAuthContext_RejectsEmptyIdentity(t *testing.T) {
	ctx := WithAuth(context.Background(), &AuthContext{Token: "tok"})

	_, ok := AuthFromContext(ctx)
	assert.False(t, ok)
}

func TestGetLoggerOrDefault(t *testing.T) {
	fallback := slog.Default()
	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))

	scoped := slog.New(slog.DiscardHandler)
	assert.Same(t, scoped, GetLoggerOrDefault(WithLogger(context.Background(), scoped), fallback))
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Empty(t, GetRequestID(c))
	SetRequestID(c, "req-1")
	assert.Equal(t, "req-1", GetRequestID(c))
	assert.Equal(t, "req-1", RequestIDFromContext(WithRequestID(context.Background(), "req-1")))
}
