// Package context carries request-scoped values between echo handlers and
// the use case layer: the request ID, a request logger and the
// authenticated identity.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"

	"dentist/internal/domain/entity"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	KeyRequestID ContextKey = "request_id"
	KeyLogger    ContextKey = "logger"
	KeyAuth      ContextKey = "auth"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// AuthContext is the identity a guard attached to the request. Token is
// empty when the identity came from credentials rather than a bearer token.
type AuthContext struct {
	User  *entity.User
	Token string
}

// GetRequestID returns the request ID stored on c, or "" if none was set.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok {
		return id
	}

	return ""
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// RequestIDFromContext extracts the request ID from context.Context.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLoggerOrDefault returns the request-scoped logger from ctx, or fallback.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// SetAuth attaches the identity to both the echo context and the request
// context, so handlers and use cases see the same value.
func SetAuth(c echo.Context, auth *AuthContext) {
	c.Set(string(KeyAuth), auth)
	c.SetRequest(c.Request().WithContext(WithAuth(c.Request().Context(), auth)))
}

// GetAuth returns the identity attached by a guard.
func GetAuth(c echo.Context) (*AuthContext, bool) {
	auth, ok := c.Get(string(KeyAuth)).(*AuthContext)

	return auth, ok && auth != nil && auth.User != nil
}

// WithAuth returns a new context carrying auth.
func WithAuth(ctx context.Context, auth *AuthContext) context.Context {
	return context.WithValue(ctx, KeyAuth, auth)
}

// AuthFromContext returns the identity stored in ctx.
func AuthFromContext(ctx context.Context) (*AuthContext, bool) {
	auth, ok := ctx.Value(KeyAuth).(*AuthContext)

	return auth, ok && auth != nil && auth.User != nil
}
