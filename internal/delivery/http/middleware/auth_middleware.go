package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	deliverycontext "dentist/internal/delivery/context"
	"dentist/internal/domain/entity"
	domainerrors "dentist/internal/domain/errors"
	"dentist/internal/usecase"
)

const (
	guardCredentials = "credentials"
	guardToken       = "token"
	guardRole        = "role"

	bearerPrefix = "Bearer "
)

// CauseInsufficientRole is reported when a live token lacks the required role.
const CauseInsufficientRole = "INSUFFICIENT_ROLE"

// LoginRequest is the body the credentials guard accepts.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthMiddleware guards routes with credentials or bearer tokens.
type AuthMiddleware struct {
	authUC  usecase.AuthUsecase
	metrics *Metrics
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authUC usecase.AuthUsecase, metrics *Metrics) *AuthMiddleware {
	return &AuthMiddleware{authUC: authUC, metrics: metrics}
}

// Credentials authenticates a username/password body and attaches the user.
func (m *AuthMiddleware) Credentials(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body LoginRequest
		if err := c.Bind(&body); err != nil || body.Username == "" || body.Password == "" {
			m.observe(guardCredentials, OutcomeRejected)

			return domainerrors.ErrInvalidCredential.WrapMessage("missing username and/or password")
		}

		user, err := m.authUC.VerifyCredentials(c.Request().Context(), body.Username, body.Password)
		if err != nil {
			m.observe(guardCredentials, outcomeOf(err))

			return err
		}

		m.observe(guardCredentials, OutcomeAllowed)
		deliverycontext.SetAuth(c, &deliverycontext.AuthContext{User: user})

		return next(c)
	}
}

// Authenticate requires "Authorization: Bearer <token>" naming a live token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			m.observe(guardToken, OutcomeRejected)

			return domainerrors.ErrInvalidToken.WrapMessage("missing bearer token")
		}

		user, err := m.authUC.ResolveByToken(c.Request().Context(), token)
		if err != nil {
			m.observe(guardToken, outcomeOf(err))

			return err
		}

		m.observe(guardToken, OutcomeAllowed)
		deliverycontext.SetAuth(c, &deliverycontext.AuthContext{User: user, Token: token})

		return next(c)
	}
}

// RequireRole must run after Authenticate.
func (m *AuthMiddleware) RequireRole(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth, ok := deliverycontext.GetAuth(c)
			if !ok || auth.User.Role != role {
				m.observe(guardRole, OutcomeRejected)

				return domainerrors.ErrInvalidToken.WithCause(CauseInsufficientRole)
			}

			m.observe(guardRole, OutcomeAllowed)

			return next(c)
		}
	}
}

func (m *AuthMiddleware) observe(guard, outcome string) {
	if m.metrics != nil {
		m.metrics.ObserveGuard(guard, outcome)
	}
}

func bearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, bearerPrefix)
	token = strings.TrimSpace(token)

	return token, found && token != ""
}

func outcomeOf(err error) string {
	switch domainerrors.KindOf(err) {
	case domainerrors.KindInvalidCredential, domainerrors.KindInvalidToken:
		return OutcomeRejected
	default:
		return OutcomeError
	}
}
