package handler

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	deliverycontext "dentist/internal/delivery/context"
	"dentist/internal/delivery/http/response"
	domainerrors "dentist/internal/domain/errors"
	"dentist/internal/usecase"
)

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// SuccessResponse is the body of logout and password reset.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// AuthHandler serves login and logout. Both run behind a guard that has
// already attached the caller's identity.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

// Login issues a session token for the verified user.
func (h *AuthHandler) Login(c echo.Context) error {
	auth, ok := deliverycontext.GetAuth(c)
	if !ok {
		return domainerrors.ErrInvalidCredential
	}

	output, err := h.uc.Login(c.Request().Context(), auth.User)
	if err != nil {
		return err
	}

	return response.Success(c, &LoginResponse{Token: output.Token})
}

// Logout revokes the bearer token the request was made with.
func (h *AuthHandler) Logout(c echo.Context) error {
	auth, ok := deliverycontext.GetAuth(c)
	if !ok || auth.Token == "" {
		return domainerrors.ErrInvalidToken
	}

	success, err := h.uc.Logout(c.Request().Context(), auth.User, auth.Token)
	if err != nil {
		return err
	}

	return response.Success(c, &SuccessResponse{Success: success})
}
