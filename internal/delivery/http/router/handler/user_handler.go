package handler

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"dentist/internal/delivery/http/response"
	"dentist/internal/domain/entity"
	"dentist/internal/usecase"
)

// CreateUserRequest is the body of POST /admin/user.
type CreateUserRequest struct {
	UserName   string `json:"userName" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Surname    string `json:"surname" validate:"required"`
	Telephone  string `json:"telephone" validate:"required"`
	FiscalCode string `json:"fiscalCode" validate:"required"`
	BornDate   string `json:"bornDate" validate:"required,datetime=2006-01-02"`
	Password   string `json:"password"`
	Role       string `json:"role" validate:"omitempty,oneof=user admin"`
}

// UpdateUserRequest is the body of PUT /admin/user/:id. Absent fields are
// left unchanged; the user name cannot be changed.
type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Surname    *string `json:"surname"`
	Telephone  *string `json:"telephone"`
	FiscalCode *string `json:"fiscalCode"`
	BornDate   *string `json:"bornDate" validate:"omitempty,datetime=2006-01-02"`
	Role       *string `json:"role" validate:"omitempty,oneof=user admin"`
}

func (r *UpdateUserRequest) toPatch() entity.UserPatch {
	patch := entity.UserPatch{
		Name:       r.Name,
		Surname:    r.Surname,
		Telephone:  r.Telephone,
		FiscalCode: r.FiscalCode,
		BornDate:   r.BornDate,
	}
	if r.Role != nil {
		role := entity.Role(*r.Role)
		patch.Role = &role
	}

	return patch
}

// ResetPasswordRequest is the body of PUT /admin/user/:id/password.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// UserHandler serves the admin user directory.
type UserHandler struct {
	uc     usecase.UserUsecase
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, authUC usecase.AuthUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{uc: uc, authUC: authUC, logger: logger}
}

// CreateUser handles POST /admin/user.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.uc.CreateUser(c.Request().Context(), &usecase.CreateUserInput{
		UserName:   req.UserName,
		Password:   req.Password,
		Name:       req.Name,
		Surname:    req.Surname,
		Telephone:  req.Telephone,
		FiscalCode: req.FiscalCode,
		BornDate:   req.BornDate,
		Role:       entity.Role(req.Role),
	})
	if err != nil {
		return err
	}

	return response.Success(c, newUserView(user))
}

// ListUsers handles GET /admin/user.
func (h *UserHandler) ListUsers(c echo.Context) error {
	list, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, newUserListView(list))
}

// GetUser handles GET /admin/user/:id.
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.uc.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return response.Success(c, newUserView(user))
}

// UpdateUser handles PUT /admin/user/:id.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.uc.UpdateUser(c.Request().Context(), c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}

	return response.Success(c, newUserView(user))
}

// DeleteUser handles DELETE /admin/user/:id and answers with a bare true.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.uc.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return response.Success(c, true)
}

// ResetPassword handles PUT /admin/user/:id/password.
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	success, err := h.authUC.ResetPassword(c.Request().Context(), c.Param("id"), req.Password)
	if err != nil {
		return err
	}

	return response.Success(c, &SuccessResponse{Success: success})
}
