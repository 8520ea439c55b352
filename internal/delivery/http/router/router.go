// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"dentist/config"
	"dentist/internal/delivery/http/middleware"
	"dentist/internal/delivery/http/router/handler"
	"dentist/internal/domain/entity"
	domainerrors "dentist/internal/domain/errors"
)

// APIPrefix is the path every application route is mounted under.
const APIPrefix = "/api/v1"

type RouterParams struct {
	fx.In

	Config         *config.Config
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	BookingHandler *handler.BookingHandler
	AuthMiddleware *middleware.AuthMiddleware
	Metrics        *middleware.Metrics
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg            *config.Config
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	bookingHandler *handler.BookingHandler
	authMiddleware *middleware.AuthMiddleware
	metrics        *middleware.Metrics
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:            params.Config,
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		bookingHandler: params.BookingHandler,
		authMiddleware: params.AuthMiddleware,
		metrics:        params.Metrics,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	if r.cfg.Metrics.Enabled {
		e.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))
	}

	api := e.Group(APIPrefix)
	{
		api.POST("/login", r.authHandler.Login, r.authMiddleware.Credentials)
		api.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
	}

	admin := api.Group("/admin", r.authMiddleware.Authenticate)
	if r.cfg.Auth.EnforceAdminRole {
		admin.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	}

	users := admin.Group("/user")
	{
		users.POST("", r.userHandler.CreateUser)
		users.GET("", r.userHandler.ListUsers)
		users.GET("/:id", r.userHandler.GetUser)
		users.PUT("/:id", r.userHandler.UpdateUser)
		users.DELETE("/:id", r.userHandler.DeleteUser)
		users.PUT("/:id/password", r.userHandler.ResetPassword)
	}

	bookings := admin.Group("/booking")
	{
		bookings.POST("/:year/:month/:day", r.bookingHandler.CreateBooking)
	}

	e.RouteNotFound("/*", routeNotFound)
}

func routeNotFound(echo.Context) error {
	return domainerrors.ErrRouteNotFound
}
