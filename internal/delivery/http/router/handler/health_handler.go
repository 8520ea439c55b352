package handler

import (
	"github.com/labstack/echo/v4"

	"dentist/internal/delivery/http/response"
)

// HealthCheck reports that the process is serving requests.
func HealthCheck(c echo.Context) error {
	return response.Success(c, map[string]string{"status": "ok"})
}
