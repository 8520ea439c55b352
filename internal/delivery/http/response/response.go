// Package response writes JSON bodies for the HTTP delivery.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domainerrors "dentist/internal/domain/errors"
)

// Success writes data as a 200 JSON body.
func Success(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, data)
}

// Error writes the error envelope for e.
func Error(c echo.Context, e *domainerrors.AppError) error {
	if c.Request().Method == http.MethodHead {
		return c.NoContent(e.HTTPCode())
	}

	return c.JSON(e.HTTPCode(), domainerrors.NewErrorResponse(e))
}
