package handler

import (
	"github.com/labstack/echo/v4"

	"dentist/internal/delivery/http/validator"
)

// bindAndValidate decodes the request body into req and runs the echo validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return validator.ValidationError("body", "body: "+bindMessage(err))
	}

	return c.Validate(req)
}

func bindMessage(err error) string {
	if httpErr, ok := err.(*echo.HTTPError); ok {
		if msg, ok := httpErr.Message.(string); ok {
			return msg
		}
	}

	return err.Error()
}
