package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"dentist/internal/delivery/http/response"
	"dentist/internal/delivery/http/validator"
)

// BookingHandler is a placeholder for appointment booking.
type BookingHandler struct{}

// NewBookingHandler is the constructor for BookingHandler.
func NewBookingHandler() *BookingHandler {
	return &BookingHandler{}
}

// CreateBooking handles POST /admin/booking/:year/:month/:day. It checks the
// date parameters and answers with a fixed body.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var messages []string
	for _, name := range []string{"year", "month", "day"} {
		if _, err := strconv.Atoi(c.Param(name)); err != nil {
			messages = append(messages, name+": must be a number")
		}
	}
	if len(messages) > 0 {
		return validator.ValidationError("params", messages...)
	}

	return response.Success(c, map[string]string{"pong": "it worked!"})
}
