package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "tourly/internal/errors"
	"tourly/internal/service"
)

// BookingHandler bundles checkout and the booking admin surface.
type BookingHandler struct {
	svc service.BookingService
}

// NewBookingHandler creates a handler layer.
func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// Checkout godoc
// @Summary Book a tour for the logged-in user
// @Tags bookings
// @Produce json
// @Param tourId path string true "Tour ID"
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /bookings/checkout-session/{tourId} [get]
func (h *BookingHandler) Checkout(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	tourID, err := uuid.Parse(c.Param("tourId"))
	if err != nil {
		return apperrors.Validation("invalid tour id")
	}

	booking, err := h.svc.Checkout(c.Request().Context(), user, tourID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"status": "success",
		"data":   echo.Map{"booking": booking},
	})
}

// MyBookings godoc
// @Summary List the logged-in user's bookings
// @Tags bookings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /bookings/my [get]
func (h *BookingHandler) MyBookings(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	bookings, err := h.svc.ListMyBookings(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"results": len(bookings),
		"data":    echo.Map{"bookings": bookings},
	})
}

// ListBookings godoc
// @Summary List all bookings (admin)
// @Tags bookings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c echo.Context) error {
	bookings, err := h.svc.ListBookings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"results": len(bookings),
		"data":    echo.Map{"bookings": bookings},
	})
}

// GetBooking godoc
// @Summary Get a booking by id (admin)
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	booking, err := h.svc.GetBooking(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"booking": booking},
	})
}

// DeleteBooking godoc
// @Summary Delete a booking (admin)
// @Tags bookings
// @Param id path string true "Booking ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /bookings/{id} [delete]
func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteBooking(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
