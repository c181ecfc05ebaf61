package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/angkut/internal/pkg/apperror"
	"github.com/piresc/angkut/internal/pkg/middleware"
	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/piresc/angkut/internal/utils"
	"github.com/piresc/angkut/services/booking"
)

// BookingHandler handles HTTP requests for the booking lifecycle
type BookingHandler struct {
	bookingUC booking.BookingUC
}

// NewBookingHandler creates a new booking HTTP handler
func NewBookingHandler(bookingUC booking.BookingUC) *BookingHandler {
	return &BookingHandler{
		bookingUC: bookingUC,
	}
}

// RegisterRoutes registers the booking routes behind auth
func (h *BookingHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	bookingGroup := e.Group("/bookings", auth)
	bookingGroup.POST("", h.CreateBooking)
	bookingGroup.GET("", h.ListBookings)
	bookingGroup.GET("/:id", h.GetBooking)
	bookingGroup.PATCH("/:id", h.EditBooking)
	bookingGroup.POST("/:id/status", h.TransitionStatus)
	bookingGroup.POST("/:id/tracking", h.RecordTracking)

	e.GET("/truckers/:id/sequence", h.GetSequence, auth)
	e.GET("/trucks/:id/activity", h.GetTruckActivity, auth)
}

// CreateBooking books a truck for the authenticated customer
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, err.Error())
	}

	var req models.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	result, err := h.bookingUC.CreateBooking(c.Request().Context(), actor, req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	message := "Booking created"
	if result.TruckBusy {
		message = "Booking created, the truck already has other active bookings"
	}
	return utils.SuccessResponse(c, http.StatusCreated, message, result)
}

// ListBookings lists the caller's bookings. ?status= takes a comma separated list.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, err.Error())
	}

	var statuses []models.BookingStatus
	for _, s := range strings.Split(c.QueryParam("status"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			statuses = append(statuses, models.BookingStatus(s))
		}
	}

	list, err := h.bookingUC.ListBookings(c.Request().Context(), actor, statuses)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Bookings retrieved", list)
}

// GetBooking returns one booking to a party or an admin
func (h *BookingHandler) GetBooking(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, err.Error())
	}
	bookingID, err := parseID(c, "id")
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	b, err := h.bookingUC.GetBooking(c.Request().Context(), bookingID, actor)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Booking retrieved", b)
}

// EditBooking changes route or cargo of a pending booking
func (h *BookingHandler) EditBooking(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, err.Error())
	}
	bookingID, err := parseID(c, "id")
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	var req models.EditBookingRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	b, err := h.bookingUC.EditBooking(c.Request().Context(), bookingID, actor, req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Booking updated", b)
}

// TransitionStatus moves a booking along its lifecycle. A cancellation whose
// refund needs manual processing is answered with 202 Accepted.
func (h *BookingHandler) TransitionStatus(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, err.Error())
	}
	bookingID, err := parseID(c, "id")
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	var req models.TransitionRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	result, err := h.bookingUC.TransitionStatus(c.Request().Context(), bookingID, actor, req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	if result.ManualInterventionRequired {
		return utils.SuccessResponse(c, http.StatusAccepted, "Booking cancelled, refund requires manual processing", result)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Booking status updated", result)
}

// RecordTracking stores the trucker's current location
func (h *BookingHandler) RecordTracking(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, err.Error())
	}
	bookingID, err := parseID(c, "id")
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	var update models.TrackingUpdate
	if err := c.Bind(&update); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	b, err := h.bookingUC.RecordTracking(c.Request().Context(), bookingID, actor, update)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Tracking updated", b)
}

// GetSequence returns the trucker's open bookings in visiting order
func (h *BookingHandler) GetSequence(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, err.Error())
	}
	truckerID, err := parseID(c, "id")
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	seq, err := h.bookingUC.ListActiveBookingsSequenced(c.Request().Context(), truckerID, actor)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Delivery sequence retrieved", seq)
}

// GetTruckActivity returns the truck's activity log, newest first
func (h *BookingHandler) GetTruckActivity(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, err.Error())
	}
	truckID, err := parseID(c, "id")
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			return utils.BadRequestResponse(c, "limit must be a number")
		}
	}

	entries, err := h.bookingUC.TruckActivity(c.Request().Context(), truckID, actor, limit)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Truck activity retrieved", entries)
}

func parseID(c echo.Context, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return uuid.Nil, apperror.ValidationError{Field: param, Msg: "must be a valid UUID", Err: err}
	}
	return id, nil
}
