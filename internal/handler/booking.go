package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/locotranz/bus-reservation/internal/queue"
	"github.com/locotranz/bus-reservation/internal/repository"
	"github.com/locotranz/bus-reservation/internal/service"
)

// BookingHandler exposes the reservation endpoints. The transactional
// work lives in the booking service; this layer binds requests, maps
// the error taxonomy onto status codes (missing resource → 404, seat
// conflict → 409, bad seat selection → 400) and publishes the
// confirmation event after a successful commit.
type BookingHandler struct {
	Service     *service.BookingService
	BookingRepo *repository.BookingRepo
}

// NewBookingHandler constructs a BookingHandler. All dependencies must
// be non-nil.
func NewBookingHandler(svc *service.BookingService, bookingRepo *repository.BookingRepo) *BookingHandler {
	if svc == nil || bookingRepo == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Service: svc, BookingRepo: bookingRepo}
}

// Create handles POST /v1/bookings. It reserves the requested seats and
// returns the persisted booking with its seat associations resolved.
func (h *BookingHandler) Create(c echo.Context) error {
	var body struct {
		UserID         *uint64  `json:"user_id"`
		ScheduleID     uint64   `json:"schedule_id"`
		PassengerName  string   `json:"passenger_name"`
		PassengerPhone string   `json:"passenger_phone"`
		SeatIDs        []uint64 `json:"seat_ids"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ScheduleID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "schedule_id is required"})
	}
	if body.PassengerName == "" || body.PassengerPhone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "passenger_name and passenger_phone are required"})
	}
	if len(body.SeatIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_ids is required"})
	}
	ctx := c.Request().Context()
	detail, err := h.Service.Reserve(ctx, service.ReserveInput{
		ScheduleID:     body.ScheduleID,
		PassengerName:  body.PassengerName,
		PassengerPhone: body.PassengerPhone,
		UserID:         body.UserID,
		SeatIDs:        body.SeatIDs,
	})
	if err != nil {
		var conflict *repository.SeatConflictError
		switch {
		case errors.Is(err, repository.ErrScheduleNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		case errors.As(err, &conflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": conflict.Error()})
		case errors.Is(err, repository.ErrSeatsNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "some seats not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}
	// The reservation is committed; event delivery is best effort.
	event := queue.BookingConfirmedEvent{
		BookingID:     detail.ID,
		ScheduleID:    detail.ScheduleID,
		UserID:        detail.UserID,
		PassengerName: detail.PassengerName,
		TotalFare:     detail.TotalFare,
		ConfirmedAt:   detail.CreatedAt.UTC().Format(time.RFC3339),
	}
	if detail.QRCode != nil {
		event.Reference = *detail.QRCode
	}
	for _, s := range detail.Seats {
		event.SeatNumbers = append(event.SeatNumbers, s.SeatNumber)
	}
	_ = service.PublishBookingConfirmed(ctx, event)
	return c.JSON(http.StatusCreated, detail)
}

// List handles GET /v1/bookings.
func (h *BookingHandler) List(c echo.Context) error {
	skip, limit := parsePage(c)
	details, err := h.BookingRepo.List(c.Request().Context(), skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	detail, err := h.BookingRepo.GetDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}
	return c.JSON(http.StatusOK, detail)
}

// UpdateStatus handles PUT /v1/bookings/:id. Only the status field
// changes; seat availability is untouched.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil || body.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status is required"})
	}
	detail, err := h.Service.SetStatus(c.Request().Context(), id, body.Status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, service.ErrInvalidStatus):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking status"})
		case errors.Is(err, service.ErrInvalidTransition):
			return c.JSON(http.StatusConflict, echo.Map{"error": "invalid status transition"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update booking"})
	}
	return c.JSON(http.StatusOK, detail)
}

// Delete handles DELETE /v1/bookings/:id. Cancelling releases every
// seat the booking held and removes its association rows atomically.
func (h *BookingHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	if err := h.Service.Cancel(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel booking"})
	}
	return c.NoContent(http.StatusNoContent)
}
