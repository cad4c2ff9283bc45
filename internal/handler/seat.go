package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locotranz/bus-reservation/internal/model"
	"github.com/locotranz/bus-reservation/internal/repository"
)

// SeatHandler exposes the seat inventory endpoints: idempotent bulk
// generation per schedule, availability listing, and single-seat
// operator surfaces.
type SeatHandler struct {
	SeatRepo     *repository.SeatRepo
	ScheduleRepo *repository.ScheduleRepo
	BusRepo      *repository.BusRepo
}

// NewSeatHandler constructs a SeatHandler. All repositories must be
// non-nil.
func NewSeatHandler(seatRepo *repository.SeatRepo, scheduleRepo *repository.ScheduleRepo, busRepo *repository.BusRepo) *SeatHandler {
	if seatRepo == nil || scheduleRepo == nil || busRepo == nil {
		panic("nil repository passed to NewSeatHandler")
	}
	return &SeatHandler{SeatRepo: seatRepo, ScheduleRepo: scheduleRepo, BusRepo: busRepo}
}

func seatResponse(s *model.Seat) echo.Map {
	return echo.Map{
		"id":           s.ID,
		"schedule_id":  s.ScheduleID,
		"seat_number":  s.SeatNumber,
		"is_available": s.IsAvailable,
	}
}

func seatItems(seats []model.Seat) []echo.Map {
	items := make([]echo.Map, 0, len(seats))
	for i := range seats {
		items = append(items, seatResponse(&seats[i]))
	}
	return items
}

// Generate handles POST /v1/seats/generate/:schedule_id. It creates
// seats 1..bus.total_seats for the schedule; when seats already exist
// the existing set is returned unchanged. This runs once at schedule
// setup, never on the passenger path, so it is not guarded against
// concurrent invocation for the same schedule.
func (h *SeatHandler) Generate(c echo.Context) error {
	scheduleID, ok := parseID(c, "schedule_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
	}
	ctx := c.Request().Context()
	schedule, err := h.ScheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load schedule"})
	}
	bus, err := h.BusRepo.GetByID(ctx, schedule.BusID)
	if err != nil {
		if errors.Is(err, repository.ErrBusNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bus not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bus"})
	}
	seats, err := h.SeatRepo.EnsureForSchedule(ctx, scheduleID, bus.TotalSeats)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to generate seats"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"items": seatItems(seats)})
}

// Available handles GET /v1/seats/available/:schedule_id.
func (h *SeatHandler) Available(c echo.Context) error {
	scheduleID, ok := parseID(c, "schedule_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
	}
	ctx := c.Request().Context()
	if _, err := h.ScheduleRepo.GetByID(ctx, scheduleID); err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load schedule"})
	}
	seats, err := h.SeatRepo.ListAvailable(ctx, scheduleID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": seatItems(seats)})
}

// Get handles GET /v1/seats/:id.
func (h *SeatHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	seat, err := h.SeatRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seat"})
	}
	return c.JSON(http.StatusOK, seatResponse(seat))
}

// SetAvailability handles PUT /v1/seats/:id. This is an operator
// correction surface; reservations go through the booking endpoints.
func (h *SeatHandler) SetAvailability(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	var body struct {
		IsAvailable *bool `json:"is_available"`
	}
	if err := c.Bind(&body); err != nil || body.IsAvailable == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "is_available is required"})
	}
	seat, err := h.SeatRepo.SetAvailability(c.Request().Context(), id, *body.IsAvailable)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update seat"})
	}
	return c.JSON(http.StatusOK, seatResponse(seat))
}

// Delete handles DELETE /v1/seats/:id.
func (h *SeatHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	if err := h.SeatRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete seat"})
	}
	return c.NoContent(http.StatusNoContent)
}
