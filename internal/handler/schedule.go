package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/locotranz/bus-reservation/internal/model"
	"github.com/locotranz/bus-reservation/internal/repository"
)

const travelDateLayout = "2006-01-02"

// ScheduleHandler exposes CRUD endpoints for schedules plus the public
// route search. Search results are cached in redis for a short TTL;
// when redis is unavailable the handler falls through to the database.
type ScheduleHandler struct {
	ScheduleRepo *repository.ScheduleRepo
	Redis        *redis.Client // may be nil; caching disabled then
	CacheTTL     time.Duration
}

// NewScheduleHandler constructs a ScheduleHandler. The repository must
// be non-nil; the redis client is optional.
func NewScheduleHandler(scheduleRepo *repository.ScheduleRepo, rdb *redis.Client, cacheTTL time.Duration) *ScheduleHandler {
	if scheduleRepo == nil {
		panic("nil repository passed to NewScheduleHandler")
	}
	return &ScheduleHandler{ScheduleRepo: scheduleRepo, Redis: rdb, CacheTTL: cacheTTL}
}

type scheduleBody struct {
	BusID         uint64  `json:"bus_id"`
	TravelDate    string  `json:"travel_date"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Fare          float64 `json:"fare"`
	Status        string  `json:"status"`
}

func (b *scheduleBody) toModel(id uint64) (*model.Schedule, string) {
	if b.BusID == 0 {
		return nil, "bus_id is required"
	}
	date, err := time.Parse(travelDateLayout, b.TravelDate)
	if err != nil {
		return nil, "travel_date must be YYYY-MM-DD"
	}
	if b.DepartureTime == "" || b.ArrivalTime == "" {
		return nil, "departure_time and arrival_time are required"
	}
	if b.Fare < 0 {
		return nil, "fare must not be negative"
	}
	status := b.Status
	switch status {
	case "":
		status = model.ScheduleActive
	case model.ScheduleActive, model.ScheduleInactive:
	default:
		return nil, "status must be active or inactive"
	}
	return &model.Schedule{
		ID:            id,
		BusID:         b.BusID,
		TravelDate:    date,
		DepartureTime: b.DepartureTime,
		ArrivalTime:   b.ArrivalTime,
		Fare:          b.Fare,
		Status:        status,
	}, ""
}

func scheduleResponse(s *model.Schedule) echo.Map {
	return echo.Map{
		"id":             s.ID,
		"bus_id":         s.BusID,
		"travel_date":    s.TravelDate.Format(travelDateLayout),
		"departure_time": s.DepartureTime,
		"arrival_time":   s.ArrivalTime,
		"fare":           s.Fare,
		"status":         s.Status,
	}
}

// Create handles POST /v1/schedules.
func (h *ScheduleHandler) Create(c echo.Context) error {
	var body scheduleBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	s, msg := body.toModel(0)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := h.ScheduleRepo.Create(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create schedule"})
	}
	return c.JSON(http.StatusCreated, scheduleResponse(s))
}

// List handles GET /v1/schedules.
func (h *ScheduleHandler) List(c echo.Context) error {
	skip, limit := parsePage(c)
	schedules, err := h.ScheduleRepo.List(c.Request().Context(), skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load schedules"})
	}
	items := make([]echo.Map, 0, len(schedules))
	for i := range schedules {
		items = append(items, scheduleResponse(&schedules[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Search handles GET /v1/schedules/search?source=&destination=&date=.
// Active schedules between the two stops on the date are returned,
// served from the redis cache when a fresh entry exists.
func (h *ScheduleHandler) Search(c echo.Context) error {
	source := c.QueryParam("source")
	destination := c.QueryParam("destination")
	dateStr := c.QueryParam("date")
	if source == "" || destination == "" || dateStr == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "source, destination and date are required"})
	}
	date, err := time.Parse(travelDateLayout, dateStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	ctx := c.Request().Context()
	cacheKey := "search:" + source + ":" + destination + ":" + dateStr
	if h.Redis != nil {
		if cached, err := h.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var items []echo.Map
			if json.Unmarshal([]byte(cached), &items) == nil {
				return c.JSON(http.StatusOK, echo.Map{"items": items})
			}
		}
	}
	schedules, err := h.ScheduleRepo.SearchByRoute(ctx, source, destination, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to search schedules"})
	}
	items := make([]echo.Map, 0, len(schedules))
	for i := range schedules {
		items = append(items, scheduleResponse(&schedules[i]))
	}
	if h.Redis != nil && h.CacheTTL > 0 {
		if blob, err := json.Marshal(items); err == nil {
			// Best effort; a failed cache write never fails the request.
			_ = h.Redis.Set(ctx, cacheKey, blob, h.CacheTTL).Err()
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/schedules/:id.
func (h *ScheduleHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
	}
	s, err := h.ScheduleRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load schedule"})
	}
	return c.JSON(http.StatusOK, scheduleResponse(s))
}

// Update handles PUT /v1/schedules/:id.
func (h *ScheduleHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
	}
	var body scheduleBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	s, msg := body.toModel(id)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := h.ScheduleRepo.Update(c.Request().Context(), s); err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update schedule"})
	}
	return c.JSON(http.StatusOK, scheduleResponse(s))
}

// Delete handles DELETE /v1/schedules/:id. Seats cascade with their
// schedule.
func (h *ScheduleHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
	}
	if err := h.ScheduleRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete schedule"})
	}
	return c.NoContent(http.StatusNoContent)
}
