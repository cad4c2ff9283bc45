package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locotranz/bus-reservation/internal/model"
	"github.com/locotranz/bus-reservation/internal/repository"
)

// BusHandler exposes CRUD endpoints for buses.
type BusHandler struct {
	BusRepo *repository.BusRepo
}

// NewBusHandler constructs a BusHandler. The repository must be non-nil.
func NewBusHandler(busRepo *repository.BusRepo) *BusHandler {
	if busRepo == nil {
		panic("nil repository passed to NewBusHandler")
	}
	return &BusHandler{BusRepo: busRepo}
}

type busBody struct {
	BusNumber       string `json:"bus_number"`
	OperatorName    string `json:"operator_name"`
	BusType         string `json:"bus_type"`
	SourceStop      string `json:"source_stop"`
	DestinationStop string `json:"destination_stop"`
	TotalSeats      uint32 `json:"total_seats"`
}

func (b *busBody) validate() string {
	switch {
	case b.BusNumber == "":
		return "bus_number is required"
	case b.OperatorName == "":
		return "operator_name is required"
	case b.SourceStop == "" || b.DestinationStop == "":
		return "source_stop and destination_stop are required"
	case b.TotalSeats == 0:
		return "total_seats must be greater than zero"
	}
	return ""
}

func busResponse(b *model.Bus) echo.Map {
	return echo.Map{
		"id":               b.ID,
		"bus_number":       b.BusNumber,
		"operator_name":    b.OperatorName,
		"bus_type":         b.BusType,
		"source_stop":      b.SourceStop,
		"destination_stop": b.DestinationStop,
		"total_seats":      b.TotalSeats,
	}
}

// Create handles POST /v1/buses.
func (h *BusHandler) Create(c echo.Context) error {
	var body busBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	bus := &model.Bus{
		BusNumber:       body.BusNumber,
		OperatorName:    body.OperatorName,
		BusType:         body.BusType,
		SourceStop:      body.SourceStop,
		DestinationStop: body.DestinationStop,
		TotalSeats:      body.TotalSeats,
	}
	if err := h.BusRepo.Create(c.Request().Context(), bus); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create bus"})
	}
	return c.JSON(http.StatusCreated, busResponse(bus))
}

// List handles GET /v1/buses.
func (h *BusHandler) List(c echo.Context) error {
	skip, limit := parsePage(c)
	buses, err := h.BusRepo.List(c.Request().Context(), skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load buses"})
	}
	items := make([]echo.Map, 0, len(buses))
	for i := range buses {
		items = append(items, busResponse(&buses[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/buses/:id.
func (h *BusHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bus id"})
	}
	bus, err := h.BusRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBusNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bus not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bus"})
	}
	return c.JSON(http.StatusOK, busResponse(bus))
}

// Update handles PUT /v1/buses/:id.
func (h *BusHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bus id"})
	}
	var body busBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	bus := &model.Bus{
		ID:              id,
		BusNumber:       body.BusNumber,
		OperatorName:    body.OperatorName,
		BusType:         body.BusType,
		SourceStop:      body.SourceStop,
		DestinationStop: body.DestinationStop,
		TotalSeats:      body.TotalSeats,
	}
	if err := h.BusRepo.Update(c.Request().Context(), bus); err != nil {
		if errors.Is(err, repository.ErrBusNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bus not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update bus"})
	}
	return c.JSON(http.StatusOK, busResponse(bus))
}

// Delete handles DELETE /v1/buses/:id.
func (h *BusHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bus id"})
	}
	if err := h.BusRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrBusNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bus not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete bus"})
	}
	return c.NoContent(http.StatusNoContent)
}
