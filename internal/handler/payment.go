package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locotranz/bus-reservation/internal/model"
	"github.com/locotranz/bus-reservation/internal/repository"
	"github.com/locotranz/bus-reservation/internal/utils"
)

// PaymentHandler exposes CRUD endpoints for payments. No gateway is
// consulted: creation records the payment as SUCCESS with a generated
// transaction reference, and status updates are taken at face value.
type PaymentHandler struct {
	PaymentRepo *repository.PaymentRepo
	BookingRepo *repository.BookingRepo
}

// NewPaymentHandler constructs a PaymentHandler. Both repositories must
// be non-nil.
func NewPaymentHandler(paymentRepo *repository.PaymentRepo, bookingRepo *repository.BookingRepo) *PaymentHandler {
	if paymentRepo == nil || bookingRepo == nil {
		panic("nil repository passed to NewPaymentHandler")
	}
	return &PaymentHandler{PaymentRepo: paymentRepo, BookingRepo: bookingRepo}
}

func paymentResponse(p *model.Payment) echo.Map {
	resp := echo.Map{
		"id":             p.ID,
		"booking_id":     p.BookingID,
		"amount":         p.Amount,
		"payment_method": p.PaymentMethod,
		"status":         p.Status,
	}
	if p.TransactionID != nil {
		resp["transaction_id"] = *p.TransactionID
	}
	return resp
}

// Create handles POST /v1/payments.
func (h *PaymentHandler) Create(c echo.Context) error {
	var body struct {
		BookingID     uint64  `json:"booking_id"`
		Amount        float64 `json:"amount"`
		PaymentMethod string  `json:"payment_method"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.BookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_id is required"})
	}
	if body.Amount <= 0 || body.PaymentMethod == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount and payment_method are required"})
	}
	ctx := c.Request().Context()
	if _, err := h.BookingRepo.GetByID(ctx, body.BookingID); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}
	txn, err := utils.NewTransactionID()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to generate transaction id"})
	}
	p := &model.Payment{
		BookingID:     body.BookingID,
		Amount:        body.Amount,
		PaymentMethod: body.PaymentMethod,
		Status:        model.PaymentSuccess,
		TransactionID: &txn,
	}
	if err := h.PaymentRepo.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create payment"})
	}
	return c.JSON(http.StatusCreated, paymentResponse(p))
}

// List handles GET /v1/payments.
func (h *PaymentHandler) List(c echo.Context) error {
	skip, limit := parsePage(c)
	payments, err := h.PaymentRepo.List(c.Request().Context(), skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load payments"})
	}
	items := make([]echo.Map, 0, len(payments))
	for i := range payments {
		items = append(items, paymentResponse(&payments[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/payments/:id.
func (h *PaymentHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
	}
	p, err := h.PaymentRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load payment"})
	}
	return c.JSON(http.StatusOK, paymentResponse(p))
}

// UpdateStatus handles PUT /v1/payments/:id.
func (h *PaymentHandler) UpdateStatus(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil || body.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status is required"})
	}
	if !model.ValidPaymentStatus(body.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment status"})
	}
	p, err := h.PaymentRepo.UpdateStatus(c.Request().Context(), id, body.Status)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update payment"})
	}
	return c.JSON(http.StatusOK, paymentResponse(p))
}

// Delete handles DELETE /v1/payments/:id.
func (h *PaymentHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
	}
	if err := h.PaymentRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete payment"})
	}
	return c.NoContent(http.StatusNoContent)
}
