package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arshraina/dining-reservation-system/internal/booking"
	"github.com/arshraina/dining-reservation-system/internal/model"
	"github.com/arshraina/dining-reservation-system/internal/repository"
)

// BookingHandler serves slot booking and booking listings.  JWT
// middleware runs before every method here.
type BookingHandler struct {
	Svc    *booking.Service
	Ledger repository.BookingStore
}

func NewBookingHandler(svc *booking.Service, ledger repository.BookingStore) *BookingHandler {
	if svc == nil || ledger == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Svc: svc, Ledger: ledger}
}

type bookReq struct {
	PlaceID   uint64 `json:"place_id" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type bookingResp struct {
	ID        uint64 `json:"id"`
	PlaceID   uint64 `json:"place_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		ID:        b.ID,
		PlaceID:   b.VenueID,
		StartTime: b.Slot.Start.Format(time.RFC3339),
		EndTime:   b.Slot.End.Format(time.RFC3339),
		Status:    b.Status,
	}
}

// Book handles POST /api/dining-place/book.
func (h *BookingHandler) Book(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "place_id, start_time and end_time are required"})
	}

	b, err := h.Svc.Book(c.Request().Context(), req.PlaceID, userID, req.StartTime, req.EndTime)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidFormat), errors.Is(err, model.ErrInvalidRange):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date format"})
		case errors.Is(err, repository.ErrVenueNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "dining place not found"})
		case errors.Is(err, booking.ErrSlotUnavailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "slot is not available at this moment"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
	return c.JSON(http.StatusCreated, toBookingResp(b))
}

// MyBookings handles GET /api/bookings for the authenticated user.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookings, err := h.Ledger.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]bookingResp, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}
