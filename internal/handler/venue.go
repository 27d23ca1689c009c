package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arshraina/dining-reservation-system/internal/booking"
	"github.com/arshraina/dining-reservation-system/internal/model"
	"github.com/arshraina/dining-reservation-system/internal/repository"
)

// VenueHandler serves venue creation, search and availability.
type VenueHandler struct {
	Venues repository.VenueStore
	Svc    *booking.Service
}

func NewVenueHandler(venues repository.VenueStore, svc *booking.Service) *VenueHandler {
	if venues == nil || svc == nil {
		panic("nil dependency passed to NewVenueHandler")
	}
	return &VenueHandler{Venues: venues, Svc: svc}
}

type operationalHours struct {
	OpenTime  string `json:"open_time" validate:"required"`
	CloseTime string `json:"close_time" validate:"required"`
}

type createVenueReq struct {
	Name    string           `json:"name" validate:"required,max=100"`
	Address string           `json:"address" validate:"required,max=100"`
	Phone   string           `json:"phone_no" validate:"required,max=15"`
	Website string           `json:"website" validate:"omitempty,max=100"`
	Hours   operationalHours `json:"operational_hours" validate:"required"`
}

type venueResp struct {
	PlaceID uint64           `json:"place_id"`
	Name    string           `json:"name"`
	Address string           `json:"address"`
	Phone   string           `json:"phone_no"`
	Website string           `json:"website,omitempty"`
	Hours   operationalHours `json:"operational_hours"`
}

func toVenueResp(v model.Venue) venueResp {
	return venueResp{
		PlaceID: v.ID,
		Name:    v.Name,
		Address: v.Address,
		Phone:   v.Phone,
		Website: v.Website,
		Hours:   operationalHours{OpenTime: v.OpenTime, CloseTime: v.CloseTime},
	}
}

// Create handles POST /api/dining-place/create.  The admin API-key
// middleware has already gated the request.
func (h *VenueHandler) Create(c echo.Context) error {
	var req createVenueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, address, phone_no and operational_hours are required"})
	}
	openTime, closeTime, err := model.ValidateHours(req.Hours.OpenTime, req.Hours.CloseTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid operational hours"})
	}

	v := model.Venue{
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		Website:   req.Website,
		OpenTime:  openTime,
		CloseTime: closeTime,
	}
	if err := h.Venues.Create(c.Request().Context(), &v); err != nil {
		if errors.Is(err, repository.ErrDuplicatePhone) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "phone number already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create venue failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":  v.Name + " added successfully",
		"place_id": v.ID,
	})
}

// Search handles GET /api/dining-place?name=.  An empty query lists
// every venue.
func (h *VenueHandler) Search(c echo.Context) error {
	venues, err := h.Venues.Search(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	results := make([]venueResp, 0, len(venues))
	for _, v := range venues {
		results = append(results, toVenueResp(v))
	}
	return c.JSON(http.StatusOK, echo.Map{"results": results})
}

// Availability handles GET /api/dining-place/availability with
// place_id, start_time and end_time query parameters.
func (h *VenueHandler) Availability(c echo.Context) error {
	rawID := c.QueryParam("place_id")
	rawStart := c.QueryParam("start_time")
	rawEnd := c.QueryParam("end_time")
	if rawID == "" || rawStart == "" || rawEnd == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "place_id, start_time and end_time are required"})
	}
	placeID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid place_id"})
	}

	ctx := c.Request().Context()
	v, err := h.Venues.GetByID(ctx, placeID)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "dining place not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	avail, err := h.Svc.CheckAvailability(ctx, placeID, rawStart, rawEnd)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidFormat), errors.Is(err, model.ErrInvalidRange):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date format"})
		case errors.Is(err, repository.ErrVenueNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "dining place not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability check failed"})
	}

	var next *string
	if avail.NextAvailableSlot != nil {
		s := avail.NextAvailableSlot.Format(time.RFC3339)
		next = &s
	}
	return c.JSON(http.StatusOK, echo.Map{
		"place_id":            v.ID,
		"name":                v.Name,
		"phone_no":            v.Phone,
		"available":           avail.Available,
		"next_available_slot": next,
	})
}
