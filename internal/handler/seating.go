package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/service"
)

// SeatingHandler serves seat charts, persona suggestions, selection toggling
// and price quotes.
type SeatingHandler struct {
	Seating *service.SeatingService
	Coupons *service.CouponService
}

func NewSeatingHandler(seating *service.SeatingService, coupons *service.CouponService) *SeatingHandler {
	return &SeatingHandler{Seating: seating, Coupons: coupons}
}

// ----- DTOs -----

type toggleReq struct {
	Selected []string   `json:"selected"`
	Groups   [][]string `json:"groups"`
	SeatID   string     `json:"seat_id"`
}

type quoteReq struct {
	SeatCount  int    `json:"seat_count"`
	CouponCode string `json:"coupon_code"`
}

// GetSeating: GET /v1/showtimes/:id/seating
func (h *SeatingHandler) GetSeating(c echo.Context) error {
	info, err := h.Seating.GetSeatingInfo(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, info)
}

// Suggest: GET /v1/showtimes/:id/suggestions?persona=&family_size=
func (h *SeatingHandler) Suggest(c echo.Context) error {
	persona, err := service.ParsePersona(c.QueryParam("persona"))
	if err != nil {
		return respondError(c, err)
	}
	size := service.DefaultFamilySize
	if raw := c.QueryParam("family_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "family_size must be a number")
		}
		size = n
	}

	groups, err := h.Seating.Suggest(c.Request().Context(), c.Param("id"), persona, size)
	if err != nil {
		return respondError(c, err)
	}
	if groups == nil {
		groups = [][]string{}
	}
	return c.JSON(http.StatusOK, echo.Map{"persona": persona, "groups": groups})
}

// Toggle: POST /v1/selection/toggle
// Applies one seat click to a client-held selection.  Clicking a seat of a
// suggested group toggles the whole group.
func (h *SeatingHandler) Toggle(c echo.Context) error {
	var req toggleReq
	if err := c.Bind(&req); err != nil || req.SeatID == "" {
		return badRequest(c, "seat_id is required")
	}
	selected := service.ToggleSeat(req.Selected, req.Groups, req.SeatID)
	return c.JSON(http.StatusOK, echo.Map{"selected": selected})
}

// Quote: POST /v1/quotes
func (h *SeatingHandler) Quote(c echo.Context) error {
	var req quoteReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	q, err := h.Coupons.Quote(req.SeatCount, req.CouponCode)
	if err != nil {
		if isNotFound(err) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "invalid_coupon", "message": service.InvalidCouponMessage})
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, q)
}
