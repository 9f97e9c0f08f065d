package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/middleware"
	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/service"
)

// BookingHandler serves the signed-in customer's booking endpoints.
type BookingHandler struct {
	Bookings *service.BookingService
	Coupons  *service.CouponService
}

func NewBookingHandler(bookings *service.BookingService, coupons *service.CouponService) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Coupons: coupons}
}

// ----- DTOs -----

type bookReq struct {
	ShowtimeID string   `json:"showtime_id"`
	SeatIDs    []string `json:"seat_ids"`
	CouponCode string   `json:"coupon_code"`
	LocationID string   `json:"location_id"`
}

type bookResp struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Quote   service.Quote `json:"quote"`
	Booking model.Booking `json:"booking"`
}

// Book: POST /v1/bookings
// The price is quoted on the server from the seat count and coupon; the
// client never sends an amount.
func (h *BookingHandler) Book(c echo.Context) error {
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.ShowtimeID == "" || len(req.SeatIDs) == 0 {
		return badRequest(c, "showtime_id and seat_ids are required")
	}

	q, err := h.Coupons.Quote(countDistinct(req.SeatIDs), req.CouponCode)
	if err != nil {
		if isNotFound(err) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "invalid_coupon", "message": service.InvalidCouponMessage})
		}
		return respondError(c, err)
	}

	b, err := h.Bookings.BookSeats(c.Request().Context(), service.BookRequest{
		UserID:     middleware.UserID(c),
		ShowtimeID: req.ShowtimeID,
		SeatIDs:    req.SeatIDs,
		PricePaid:  q.Total,
		LocationID: req.LocationID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, bookResp{Success: true, Message: "Booking confirmed", Quote: q, Booking: b})
}

// MyTickets: GET /v1/my-tickets
func (h *BookingHandler) MyTickets(c echo.Context) error {
	list, err := h.Bookings.TicketsForUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": list})
}

// MarkUpgradeSeen: POST /v1/bookings/:id/upgrade-seen
func (h *BookingHandler) MarkUpgradeSeen(c echo.Context) error {
	b, err := h.Bookings.MarkUpgradeSeen(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func countDistinct(ids []string) int {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}
