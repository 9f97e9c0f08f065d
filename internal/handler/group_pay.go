package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/middleware"
	"github.com/iliyamo/cinema-seat-booking/internal/service"
)

// GroupPayHandler serves the split-payment flow.  Starting a session needs a
// signed-in initiator; reading a session and paying for a seat only need the
// session ID, which the initiator shares with the group.
type GroupPayHandler struct {
	GroupPay *service.GroupPayService
	Auth     *service.AuthService
}

func NewGroupPayHandler(groupPay *service.GroupPayService, auth *service.AuthService) *GroupPayHandler {
	return &GroupPayHandler{GroupPay: groupPay, Auth: auth}
}

// ----- DTOs -----

type initiateReq struct {
	ShowtimeID string   `json:"showtime_id"`
	SeatIDs    []string `json:"seat_ids"`
	LocationID string   `json:"location_id"`
}

type payReq struct {
	PayerName string `json:"payer_name"`
}

// Initiate: POST /v1/group-pay
func (h *GroupPayHandler) Initiate(c echo.Context) error {
	var req initiateReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	v, err := h.GroupPay.Initiate(c.Request().Context(), service.InitiateRequest{
		UserID:     middleware.UserID(c),
		ShowtimeID: req.ShowtimeID,
		SeatIDs:    req.SeatIDs,
		LocationID: req.LocationID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, v)
}

// Get: GET /v1/group-pay/:id
// Clients poll this endpoint; an overdue pending session is reported as
// expired.
func (h *GroupPayHandler) Get(c echo.Context) error {
	v, err := h.GroupPay.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// Pay: POST /v1/group-pay/:id/seats/:seat/pay
// A signed-in payer is recorded by account name; payer_name is only used
// for guests.
func (h *GroupPayHandler) Pay(c echo.Context) error {
	var req payReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	ctx := c.Request().Context()
	payer := req.PayerName
	if middleware.UserID(c) != "" {
		u, err := h.Auth.CurrentUser(ctx)
		if err != nil {
			return respondError(c, err)
		}
		payer = u.Name
	}
	v, err := h.GroupPay.PayForSeat(ctx, c.Param("id"), c.Param("seat"), payer)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}
