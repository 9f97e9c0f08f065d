package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/service"
)

// AdminHandler serves OWNER-only operations.
type AdminHandler struct {
	Lottery *service.UpgradeLottery
}

func NewAdminHandler(lottery *service.UpgradeLottery) *AdminHandler {
	return &AdminHandler{Lottery: lottery}
}

// RunUpgradeLottery: POST /v1/admin/upgrade-lottery
func (h *AdminHandler) RunUpgradeLottery(c echo.Context) error {
	n, err := h.Lottery.Run(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"upgraded_count": n})
}
