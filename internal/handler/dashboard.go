package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/givebridge/givebridge/internal/repository"
)

// DashboardHandler aggregates the signed-in user's numbers for the
// dashboard landing view.
type DashboardHandler struct {
	Dashboard *repository.DashboardRepo
}

func NewDashboardHandler(dashboard *repository.DashboardRepo) *DashboardHandler {
	if dashboard == nil {
		panic("nil repository passed to NewDashboardHandler")
	}
	return &DashboardHandler{Dashboard: dashboard}
}

// Stats handles GET /v1/my/dashboard.
func (h *DashboardHandler) Stats(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	stats, err := h.Dashboard.Stats(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, stats)
}
