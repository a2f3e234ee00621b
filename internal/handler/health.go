package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers load-balancer probes. It reports process liveness only;
// database and Redis outages surface through their own degraded paths, not
// by failing the probe and churning the instance.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
