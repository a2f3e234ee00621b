package router

import (
	"github.com/labstack/echo/v4"

	"github.com/givebridge/givebridge/internal/handler"
	"github.com/givebridge/givebridge/internal/middleware"
)

// RegisterDonations registers the donation flow and the two donation list
// views. The donate endpoint is intentionally outside the JWT middleware:
// the handler parses the bearer itself so that a guest submission gets a
// 401 carrying the login redirect instead of the middleware's bare reject.
func RegisterDonations(e *echo.Echo, d *handler.DonationHandler, jwtSecret string) {
	e.POST("/v1/campaigns/:id/donate", d.Donate)

	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("INDIVIDUAL", "NGO", "ORGANIZATION"),
	)
	g.GET("/my/donations", d.ListMyDonations)
	g.GET("/my/campaigns/:id/donations", d.ListCampaignDonations)
}

// RegisterNotifications registers the notification feed, the bell dropdown
// payload, the SSE stream and the read receipts.
func RegisterNotifications(e *echo.Echo, n *handler.NotificationHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("INDIVIDUAL", "NGO", "ORGANIZATION"),
	)
	g.GET("/notifications", n.List)
	g.GET("/notifications/recent", n.Recent)
	g.GET("/notifications/stream", n.Stream)
	g.POST("/notifications/:id/read", n.MarkRead)
	g.POST("/notifications/read-all", n.MarkAllRead)
}

// RegisterDashboard registers the signed-in user's dashboard aggregate.
func RegisterDashboard(e *echo.Echo, d *handler.DashboardHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("INDIVIDUAL", "NGO", "ORGANIZATION"),
	)
	g.GET("/my/dashboard", d.Stats)
}
