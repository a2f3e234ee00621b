package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/givebridge/givebridge/internal/handler"
	"github.com/givebridge/givebridge/internal/middleware"
)

// RegisterContent registers the owner-scoped content endpoints under /v1.
// Every account role may publish campaigns, help requests, donation items
// and community drives; inventory is restricted to NGO and ORGANIZATION
// accounts. All mutations are further gated inside the handlers on a
// completed profile.
func RegisterContent(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("INDIVIDUAL", "NGO", "ORGANIZATION"),
	)

	// ---- Campaigns ----
	g.POST("/campaigns", o.CreateCampaign)
	g.PUT("/campaigns/:id", o.UpdateCampaign)
	g.PATCH("/campaigns/:id", o.UpdateCampaign)
	// Deactivation is a soft close: the campaign row and its donations stay.
	// DELETE is an alias for clients that treat closing as deletion.
	g.POST("/campaigns/:id/deactivate", o.DeactivateCampaign)
	g.DELETE("/campaigns/:id", o.DeactivateCampaign)
	g.GET("/my/campaigns", o.ListMyCampaigns)

	// ---- Help requests ----
	g.POST("/help-requests", o.CreateHelpRequest)
	g.PUT("/help-requests/:id", o.UpdateHelpRequest)
	g.PATCH("/help-requests/:id", o.UpdateHelpRequest)
	g.POST("/help-requests/:id/deactivate", o.DeactivateHelpRequest)
	g.DELETE("/help-requests/:id", o.DeactivateHelpRequest)
	g.GET("/my/help-requests", o.ListMyHelpRequests)

	// ---- Donation items ----
	g.POST("/donation-items", o.CreateDonationItem)
	g.PUT("/donation-items/:id", o.UpdateDonationItem)
	g.PATCH("/donation-items/:id", o.UpdateDonationItem)
	g.POST("/donation-items/:id/delist", o.DelistDonationItem)
	g.DELETE("/donation-items/:id", o.DelistDonationItem)
	g.GET("/my/donation-items", o.ListMyDonationItems)

	// ---- Community drives ----
	g.POST("/community-drives", o.CreateDrive)
	g.PUT("/community-drives/:id", o.UpdateDrive)
	g.PATCH("/community-drives/:id", o.UpdateDrive)
	g.POST("/community-drives/:id/deactivate", o.DeactivateDrive)
	g.DELETE("/community-drives/:id", o.DeactivateDrive)
	g.GET("/my/community-drives", o.ListMyDrives)

	// ---- Inventory (NGO / ORGANIZATION only) ----
	inv := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("NGO", "ORGANIZATION"),
	)
	inv.POST("/inventory", o.CreateInventoryItem)
	inv.PUT("/inventory/:id", o.UpdateInventoryItem)
	inv.PATCH("/inventory/:id", o.UpdateInventoryItem)
	inv.DELETE("/inventory/:id", o.DeleteInventoryItem)
	inv.GET("/my/inventory", o.ListMyInventory)
}
