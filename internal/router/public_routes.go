package router

import (
	"github.com/labstack/echo/v4"

	"github.com/givebridge/givebridge/internal/handler"
)

// RegisterPublic registers unauthenticated browse endpoints. These routes
// apply no JWT or role middleware and return sanitized data only; extra
// middlewares (response cache, rate limiting) are passed in by the caller
// so tests can register the routes bare.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mws ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mws...)

	g.GET("/campaigns", p.ListCampaigns)
	g.GET("/campaigns/:id", p.GetCampaign)
	g.GET("/search/campaigns", p.SearchCampaigns)
	g.GET("/help-requests", p.ListHelpRequests)
	g.GET("/donation-items", p.ListDonationItems)
	g.GET("/community-drives", p.ListCommunityDrives)
	g.GET("/profiles/:id", p.GetProfile)
}
