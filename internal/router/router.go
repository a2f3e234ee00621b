package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/givebridge/givebridge/internal/handler"
	"github.com/givebridge/givebridge/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check, used by
// load balancers to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes. Unauthenticated
// operations live under /v1/auth; session-bound endpoints live under /v1
// behind the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// /refresh rotates the refresh token; /refresh-access only mints a new
	// access token so a tab refresh does not invalidate other sessions.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a bearer token (revokes every session) or a
	// refresh_token body (revokes that one), so it stays outside the
	// protected group.
	g.POST("/logout", a.Logout)

	auth := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("INDIVIDUAL", "NGO", "ORGANIZATION"),
	)
	auth.GET("/me", a.Me)
}

// RegisterProfile registers the signed-in user's profile endpoints. The
// profile wizard lives here; content creation elsewhere is gated on the
// wizard having been completed.
func RegisterProfile(e *echo.Echo, p *handler.ProfileHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("INDIVIDUAL", "NGO", "ORGANIZATION"),
	)
	g.GET("/my/profile", p.GetMine)
	g.POST("/my/profile/complete", p.Complete)
	g.PUT("/my/profile", p.Update)
	g.PATCH("/my/profile", p.Update)
}
