package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole gates a route group to the listed account roles. The role is
// the "role" claim JWTAuth copied into context, one of INDIVIDUAL, NGO or
// ORGANIZATION. A missing or unlisted role gets 403 rather than 401: the
// token was valid, the account kind just cannot use this surface (for
// example, inventory is NGO and ORGANIZATION only).
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
