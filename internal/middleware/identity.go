package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// contextUserID returns the authenticated user's id as a string, or "anon"
// for unauthenticated requests. JWTAuth stores the id under "user_id" as a
// uint64; the public browse routes never run JWTAuth, so anonymous is the
// common case when rate keys are built from this.
func contextUserID(c echo.Context) string {
	if v := c.Get("user_id"); v != nil {
		if id, ok := v.(uint64); ok && id > 0 {
			return strconv.FormatUint(id, 10)
		}
	}
	return "anon"
}
