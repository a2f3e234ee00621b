package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/givebridge/givebridge/internal/repository"
)

// getUserID extracts the user_id stored by the JWT middleware and converts
// it to uint64. JWT numeric claims decode as float64, so several shapes are
// accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getEmail extracts the email claim stored by the JWT middleware.
func getEmail(c echo.Context) string {
	if s, ok := c.Get("email").(string); ok {
		return s
	}
	return ""
}

// getRole extracts the role claim stored by the JWT middleware.
func getRole(c echo.Context) string {
	if s, ok := c.Get("role").(string); ok {
		return s
	}
	return ""
}

// pageParams parses ?page= and ?page_size= with sane bounds.
func pageParams(c echo.Context) (page, size int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	size, _ = strconv.Atoi(c.QueryParam("page_size"))
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return page, size
}

// requireCompletedProfile enforces the content-creation gate: the signed-in
// profile must exist and have profile_completed set. On an incomplete or
// missing profile it writes the blocking "complete your profile first"
// response and reports handled=true so the caller can stop.
func requireCompletedProfile(c echo.Context, profiles *repository.ProfileRepo, userID uint64) (handled bool, err error) {
	switch err := profiles.RequireCompleted(c.Request().Context(), userID); {
	case err == nil:
		return false, nil
	case errors.Is(err, repository.ErrProfileIncomplete):
		return true, c.JSON(http.StatusForbidden, echo.Map{
			"error": "complete your profile first",
			"code":  "profile_incomplete",
		})
	default:
		return true, c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
}

// ownerErrJSON maps the shared repository sentinels to their HTTP responses.
// notFoundMsg customizes the 404 body per entity.
func ownerErrJSON(c echo.Context, err error, notFound error, notFoundMsg string) error {
	switch {
	case errors.Is(err, notFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": notFoundMsg})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
}

// parseID parses a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
