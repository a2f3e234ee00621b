package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/givebridge/givebridge/internal/model"
	"github.com/givebridge/givebridge/internal/repository"
)

type helpRequestReq struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Urgency      string `json:"urgency"`
	Location     string `json:"location"`
	ContactPhone string `json:"contact_phone"`
}

func validateHelpRequest(r *helpRequestReq) map[string]string {
	problems := map[string]string{}
	if len(strings.TrimSpace(r.Title)) < 5 {
		problems["title"] = "title must be at least 5 characters"
	}
	if len(strings.TrimSpace(r.Description)) < 20 {
		problems["description"] = "description must be at least 20 characters"
	}
	switch strings.ToLower(strings.TrimSpace(r.Category)) {
	case "medical", "food", "shelter", "education", "other":
	default:
		problems["category"] = "category must be medical, food, shelter, education or other"
	}
	if !model.ValidUrgency(strings.ToLower(strings.TrimSpace(r.Urgency))) {
		problems["urgency"] = "urgency must be low, medium, high or critical"
	}
	if strings.TrimSpace(r.Location) == "" {
		problems["location"] = "location is required"
	}
	return problems
}

func (r *helpRequestReq) toModel() *model.HelpRequest {
	return &model.HelpRequest{
		Title:        strings.TrimSpace(r.Title),
		Description:  strings.TrimSpace(r.Description),
		Category:     strings.ToLower(strings.TrimSpace(r.Category)),
		Urgency:      strings.ToLower(strings.TrimSpace(r.Urgency)),
		Location:     strings.TrimSpace(r.Location),
		ContactPhone: strings.TrimSpace(r.ContactPhone),
	}
}

func (h *OwnerHandler) CreateHelpRequest(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if handled, err := requireCompletedProfile(c, h.Profiles, uid); handled {
		return err
	}
	var req helpRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if problems := validateHelpRequest(&req); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": problems})
	}
	hr := req.toModel()
	hr.OwnerID = uid
	if err := h.Requests.Create(c.Request().Context(), hr); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create help request"})
	}
	return c.JSON(http.StatusCreated, hr)
}

func (h *OwnerHandler) UpdateHelpRequest(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req helpRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if problems := validateHelpRequest(&req); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": problems})
	}
	hr := req.toModel()
	hr.ID = id
	if err := h.Requests.UpdateByIDAndOwner(c.Request().Context(), hr, uid); err != nil {
		return ownerErrJSON(c, err, repository.ErrHelpRequestNotFound, "help request not found")
	}
	updated, err := h.Requests.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *OwnerHandler) DeactivateHelpRequest(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Requests.SetActive(c.Request().Context(), id, uid, false); err != nil {
		return ownerErrJSON(c, err, repository.ErrHelpRequestNotFound, "help request not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *OwnerHandler) ListMyHelpRequests(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Requests.ListByOwner(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
