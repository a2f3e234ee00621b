package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/givebridge/givebridge/internal/model"
	"github.com/givebridge/givebridge/internal/repository"
)

type donationItemReq struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	Condition      string `json:"condition"`
	Quantity       int    `json:"quantity"`
	PickupLocation string `json:"pickup_location"`
	ImageURL       string `json:"image_url"`
}

func validateDonationItem(r *donationItemReq) map[string]string {
	problems := map[string]string{}
	if len(strings.TrimSpace(r.Title)) < 3 {
		problems["title"] = "title must be at least 3 characters"
	}
	if len(strings.TrimSpace(r.Description)) < 10 {
		problems["description"] = "description must be at least 10 characters"
	}
	switch strings.ToLower(strings.TrimSpace(r.Category)) {
	case "clothing", "food", "furniture", "electronics", "books", "other":
	default:
		problems["category"] = "category must be clothing, food, furniture, electronics, books or other"
	}
	if !model.ValidCondition(strings.ToLower(strings.TrimSpace(r.Condition))) {
		problems["condition"] = "condition must be new, like_new, good or fair"
	}
	if r.Quantity < 1 {
		problems["quantity"] = "quantity must be at least 1"
	}
	if strings.TrimSpace(r.PickupLocation) == "" {
		problems["pickup_location"] = "pickup location is required"
	}
	return problems
}

func (r *donationItemReq) toModel() *model.DonationItem {
	return &model.DonationItem{
		Title:          strings.TrimSpace(r.Title),
		Description:    strings.TrimSpace(r.Description),
		Category:       strings.ToLower(strings.TrimSpace(r.Category)),
		Condition:      strings.ToLower(strings.TrimSpace(r.Condition)),
		Quantity:       r.Quantity,
		PickupLocation: strings.TrimSpace(r.PickupLocation),
		ImageURL:       strings.TrimSpace(r.ImageURL),
	}
}

func (h *OwnerHandler) CreateDonationItem(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if handled, err := requireCompletedProfile(c, h.Profiles, uid); handled {
		return err
	}
	var req donationItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if problems := validateDonationItem(&req); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": problems})
	}
	d := req.toModel()
	d.OwnerID = uid
	if err := h.Items.Create(c.Request().Context(), d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create donation item"})
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *OwnerHandler) UpdateDonationItem(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req donationItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if problems := validateDonationItem(&req); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": problems})
	}
	d := req.toModel()
	d.ID = id
	if err := h.Items.UpdateByIDAndOwner(c.Request().Context(), d, uid); err != nil {
		return ownerErrJSON(c, err, repository.ErrDonationItemNotFound, "donation item not found")
	}
	updated, err := h.Items.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// DelistDonationItem marks an item unavailable; the row survives so past
// contact threads keep their context.
func (h *OwnerHandler) DelistDonationItem(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Items.SetAvailable(c.Request().Context(), id, uid, false); err != nil {
		return ownerErrJSON(c, err, repository.ErrDonationItemNotFound, "donation item not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *OwnerHandler) ListMyDonationItems(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Items.ListByOwner(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
