package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/givebridge/givebridge/internal/model"
	"github.com/givebridge/givebridge/internal/repository"
)

type inventoryReq struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
	Notes       string `json:"notes"`
	IsAvailable *bool  `json:"is_available"`
}

func validateInventory(r *inventoryReq) map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(r.Name) == "" {
		problems["name"] = "name is required"
	}
	if strings.TrimSpace(r.Category) == "" {
		problems["category"] = "category is required"
	}
	if r.Quantity < 0 {
		problems["quantity"] = "quantity cannot be negative"
	}
	if strings.TrimSpace(r.Unit) == "" {
		problems["unit"] = "unit is required"
	}
	return problems
}

func (h *OwnerHandler) CreateInventoryItem(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if handled, err := requireCompletedProfile(c, h.Profiles, uid); handled {
		return err
	}
	var req inventoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if problems := validateInventory(&req); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": problems})
	}
	it := &model.InventoryItem{
		OwnerID:  uid,
		Name:     strings.TrimSpace(req.Name),
		Category: strings.ToLower(strings.TrimSpace(req.Category)),
		Quantity: req.Quantity,
		Unit:     strings.TrimSpace(req.Unit),
		Notes:    strings.TrimSpace(req.Notes),
	}
	if err := h.Inventory.Create(c.Request().Context(), it); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create inventory item"})
	}
	return c.JSON(http.StatusCreated, it)
}

func (h *OwnerHandler) UpdateInventoryItem(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req inventoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if problems := validateInventory(&req); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": problems})
	}
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	it := &model.InventoryItem{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.ToLower(strings.TrimSpace(req.Category)),
		Quantity:    req.Quantity,
		Unit:        strings.TrimSpace(req.Unit),
		Notes:       strings.TrimSpace(req.Notes),
		IsAvailable: available,
	}
	if err := h.Inventory.UpdateByIDAndOwner(c.Request().Context(), it, uid); err != nil {
		return ownerErrJSON(c, err, repository.ErrInventoryItemNotFound, "inventory item not found")
	}
	updated, err := h.Inventory.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteInventoryItem removes the row outright; inventory is private
// bookkeeping, not a public post.
func (h *OwnerHandler) DeleteInventoryItem(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Inventory.DeleteByIDAndOwner(c.Request().Context(), id, uid); err != nil {
		return ownerErrJSON(c, err, repository.ErrInventoryItemNotFound, "inventory item not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *OwnerHandler) ListMyInventory(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Inventory.ListByOwner(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
