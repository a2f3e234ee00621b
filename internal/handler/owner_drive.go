package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/givebridge/givebridge/internal/model"
	"github.com/givebridge/givebridge/internal/repository"
)

type driveReq struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DriveType       string    `json:"drive_type"`
	Location        string    `json:"location"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	ParticipantGoal int       `json:"participant_goal"`
}

func validateDrive(r *driveReq) map[string]string {
	problems := map[string]string{}
	if len(strings.TrimSpace(r.Title)) < 5 {
		problems["title"] = "title must be at least 5 characters"
	}
	if len(strings.TrimSpace(r.Description)) < 20 {
		problems["description"] = "description must be at least 20 characters"
	}
	if !model.ValidDriveType(strings.ToLower(strings.TrimSpace(r.DriveType))) {
		problems["drive_type"] = "drive type must be food_drive, blood_drive, cleanup, fundraiser or awareness"
	}
	if strings.TrimSpace(r.Location) == "" {
		problems["location"] = "location is required"
	}
	if r.StartsAt.IsZero() || r.EndsAt.IsZero() {
		problems["starts_at"] = "start and end times are required"
	} else if !r.EndsAt.After(r.StartsAt) {
		problems["ends_at"] = "end time must be after start time"
	}
	if r.ParticipantGoal < 0 {
		problems["participant_goal"] = "participant goal cannot be negative"
	}
	return problems
}

func (r *driveReq) toModel() *model.CommunityDrive {
	return &model.CommunityDrive{
		Title:           strings.TrimSpace(r.Title),
		Description:     strings.TrimSpace(r.Description),
		DriveType:       strings.ToLower(strings.TrimSpace(r.DriveType)),
		Location:        strings.TrimSpace(r.Location),
		StartsAt:        r.StartsAt,
		EndsAt:          r.EndsAt,
		ParticipantGoal: r.ParticipantGoal,
	}
}

func (h *OwnerHandler) CreateDrive(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if handled, err := requireCompletedProfile(c, h.Profiles, uid); handled {
		return err
	}
	var req driveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if problems := validateDrive(&req); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": problems})
	}
	d := req.toModel()
	d.OwnerID = uid
	if err := h.Drives.Create(c.Request().Context(), d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create community drive"})
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *OwnerHandler) UpdateDrive(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req driveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if problems := validateDrive(&req); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": problems})
	}
	d := req.toModel()
	d.ID = id
	if err := h.Drives.UpdateByIDAndOwner(c.Request().Context(), d, uid); err != nil {
		return ownerErrJSON(c, err, repository.ErrDriveNotFound, "community drive not found")
	}
	updated, err := h.Drives.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *OwnerHandler) DeactivateDrive(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Drives.SetActive(c.Request().Context(), id, uid, false); err != nil {
		return ownerErrJSON(c, err, repository.ErrDriveNotFound, "community drive not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *OwnerHandler) ListMyDrives(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Drives.ListByOwner(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
