package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/givebridge/givebridge/internal/model"
	"github.com/givebridge/givebridge/internal/repository"
)

// ProfileHandler serves the profile page and the completion wizard.
type ProfileHandler struct {
	Profiles *repository.ProfileRepo
}

func NewProfileHandler(p *repository.ProfileRepo) *ProfileHandler {
	if p == nil {
		panic("nil repository passed to NewProfileHandler")
	}
	return &ProfileHandler{Profiles: p}
}

// GetMine returns the signed-in user's profile, running the repair path
// first so a missing row is created rather than reported as an error.
func (h *ProfileHandler) GetMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Profiles.Ensure(ctx, uid, getEmail(c), getRole(c), "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// wizardReq carries every field any branch of the completion wizard can
// submit. Which subset is required depends on the profile's role.
type wizardReq struct {
	DisplayName      string            `json:"display_name"`
	Bio              string            `json:"bio"`
	Location         string            `json:"location"`
	Phone            string            `json:"phone"`
	Website          string            `json:"website"`
	BloodType        string            `json:"blood_type"`
	OrganizationName string            `json:"organization_name"`
	OrganizationType string            `json:"organization_type"`
	RegistrationNo   string            `json:"registration_number"`
	Mission          string            `json:"mission"`
	FoundedYear      int               `json:"founded_year"`
	StaffCount       int               `json:"staff_count"`
	VolunteerCount   int               `json:"volunteer_count"`
	AreasOfFocus     []string          `json:"areas_of_focus"`
	SocialMedia      map[string]string `json:"social_media"`
}

// validateWizard is the single role-keyed validator behind all wizard
// branches. It returns field -> message for everything wrong at once, so the
// client can render errors inline.
func validateWizard(role string, r *wizardReq) map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(r.DisplayName) == "" {
		problems["display_name"] = "display name is required"
	}
	if strings.TrimSpace(r.Location) == "" {
		problems["location"] = "location is required"
	}
	if role == model.RoleIndividual {
		return problems
	}
	// NGO and ORGANIZATION branches share the organization step.
	if strings.TrimSpace(r.OrganizationName) == "" {
		problems["organization_name"] = "organization name is required"
	}
	if strings.TrimSpace(r.OrganizationType) == "" {
		problems["organization_type"] = "organization type is required"
	}
	if r.FoundedYear < 1800 || r.FoundedYear > time.Now().UTC().Year() {
		problems["founded_year"] = "founded year is invalid"
	}
	if strings.TrimSpace(r.Mission) == "" {
		problems["mission"] = "mission statement is required"
	}
	if len(trimTags(r.AreasOfFocus)) == 0 {
		problems["areas_of_focus"] = "at least one area of focus is required"
	}
	if role == model.RoleNGO && strings.TrimSpace(r.RegistrationNo) == "" {
		problems["registration_number"] = "registration number is required"
	}
	return problems
}

// trimTags trims each tag and drops blanks, preserving order. Duplicates are
// kept: the tag list has no per-tag identity.
func trimTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Complete finishes the profile wizard: one update merging all collected
// fields and flipping profile_completed. Already-completed profiles get 409
// so the client can redirect to the dashboard instead of re-rendering the
// wizard.
func (h *ProfileHandler) Complete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req wizardReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Profiles.Ensure(ctx, uid, getEmail(c), getRole(c), req.DisplayName)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	if p.ProfileCompleted {
		return c.JSON(http.StatusConflict, echo.Map{"error": "profile already completed"})
	}

	if problems := validateWizard(p.Role, &req); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": problems})
	}

	err = h.Profiles.Complete(ctx, uid, repository.WizardUpdate{
		DisplayName:      strings.TrimSpace(req.DisplayName),
		Bio:              strings.TrimSpace(req.Bio),
		Location:         strings.TrimSpace(req.Location),
		Phone:            strings.TrimSpace(req.Phone),
		Website:          strings.TrimSpace(req.Website),
		BloodType:        strings.TrimSpace(req.BloodType),
		OrganizationName: strings.TrimSpace(req.OrganizationName),
		OrganizationType: strings.TrimSpace(req.OrganizationType),
		RegistrationNo:   strings.TrimSpace(req.RegistrationNo),
		Mission:          strings.TrimSpace(req.Mission),
		FoundedYear:      req.FoundedYear,
		StaffCount:       req.StaffCount,
		VolunteerCount:   req.VolunteerCount,
		AreasOfFocus:     trimTags(req.AreasOfFocus),
		SocialMedia:      req.SocialMedia,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "profile already completed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	updated, err := h.Profiles.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// editReq uses pointers so absent fields stay untouched.
type editReq struct {
	DisplayName *string           `json:"display_name"`
	Bio         *string           `json:"bio"`
	Location    *string           `json:"location"`
	Phone       *string           `json:"phone"`
	Website     *string           `json:"website"`
	BloodType   *string           `json:"blood_type"`
	Mission     *string           `json:"mission"`
	SocialMedia map[string]string `json:"social_media"`
}

// Update applies a partial edit from the profile-edit page. Role and
// verification status are not editable from here.
func (h *ProfileHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req editReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.DisplayName != nil && strings.TrimSpace(*req.DisplayName) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "display name cannot be blank"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err = h.Profiles.Update(ctx, uid, repository.ProfileEdit{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Location:    req.Location,
		Phone:       req.Phone,
		Website:     req.Website,
		BloodType:   req.BloodType,
		Mission:     req.Mission,
		SocialMedia: req.SocialMedia,
	})
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Profiles.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	return c.JSON(http.StatusOK, updated)
}
