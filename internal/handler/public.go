package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/givebridge/givebridge/internal/model"
	"github.com/givebridge/givebridge/internal/repository"
)

// PublicHandler serves the unauthenticated browse surface. Responses here
// sit behind the response cache, so everything is read-only and sanitized.
type PublicHandler struct {
	Campaigns *repository.CampaignRepo
	Requests  *repository.HelpRequestRepo
	Items     *repository.DonationItemRepo
	Drives    *repository.CommunityDriveRepo
	Profiles  *repository.ProfileRepo
}

func NewPublicHandler(campaigns *repository.CampaignRepo, requests *repository.HelpRequestRepo, items *repository.DonationItemRepo, drives *repository.CommunityDriveRepo, profiles *repository.ProfileRepo) *PublicHandler {
	if campaigns == nil || requests == nil || items == nil || drives == nil || profiles == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Campaigns: campaigns, Requests: requests, Items: items, Drives: drives, Profiles: profiles}
}

// ListCampaigns handles GET /v1/campaigns: active campaigns, newest first,
// optionally narrowed by ?category.
func (h *PublicHandler) ListCampaigns(c echo.Context) error {
	page, size := pageParams(c)
	items, total, err := h.Campaigns.ListActive(c.Request().Context(), c.QueryParam("category"), size, (page-1)*size)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": total, "page": page, "page_size": size})
}

// GetCampaign handles GET /v1/campaigns/:id. Inactive campaigns stay
// visible here so a finished campaign's page keeps working, with is_active
// telling the client to disable the donate button.
func (h *PublicHandler) GetCampaign(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	campaign, err := h.Campaigns.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "campaign not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	resp := echo.Map{"campaign": campaign}
	if p, err := h.Profiles.GetByID(c.Request().Context(), campaign.OwnerID); err == nil {
		resp["owner"] = publicProfile(p)
	}
	return c.JSON(http.StatusOK, resp)
}

// SearchCampaigns handles GET /v1/search/campaigns with title, category,
// location and time filters.
func (h *PublicHandler) SearchCampaigns(c echo.Context) error {
	page, size := pageParams(c)
	q := repository.CampaignSearchQuery{
		Title:      c.QueryParam("q"),
		Category:   c.QueryParam("category"),
		Location:   c.QueryParam("location"),
		TimeFilter: c.QueryParam("time"),
		Page:       page,
		PageSize:   size,
	}
	rows, total, err := h.Campaigns.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rows, "total": total, "page": page, "page_size": size})
}

// ListHelpRequests handles GET /v1/help-requests: active requests ordered
// most urgent first.
func (h *PublicHandler) ListHelpRequests(c echo.Context) error {
	page, size := pageParams(c)
	items, total, err := h.Requests.ListActive(c.Request().Context(), c.QueryParam("category"), size, (page-1)*size)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": total, "page": page, "page_size": size})
}

// ListDonationItems handles GET /v1/donation-items: items still available.
func (h *PublicHandler) ListDonationItems(c echo.Context) error {
	page, size := pageParams(c)
	items, total, err := h.Items.ListAvailable(c.Request().Context(), c.QueryParam("category"), size, (page-1)*size)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": total, "page": page, "page_size": size})
}

// ListCommunityDrives handles GET /v1/community-drives: drives that have
// not ended yet, soonest first, optionally narrowed by ?type.
func (h *PublicHandler) ListCommunityDrives(c echo.Context) error {
	page, size := pageParams(c)
	items, total, err := h.Drives.ListUpcoming(c.Request().Context(), c.QueryParam("type"), size, (page-1)*size)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": total, "page": page, "page_size": size})
}

// GetProfile handles GET /v1/profiles/:id: the public view of an account,
// stripped of contact details.
func (h *PublicHandler) GetProfile(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	p, err := h.Profiles.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, publicProfile(p))
}

// publicProfile strips email, phone and registration details from a profile
// before it leaves the public surface.
func publicProfile(p *model.Profile) echo.Map {
	out := echo.Map{
		"user_id":      p.UserID,
		"role":         p.Role,
		"display_name": p.DisplayName,
		"bio":          p.Bio,
		"location":     p.Location,
		"website":      p.Website,
		"is_verified":  p.IsVerified,
	}
	if p.Role == model.RoleNGO || p.Role == model.RoleOrganization {
		out["organization_name"] = p.OrganizationName
		out["organization_type"] = p.OrganizationType
		out["mission"] = p.Mission
		out["founded_year"] = p.FoundedYear
		out["areas_of_focus"] = p.AreasOfFocus
		out["social_media"] = p.SocialMedia
	}
	return out
}
