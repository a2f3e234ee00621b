package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/givebridge/givebridge/internal/model"
	"github.com/givebridge/givebridge/internal/repository"
)

// campaignReq is shared by create and edit. target_amount_cents only applies
// to monetary campaigns; the disaster-relief sub-schema only applies when
// is_disaster_relief is set.
type campaignReq struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Category          string   `json:"category"`
	CampaignType      string   `json:"campaign_type"`
	TargetAmountCents uint64   `json:"target_amount_cents"`
	IsDisasterRelief  bool     `json:"is_disaster_relief"`
	DisasterType      string   `json:"disaster_type"`
	AffectedArea      string   `json:"affected_area"`
	ImmediateNeeds    []string `json:"immediate_needs"`
	Location          string   `json:"location"`
	ImageURL          string   `json:"image_url"`
}

// validateCampaign mirrors the form's schema validation: minimum lengths,
// enum membership and the two conditional sub-schemas.
func validateCampaign(r *campaignReq) map[string]string {
	problems := map[string]string{}
	if len(strings.TrimSpace(r.Title)) < 5 {
		problems["title"] = "title must be at least 5 characters"
	}
	if len(strings.TrimSpace(r.Description)) < 20 {
		problems["description"] = "description must be at least 20 characters"
	}
	if strings.TrimSpace(r.Category) == "" {
		problems["category"] = "category is required"
	}
	if !model.ValidCampaignType(r.CampaignType) {
		problems["campaign_type"] = "campaign type must be monetary, goods or volunteer"
	}
	if r.CampaignType == model.CampaignMonetary && r.TargetAmountCents == 0 {
		problems["target_amount_cents"] = "monetary campaigns need a target amount"
	}
	if r.CampaignType != model.CampaignMonetary && r.TargetAmountCents != 0 {
		problems["target_amount_cents"] = "only monetary campaigns carry a target amount"
	}
	if r.IsDisasterRelief {
		if strings.TrimSpace(r.DisasterType) == "" {
			problems["disaster_type"] = "disaster type is required"
		}
		if strings.TrimSpace(r.AffectedArea) == "" {
			problems["affected_area"] = "affected area is required"
		}
		if len(trimTags(r.ImmediateNeeds)) == 0 {
			problems["immediate_needs"] = "list at least one immediate need"
		}
	}
	return problems
}

func (r *campaignReq) toModel() *model.Campaign {
	c := &model.Campaign{
		Title:             strings.TrimSpace(r.Title),
		Description:       strings.TrimSpace(r.Description),
		Category:          strings.ToLower(strings.TrimSpace(r.Category)),
		CampaignType:      r.CampaignType,
		TargetAmountCents: r.TargetAmountCents,
		IsDisasterRelief:  r.IsDisasterRelief,
		Location:          strings.TrimSpace(r.Location),
		ImageURL:          strings.TrimSpace(r.ImageURL),
	}
	if r.IsDisasterRelief {
		c.DisasterType = strings.TrimSpace(r.DisasterType)
		c.AffectedArea = strings.TrimSpace(r.AffectedArea)
		c.ImmediateNeeds = trimTags(r.ImmediateNeeds)
	}
	return c
}

// CreateCampaign handles POST /v1/campaigns.
func (h *OwnerHandler) CreateCampaign(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if handled, err := requireCompletedProfile(c, h.Profiles, uid); handled {
		return err
	}
	var req campaignReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if problems := validateCampaign(&req); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": problems})
	}
	cm := req.toModel()
	cm.OwnerID = uid
	if err := h.Campaigns.Create(c.Request().Context(), cm); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create campaign"})
	}
	return c.JSON(http.StatusCreated, cm)
}

// UpdateCampaign handles PUT/PATCH /v1/campaigns/:id.
func (h *OwnerHandler) UpdateCampaign(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req campaignReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if problems := validateCampaign(&req); len(problems) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": problems})
	}
	cm := req.toModel()
	cm.ID = id
	if err := h.Campaigns.UpdateByIDAndOwner(c.Request().Context(), cm, uid); err != nil {
		return ownerErrJSON(c, err, repository.ErrCampaignNotFound, "campaign not found")
	}
	updated, err := h.Campaigns.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeactivateCampaign handles DELETE /v1/campaigns/:id: campaigns are
// soft-deactivated, never removed, so donation history stays intact.
func (h *OwnerHandler) DeactivateCampaign(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Campaigns.SetActive(c.Request().Context(), id, uid, false); err != nil {
		return ownerErrJSON(c, err, repository.ErrCampaignNotFound, "campaign not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMyCampaigns handles GET /v1/my/campaigns.
func (h *OwnerHandler) ListMyCampaigns(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Campaigns.ListByOwner(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
