package handler

import (
	"github.com/givebridge/givebridge/internal/repository"
)

// OwnerHandler bundles the repositories behind the owner-scoped content
// endpoints. Every create path checks the profile-completion gate before
// touching its table; every mutation path distinguishes "not yours" (403)
// from "not found" (404).
type OwnerHandler struct {
	Profiles  *repository.ProfileRepo
	Campaigns *repository.CampaignRepo
	Requests  *repository.HelpRequestRepo
	Items     *repository.DonationItemRepo
	Drives    *repository.CommunityDriveRepo
	Inventory *repository.InventoryRepo
}

func NewOwnerHandler(
	profiles *repository.ProfileRepo,
	campaigns *repository.CampaignRepo,
	requests *repository.HelpRequestRepo,
	items *repository.DonationItemRepo,
	drives *repository.CommunityDriveRepo,
	inventory *repository.InventoryRepo,
) *OwnerHandler {
	if profiles == nil || campaigns == nil || requests == nil || items == nil || drives == nil || inventory == nil {
		panic("nil repository passed to NewOwnerHandler")
	}
	return &OwnerHandler{
		Profiles:  profiles,
		Campaigns: campaigns,
		Requests:  requests,
		Items:     items,
		Drives:    drives,
		Inventory: inventory,
	}
}
