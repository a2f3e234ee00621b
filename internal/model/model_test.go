package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRole(t *testing.T) {
	for _, r := range []string{RoleIndividual, RoleNGO, RoleOrganization} {
		assert.True(t, ValidRole(r), r)
	}
	assert.False(t, ValidRole("individual"), "roles are case sensitive")
	assert.False(t, ValidRole("ADMIN"))
	assert.False(t, ValidRole(""))
}

func TestTerminalStatus(t *testing.T) {
	assert.True(t, TerminalStatus(DonationCompleted))
	assert.True(t, TerminalStatus(DonationFailed))
	assert.True(t, TerminalStatus(DonationRefunded))
	assert.False(t, TerminalStatus(DonationPending))
	assert.False(t, TerminalStatus(DonationProcessing))
}

func TestDonationEnums(t *testing.T) {
	assert.True(t, ValidPaymentMethod("bank_transfer"))
	assert.False(t, ValidPaymentMethod("cash"))

	assert.True(t, ValidFrequency("quarterly"))
	assert.False(t, ValidFrequency("daily"))
}

func TestContentEnums(t *testing.T) {
	assert.True(t, ValidUrgency("critical"))
	assert.False(t, ValidUrgency("urgent"))

	assert.True(t, ValidCondition("like_new"))
	assert.False(t, ValidCondition("broken"))

	assert.True(t, ValidDriveType("blood_drive"))
	assert.False(t, ValidDriveType("parade"))

	assert.True(t, ValidCampaignType(CampaignVolunteer))
	assert.False(t, ValidCampaignType("barter"))
}
