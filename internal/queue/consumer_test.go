package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/givebridge/givebridge/internal/model"
)

func TestBuildNotificationsNamedDonor(t *testing.T) {
	out := buildNotifications(DonationCompletedEvent{
		DonationID:    77,
		CampaignID:    10,
		CampaignOwner: 1,
		CampaignTitle: "Winter shelter fund",
		AmountCents:   2500,
		DonorName:     "Jo",
	})
	require.Len(t, out, 1)
	n := out[0]
	assert.Equal(t, uint64(1), n.RecipientID)
	assert.Equal(t, model.NotifDonationReceived, n.Type)
	assert.Equal(t, `Jo donated 25.00 to "Winter shelter fund"`, n.Message)
	assert.Equal(t, uint64(77), n.Payload["donation_id"])
}

func TestBuildNotificationsAnonymousDonorHidden(t *testing.T) {
	out := buildNotifications(DonationCompletedEvent{
		CampaignOwner: 1,
		CampaignTitle: "Winter shelter fund",
		AmountCents:   1000,
		DonorName:     "Jo",
		IsAnonymous:   true,
	})
	require.Len(t, out, 1)
	assert.NotContains(t, out[0].Message, "Jo")
	assert.Contains(t, out[0].Message, "An anonymous donor")
}

func TestBuildNotificationsGoalReachedAddsSecondAlert(t *testing.T) {
	out := buildNotifications(DonationCompletedEvent{
		CampaignOwner: 1,
		CampaignTitle: "Winter shelter fund",
		AmountCents:   90000,
		GoalReached:   true,
	})
	require.Len(t, out, 2)
	assert.Equal(t, model.NotifDonationReceived, out[0].Type)
	assert.Equal(t, model.NotifCampaignGoal, out[1].Type)
	assert.Equal(t, out[0].RecipientID, out[1].RecipientID)
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
	err := handleMessage([]byte("{not json"), nil, nil)
	assert.Error(t, err)
}
