package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toystore-api/internal/model"
)

// The projection must be total: any status string yields a well-formed
// timeline.
func TestBuildTrackingTotality(t *testing.T) {
	statuses := []string{
		model.OrderStatusPending,
		model.OrderStatusProcessing,
		model.OrderStatusAccepted,
		model.OrderStatusShipped,
		model.OrderStatusDelivered,
		"",
		"garbage",
		"PENDING",
	}

	for _, status := range statuses {
		view := buildTracking("ORD123", status)
		require.NotNil(t, view, "status %q", status)
		assert.Len(t, view.Milestones, 5, "status %q", status)
		assert.False(t, view.Cancelled)
		// "placed" is always completed
		assert.True(t, view.Milestones[0].Completed, "status %q", status)
	}
}

func TestBuildTrackingUnknownStatusRanksAsPending(t *testing.T) {
	unknown := buildTracking("ORD123", "garbage")
	pending := buildTracking("ORD123", model.OrderStatusPending)

	assert.Equal(t, pending.Milestones, unknown.Milestones)
}

func TestBuildTrackingRanks(t *testing.T) {
	view := buildTracking("ORD123", model.OrderStatusShipped)

	completed := map[string]bool{}
	for _, m := range view.Milestones {
		completed[m.Key] = m.Completed
	}

	assert.True(t, completed["placed"])
	assert.True(t, completed["processing"])
	assert.True(t, completed["accepted"])
	assert.True(t, completed["shipped"])
	assert.False(t, completed["delivered"])
}

func TestBuildTrackingDelivered(t *testing.T) {
	view := buildTracking("ORD123", model.OrderStatusDelivered)
	for _, m := range view.Milestones {
		assert.True(t, m.Completed, "milestone %s", m.Key)
	}
}

func TestBuildTrackingCancelledShortCircuits(t *testing.T) {
	view := buildTracking("ORD123", model.OrderStatusCancelled)

	assert.True(t, view.Cancelled)
	require.Len(t, view.Milestones, 1)
	assert.Equal(t, "cancelled", view.Milestones[0].Key)
	assert.True(t, view.Milestones[0].Completed)
}
