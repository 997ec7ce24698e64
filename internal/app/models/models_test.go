package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplaintStatusRankAndTerminal(t *testing.T) {
	assert.Less(t, ComplaintPending.Rank(), ComplaintInProgress.Rank())
	assert.Less(t, ComplaintInProgress.Rank(), ComplaintResolved.Rank())
	assert.Less(t, ComplaintResolved.Rank(), ComplaintClosed.Rank())

	assert.True(t, ComplaintResolved.IsTerminal())
	assert.True(t, ComplaintClosed.IsTerminal())
	assert.False(t, ComplaintInProgress.IsTerminal())

	assert.False(t, ComplaintStatus("Escalated").IsValid())
	assert.True(t, ComplaintStatus("In Progress").IsValid())
}

func TestSwapStatus(t *testing.T) {
	assert.Less(t, SwapPending.Rank(), SwapApproved.Rank())
	assert.Less(t, SwapApproved.Rank(), SwapRejected.Rank())
	assert.False(t, SwapStatus("pending").IsValid())
}

func TestPriority(t *testing.T) {
	assert.Equal(t, PriorityMedium, DefaultPriority)
	assert.True(t, PriorityUrgent.IsValid())
	assert.False(t, Priority("Critical").IsValid())
}

func TestRoomIsFull(t *testing.T) {
	r := &Room{Capacity: 2, CurrentOccupancy: 1}
	assert.False(t, r.IsFull())
	r.CurrentOccupancy = 2
	assert.True(t, r.IsFull())
}
