package dbmodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApprovalValidity(t *testing.T) {
	now := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)

	t.Run(`in progress`, func(t *testing.T) {
		a := Approval{StartAt: now.AddDate(-1, 0, 0), EndAt: now.AddDate(1, 0, 0)}
		require.True(t, a.IsInProgress(now))
		require.True(t, a.IsValid(now))
		require.False(t, a.IsInWaitingPeriod(now))
	})

	t.Run(`boundaries are inclusive`, func(t *testing.T) {
		a := Approval{StartAt: now, EndAt: now.AddDate(2, 0, -1)}
		require.True(t, a.IsInProgress(a.StartAt))
		require.True(t, a.IsInProgress(a.EndAt))
		require.False(t, a.IsInProgress(a.EndAt.AddDate(0, 0, 1)))
	})

	t.Run(`not started yet is still valid`, func(t *testing.T) {
		a := Approval{StartAt: now.AddDate(0, 1, 0), EndAt: now.AddDate(2, 1, 0)}
		require.False(t, a.IsInProgress(now))
		require.True(t, a.IsValid(now))
	})

	t.Run(`expired approval opens the waiting period`, func(t *testing.T) {
		a := Approval{StartAt: now.AddDate(-3, 0, 0), EndAt: now.AddDate(-1, 0, 0)}
		require.False(t, a.IsValid(now))
		require.True(t, a.IsInWaitingPeriod(now))
		require.False(t, a.IsInWaitingPeriod(a.WaitingPeriodEnd().AddDate(0, 0, 1)))
	})

	t.Run(`start date can move only before the approval starts`, func(t *testing.T) {
		future := Approval{StartAt: now.AddDate(0, 0, 5), EndAt: now.AddDate(2, 0, 5)}
		require.True(t, future.CanPostponeStartDate(now))

		started := Approval{StartAt: now.AddDate(0, 0, -5), EndAt: now.AddDate(2, 0, -5)}
		require.False(t, started.CanPostponeStartDate(now))
	})
}

func TestDefaultApprovalEndDate(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), DefaultApprovalEndDate(start))
}
