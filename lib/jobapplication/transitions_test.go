package jobapplication

import (
	"testing"

	"github.com/stretchr/testify/require"

	"itou-backend/models"
)

func TestTransitions(t *testing.T) {
	t.Run(`nominal path new -> processing -> accepted`, func(t *testing.T) {
		state, err := NextState(models.JobApplicationStateNew, models.TransitionProcess)
		require.Nil(t, err)
		require.Equal(t, models.JobApplicationStateProcessing, state)

		state, err = NextState(state, models.TransitionAccept)
		require.Nil(t, err)
		require.Equal(t, models.JobApplicationStateAccepted, state)
	})

	t.Run(`accept from new is rejected`, func(t *testing.T) {
		_, err := NextState(models.JobApplicationStateNew, models.TransitionAccept)
		require.NotNil(t, err)
	})

	t.Run(`cancel only applies to accepted`, func(t *testing.T) {
		state, err := NextState(models.JobApplicationStateAccepted, models.TransitionCancel)
		require.Nil(t, err)
		require.Equal(t, models.JobApplicationStateCancelled, state)

		for _, from := range []models.JobApplicationState{
			models.JobApplicationStateNew,
			models.JobApplicationStateProcessing,
			models.JobApplicationStatePostponed,
			models.JobApplicationStateRefused,
			models.JobApplicationStateObsolete,
			models.JobApplicationStateCancelled,
		} {
			require.False(t, CanTransition(from, models.TransitionCancel), string(from))
		}
	})

	t.Run(`render_obsolete covers exactly the pending states`, func(t *testing.T) {
		for _, from := range models.PendingStates {
			require.True(t, CanTransition(from, models.TransitionRenderObsolete), string(from))
		}
		require.False(t, CanTransition(models.JobApplicationStateAccepted, models.TransitionRenderObsolete))
		require.False(t, CanTransition(models.JobApplicationStateRefused, models.TransitionRenderObsolete))
		require.False(t, CanTransition(models.JobApplicationStatePriorToHire, models.TransitionRenderObsolete))
	})

	t.Run(`reset reopens an obsolete application only`, func(t *testing.T) {
		state, err := NextState(models.JobApplicationStateObsolete, models.TransitionReset)
		require.Nil(t, err)
		require.Equal(t, models.JobApplicationStateNew, state)

		require.False(t, CanTransition(models.JobApplicationStateCancelled, models.TransitionReset))
	})

	t.Run(`an obsolete application can still be accepted directly`, func(t *testing.T) {
		state, err := NextState(models.JobApplicationStateObsolete, models.TransitionAccept)
		require.Nil(t, err)
		require.Equal(t, models.JobApplicationStateAccepted, state)
	})

	t.Run(`prior to hire loop`, func(t *testing.T) {
		state, err := NextState(models.JobApplicationStateProcessing, models.TransitionMoveToPriorToHire)
		require.Nil(t, err)
		require.Equal(t, models.JobApplicationStatePriorToHire, state)

		state, err = NextState(state, models.TransitionCancelPriorToHire)
		require.Nil(t, err)
		require.Equal(t, models.JobApplicationStatePostponed, state)
	})

	t.Run(`transfer resets the state, external transfer closes as refused`, func(t *testing.T) {
		state, err := NextState(models.JobApplicationStatePostponed, models.TransitionTransfer)
		require.Nil(t, err)
		require.Equal(t, models.JobApplicationStateNew, state)

		for _, from := range []models.JobApplicationState{
			models.JobApplicationStateNew,
			models.JobApplicationStateProcessing,
			models.JobApplicationStatePostponed,
			models.JobApplicationStateObsolete,
			models.JobApplicationStateRefused,
		} {
			state, err = NextState(from, models.TransitionExternalTransfer)
			require.Nil(t, err, string(from))
			require.Equal(t, models.JobApplicationStateRefused, state, string(from))
		}

		require.False(t, CanTransition(models.JobApplicationStateAccepted, models.TransitionExternalTransfer))
		require.False(t, CanTransition(models.JobApplicationStateCancelled, models.TransitionExternalTransfer))
		require.False(t, CanTransition(models.JobApplicationStateAccepted, models.TransitionTransfer))
	})

	t.Run(`unknown transition`, func(t *testing.T) {
		_, err := NextState(models.JobApplicationStateNew, models.JobApplicationTransition("destroy"))
		require.NotNil(t, err)
	})
}
