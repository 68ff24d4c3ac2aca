package jobapplication

import (
	"github.com/pkg/errors"

	"itou-backend/models"
)

// transitionRule lists the source states a transition accepts and the state
// it lands in. The table is the single source of truth of the workflow.
type transitionRule struct {
	from []models.JobApplicationState
	to   models.JobApplicationState
}

var transitionTable = map[models.JobApplicationTransition]transitionRule{
	models.TransitionProcess: {
		from: []models.JobApplicationState{models.JobApplicationStateNew},
		to:   models.JobApplicationStateProcessing,
	},
	models.TransitionPostpone: {
		from: []models.JobApplicationState{models.JobApplicationStateProcessing},
		to:   models.JobApplicationStatePostponed,
	},
	models.TransitionMoveToPriorToHire: {
		from: []models.JobApplicationState{
			models.JobApplicationStateProcessing,
			models.JobApplicationStatePostponed,
		},
		to: models.JobApplicationStatePriorToHire,
	},
	models.TransitionCancelPriorToHire: {
		from: []models.JobApplicationState{models.JobApplicationStatePriorToHire},
		to:   models.JobApplicationStatePostponed,
	},
	models.TransitionAccept: {
		from: []models.JobApplicationState{
			models.JobApplicationStateProcessing,
			models.JobApplicationStatePostponed,
			models.JobApplicationStatePriorToHire,
			models.JobApplicationStateObsolete,
		},
		to: models.JobApplicationStateAccepted,
	},
	models.TransitionRefuse: {
		from: []models.JobApplicationState{
			models.JobApplicationStateNew,
			models.JobApplicationStateProcessing,
			models.JobApplicationStatePostponed,
			models.JobApplicationStatePriorToHire,
		},
		to: models.JobApplicationStateRefused,
	},
	models.TransitionCancel: {
		from: []models.JobApplicationState{models.JobApplicationStateAccepted},
		to:   models.JobApplicationStateCancelled,
	},
	models.TransitionRenderObsolete: {
		from: models.PendingStates,
		to:   models.JobApplicationStateObsolete,
	},
	models.TransitionReset: {
		from: []models.JobApplicationState{models.JobApplicationStateObsolete},
		to:   models.JobApplicationStateNew,
	},
	models.TransitionTransfer: {
		from: []models.JobApplicationState{
			models.JobApplicationStateNew,
			models.JobApplicationStateProcessing,
			models.JobApplicationStatePostponed,
			models.JobApplicationStateObsolete,
		},
		to: models.JobApplicationStateNew,
	},
	// The application leaves the platform: whatever was pending here is
	// closed as refused.
	models.TransitionExternalTransfer: {
		from: []models.JobApplicationState{
			models.JobApplicationStateNew,
			models.JobApplicationStateProcessing,
			models.JobApplicationStatePostponed,
			models.JobApplicationStateObsolete,
			models.JobApplicationStateRefused,
		},
		to: models.JobApplicationStateRefused,
	},
}

// NextState resolves the target state of a transition from the given state.
func NextState(from models.JobApplicationState, transition models.JobApplicationTransition) (models.JobApplicationState, error) {
	rule, ok := transitionTable[transition]
	if !ok {
		return "", errors.Errorf("transition inconnue (%s)", transition)
	}
	for _, s := range rule.from {
		if s == from {
			return rule.to, nil
		}
	}
	return "", errors.Errorf("la transition «%s» est impossible depuis l'état «%s»", transition, from)
}

func CanTransition(from models.JobApplicationState, transition models.JobApplicationTransition) bool {
	_, err := NextState(from, transition)
	return err == nil
}
