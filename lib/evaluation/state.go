package evaluationhandler

import (
	"itou-backend/models"
	dbmodels "itou-backend/models/db"
)

// DeriveSiaeState computes the audit state of a structure from its evaluated
// criteria and review timestamps. The state is never persisted. Once the
// campaign is closed, a structure that never reached a compliant outcome is
// refused: nothing can be submitted or reviewed anymore.
func DeriveSiaeState(siae dbmodels.EvaluatedSiae, campaignEnded bool) models.EvaluatedSiaeState {
	state := liveSiaeState(siae)
	if campaignEnded {
		switch state {
		case models.EvaluatedSiaeStatePending,
			models.EvaluatedSiaeStateSubmittable,
			models.EvaluatedSiaeStateSubmitted,
			models.EvaluatedSiaeStateAdversarial:
			return models.EvaluatedSiaeStateRefused
		}
	}
	return state
}

func liveSiaeState(siae dbmodels.EvaluatedSiae) models.EvaluatedSiaeState {
	criteria := []dbmodels.EvaluatedAdministrativeCriteria{}
	for _, app := range siae.EvaluatedJobApplications {
		criteria = append(criteria, app.Criteria...)
	}
	if len(criteria) == 0 {
		return models.EvaluatedSiaeStatePending
	}

	allSubmitted := true
	allUploaded := true
	for _, c := range criteria {
		if c.SubmittedAt == nil {
			allSubmitted = false
		}
		if c.UploadedAt == nil {
			allUploaded = false
		}
	}
	if !allSubmitted {
		if allUploaded {
			return models.EvaluatedSiaeStateSubmittable
		}
		return models.EvaluatedSiaeStatePending
	}

	if siae.ReviewedAt == nil {
		return models.EvaluatedSiaeStateSubmitted
	}

	if siae.FinalReviewedAt != nil {
		for _, c := range criteria {
			if c.ReviewState == models.ReviewStateRefused2 {
				return models.EvaluatedSiaeStateRefused
			}
		}
		return models.EvaluatedSiaeStateAccepted
	}

	for _, c := range criteria {
		if c.ReviewState != models.ReviewStateAccepted {
			return models.EvaluatedSiaeStateAdversarial
		}
	}
	return models.EvaluatedSiaeStateAccepted
}

// sampleSize bounds the audited share of a structure's hirings.
func sampleSize(total int) int {
	n := total * models.EvaluationSelectionPercentage / 100
	if n < models.EvaluationMinJobApplications {
		n = models.EvaluationMinJobApplications
	}
	if n > models.EvaluationMaxJobApplications {
		n = models.EvaluationMaxJobApplications
	}
	if n > total {
		n = total
	}
	return n
}

// controlledCount applies the campaign's chosen percent to the eligible
// structures, always auditing at least one.
func controlledCount(total, chosenPercent int) int {
	if total == 0 {
		return 0
	}
	n := total * chosenPercent / 100
	if n < 1 {
		n = 1
	}
	return n
}
