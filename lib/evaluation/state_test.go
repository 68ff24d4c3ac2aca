package evaluationhandler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"itou-backend/models"
	dbmodels "itou-backend/models/db"
)

func TestDeriveSiaeState(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	siaeWith := func(criteria ...dbmodels.EvaluatedAdministrativeCriteria) dbmodels.EvaluatedSiae {
		return dbmodels.EvaluatedSiae{
			EvaluatedJobApplications: []dbmodels.EvaluatedJobApplication{
				{Criteria: criteria},
			},
		}
	}

	t.Run(`no selected criteria means pending`, func(t *testing.T) {
		require.Equal(t, models.EvaluatedSiaeStatePending, DeriveSiaeState(dbmodels.EvaluatedSiae{}, false))
	})

	t.Run(`proofs uploaded but not submitted means submittable`, func(t *testing.T) {
		siae := siaeWith(
			dbmodels.EvaluatedAdministrativeCriteria{UploadedAt: &now},
			dbmodels.EvaluatedAdministrativeCriteria{UploadedAt: &now},
		)
		require.Equal(t, models.EvaluatedSiaeStateSubmittable, DeriveSiaeState(siae, false))
	})

	t.Run(`missing proof keeps the structure pending`, func(t *testing.T) {
		siae := siaeWith(
			dbmodels.EvaluatedAdministrativeCriteria{UploadedAt: &now},
			dbmodels.EvaluatedAdministrativeCriteria{},
		)
		require.Equal(t, models.EvaluatedSiaeStatePending, DeriveSiaeState(siae, false))
	})

	t.Run(`submitted and awaiting review`, func(t *testing.T) {
		siae := siaeWith(
			dbmodels.EvaluatedAdministrativeCriteria{UploadedAt: &now, SubmittedAt: &now},
		)
		require.Equal(t, models.EvaluatedSiaeStateSubmitted, DeriveSiaeState(siae, false))
	})

	t.Run(`reviewed with a refusal opens the adversarial stage`, func(t *testing.T) {
		siae := siaeWith(
			dbmodels.EvaluatedAdministrativeCriteria{UploadedAt: &now, SubmittedAt: &now, ReviewState: models.ReviewStateAccepted},
			dbmodels.EvaluatedAdministrativeCriteria{UploadedAt: &now, SubmittedAt: &now, ReviewState: models.ReviewStateRefused},
		)
		siae.ReviewedAt = &now
		require.Equal(t, models.EvaluatedSiaeStateAdversarial, DeriveSiaeState(siae, false))
	})

	t.Run(`reviewed with all criteria accepted`, func(t *testing.T) {
		siae := siaeWith(
			dbmodels.EvaluatedAdministrativeCriteria{UploadedAt: &now, SubmittedAt: &now, ReviewState: models.ReviewStateAccepted},
		)
		siae.ReviewedAt = &now
		require.Equal(t, models.EvaluatedSiaeStateAccepted, DeriveSiaeState(siae, false))
	})

	t.Run(`final review refuses on any definitive refusal`, func(t *testing.T) {
		siae := siaeWith(
			dbmodels.EvaluatedAdministrativeCriteria{UploadedAt: &now, SubmittedAt: &now, ReviewState: models.ReviewStateAccepted},
			dbmodels.EvaluatedAdministrativeCriteria{UploadedAt: &now, SubmittedAt: &now, ReviewState: models.ReviewStateRefused2},
		)
		siae.ReviewedAt = &now
		siae.FinalReviewedAt = &now
		require.Equal(t, models.EvaluatedSiaeStateRefused, DeriveSiaeState(siae, false))
	})

	t.Run(`final review accepts otherwise`, func(t *testing.T) {
		siae := siaeWith(
			dbmodels.EvaluatedAdministrativeCriteria{UploadedAt: &now, SubmittedAt: &now, ReviewState: models.ReviewStateRefused},
		)
		siae.ReviewedAt = &now
		siae.FinalReviewedAt = &now
		require.Equal(t, models.EvaluatedSiaeStateAccepted, DeriveSiaeState(siae, false))
	})

	t.Run(`campaign close refuses a structure that never submitted`, func(t *testing.T) {
		siae := siaeWith(
			dbmodels.EvaluatedAdministrativeCriteria{UploadedAt: &now},
			dbmodels.EvaluatedAdministrativeCriteria{},
		)
		require.Equal(t, models.EvaluatedSiaeStateRefused, DeriveSiaeState(siae, true))
		require.Equal(t, models.EvaluatedSiaeStateRefused, DeriveSiaeState(dbmodels.EvaluatedSiae{}, true))
	})

	t.Run(`campaign close refuses an unfinished adversarial stage`, func(t *testing.T) {
		siae := siaeWith(
			dbmodels.EvaluatedAdministrativeCriteria{UploadedAt: &now, SubmittedAt: &now, ReviewState: models.ReviewStateRefused},
		)
		siae.ReviewedAt = &now
		require.Equal(t, models.EvaluatedSiaeStateRefused, DeriveSiaeState(siae, true))
	})

	t.Run(`campaign close keeps a compliant structure accepted`, func(t *testing.T) {
		siae := siaeWith(
			dbmodels.EvaluatedAdministrativeCriteria{UploadedAt: &now, SubmittedAt: &now, ReviewState: models.ReviewStateAccepted},
		)
		siae.ReviewedAt = &now
		require.Equal(t, models.EvaluatedSiaeStateAccepted, DeriveSiaeState(siae, true))

		siae.FinalReviewedAt = &now
		require.Equal(t, models.EvaluatedSiaeStateAccepted, DeriveSiaeState(siae, true))
	})
}

func TestSampleSize(t *testing.T) {
	t.Run(`twenty percent of the hirings`, func(t *testing.T) {
		require.Equal(t, 10, sampleSize(50))
	})

	t.Run(`never fewer than the floor`, func(t *testing.T) {
		require.Equal(t, models.EvaluationMinJobApplications, sampleSize(5))
	})

	t.Run(`never more than the ceiling`, func(t *testing.T) {
		require.Equal(t, models.EvaluationMaxJobApplications, sampleSize(1000))
	})

	t.Run(`never more than available`, func(t *testing.T) {
		require.Equal(t, 1, sampleSize(1))
		require.Equal(t, 0, sampleSize(0))
	})
}

func TestControlledCount(t *testing.T) {
	t.Run(`chosen percent of the eligible structures`, func(t *testing.T) {
		require.Equal(t, 30, controlledCount(100, 30))
	})

	t.Run(`at least one structure is audited`, func(t *testing.T) {
		require.Equal(t, 1, controlledCount(2, 30))
	})

	t.Run(`nothing to audit`, func(t *testing.T) {
		require.Equal(t, 0, controlledCount(0, 30))
	})
}
