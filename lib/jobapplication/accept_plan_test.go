package jobapplication

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"itou-backend/models"
	dbmodels "itou-backend/models/db"
)

func TestPlanAccept(t *testing.T) {
	now := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)
	hiringStart := now.AddDate(0, 0, 10)

	baseContext := func() acceptContext {
		return acceptContext{
			app:           &dbmodels.JobApplication{},
			company:       &dbmodels.Company{Kind: models.CompanyKindEI},
			jobSeeker:     &dbmodels.User{BaseModel: dbmodels.BaseModel{ID: "user-1"}, NIR: "269054958815780"},
			hiringStartAt: hiringStart,
			now:           now,
		}
	}
	validDiagnosis := func(author models.AuthorKind) *dbmodels.EligibilityDiagnosis {
		return &dbmodels.EligibilityDiagnosis{
			BaseModel:  dbmodels.BaseModel{ID: "diag-1"},
			AuthorKind: author,
			ExpiresAt:  now.AddDate(0, 3, 0),
		}
	}

	t.Run(`structure outside IAE needs no approval`, func(t *testing.T) {
		c := baseContext()
		c.company.Kind = models.CompanyKindGEIQ
		plan, err := planAccept(c)
		require.Nil(t, err)
		require.False(t, plan.needsApproval)
	})

	t.Run(`explicit hiring without approval`, func(t *testing.T) {
		c := baseContext()
		c.app.HiringWithoutApproval = true
		plan, err := planAccept(c)
		require.Nil(t, err)
		require.False(t, plan.needsApproval)
	})

	t.Run(`valid approval is reused`, func(t *testing.T) {
		c := baseContext()
		c.latestApproval = &dbmodels.Approval{
			BaseModel: dbmodels.BaseModel{ID: "pass-1"},
			StartAt:   now.AddDate(-1, 0, 0),
			EndAt:     now.AddDate(1, 0, 0),
		}
		plan, err := planAccept(c)
		require.Nil(t, err)
		require.True(t, plan.needsApproval)
		require.Equal(t, models.ApprovalDeliveryModeAutomatic, plan.deliveryMode)
		require.Equal(t, "pass-1", plan.reuseApprovalID)
		require.Nil(t, plan.pullStartDateTo)
		require.Nil(t, plan.createApproval)
	})

	t.Run(`hiring after the pass expiry aborts`, func(t *testing.T) {
		c := baseContext()
		c.latestApproval = &dbmodels.Approval{
			StartAt: now.AddDate(-2, 0, 0),
			EndAt:   now.AddDate(0, 0, 5),
		}
		c.hiringStartAt = now.AddDate(0, 1, 0)
		_, err := planAccept(c)
		require.Equal(t, ErrHiresAfterPass, err)
	})

	t.Run(`future approval start is pulled back to the hiring date`, func(t *testing.T) {
		c := baseContext()
		c.latestApproval = &dbmodels.Approval{
			BaseModel: dbmodels.BaseModel{ID: "pass-2"},
			StartAt:   hiringStart.AddDate(0, 1, 0),
			EndAt:     hiringStart.AddDate(2, 1, -1),
		}
		plan, err := planAccept(c)
		require.Nil(t, err)
		require.Equal(t, "pass-2", plan.reuseApprovalID)
		require.NotNil(t, plan.pullStartDateTo)
		require.Equal(t, hiringStart, *plan.pullStartDateTo)
	})

	t.Run(`no valid diagnosis blocks issuance`, func(t *testing.T) {
		c := baseContext()
		_, err := planAccept(c)
		require.Equal(t, ErrNoValidDiagnosis, err)

		c.diagnosis = validDiagnosis(models.AuthorKindEmployer)
		c.diagnosis.ExpiresAt = now.AddDate(0, -1, 0)
		_, err = planAccept(c)
		require.Equal(t, ErrNoValidDiagnosis, err)
	})

	t.Run(`waiting period after an expired approval`, func(t *testing.T) {
		c := baseContext()
		c.latestApproval = &dbmodels.Approval{
			StartAt: now.AddDate(-3, 0, 0),
			EndAt:   now.AddDate(-1, 0, 0),
		}
		c.diagnosis = validDiagnosis(models.AuthorKindEmployer)
		_, err := planAccept(c)
		require.Equal(t, ErrInWaitingPeriod, err)

		// only an authorized prescriber diagnosis lifts the waiting period
		c.diagnosis = validDiagnosis(models.AuthorKindPrescriber)
		plan, err := planAccept(c)
		require.Nil(t, err)
		require.NotNil(t, plan.createApproval)
	})

	t.Run(`new approval is issued from a valid diagnosis`, func(t *testing.T) {
		c := baseContext()
		c.diagnosis = validDiagnosis(models.AuthorKindPrescriber)
		plan, err := planAccept(c)
		require.Nil(t, err)
		require.Equal(t, models.ApprovalDeliveryModeAutomatic, plan.deliveryMode)
		require.NotNil(t, plan.createApproval)
		require.Equal(t, "user-1", plan.createApproval.UserID)
		require.Equal(t, hiringStart, plan.createApproval.StartAt)
		require.Equal(t, hiringStart.AddDate(2, 0, -1), plan.createApproval.EndAt)
		require.Equal(t, "diag-1", *plan.createApproval.EligibilityDiagnosisID)
	})

	t.Run(`past hiring date starts the approval today`, func(t *testing.T) {
		c := baseContext()
		c.diagnosis = validDiagnosis(models.AuthorKindPrescriber)
		c.hiringStartAt = now.AddDate(0, -1, 0)
		plan, err := planAccept(c)
		require.Nil(t, err)
		require.Equal(t, now, plan.createApproval.StartAt)
	})

	t.Run(`unregistered job seeker still gets an approval`, func(t *testing.T) {
		c := baseContext()
		c.jobSeeker.NIR = ""
		c.jobSeeker.LackOfPoleEmploiIDReason = models.ReasonNotRegistered
		c.diagnosis = validDiagnosis(models.AuthorKindPrescriber)
		plan, err := planAccept(c)
		require.Nil(t, err)
		require.NotNil(t, plan.createApproval)
	})

	t.Run(`forgotten identifier defers to manual delivery`, func(t *testing.T) {
		c := baseContext()
		c.jobSeeker.NIR = ""
		c.jobSeeker.LackOfPoleEmploiIDReason = models.ReasonForgotten
		c.diagnosis = validDiagnosis(models.AuthorKindPrescriber)
		plan, err := planAccept(c)
		require.Nil(t, err)
		require.True(t, plan.needsApproval)
		require.Equal(t, models.ApprovalDeliveryModeManual, plan.deliveryMode)
		require.Nil(t, plan.createApproval)
	})

	t.Run(`no identity at all aborts the hiring`, func(t *testing.T) {
		c := baseContext()
		c.jobSeeker.NIR = ""
		c.diagnosis = validDiagnosis(models.AuthorKindPrescriber)
		_, err := planAccept(c)
		require.Equal(t, ErrApprovalImpossible, err)
	})
}
