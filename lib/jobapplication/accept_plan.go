package jobapplication

import (
	"time"

	"itou-backend/models"
	dbmodels "itou-backend/models/db"
)

// acceptContext gathers everything the accept decision needs, so the
// decision itself stays free of storage concerns.
type acceptContext struct {
	app            *dbmodels.JobApplication
	company        *dbmodels.Company
	jobSeeker      *dbmodels.User
	latestApproval *dbmodels.Approval
	diagnosis      *dbmodels.EligibilityDiagnosis
	hiringStartAt  time.Time
	now            time.Time
}

// acceptPlan is the decision of planAccept: which PASS IAE the hiring will
// run on, or how its delivery is deferred.
type acceptPlan struct {
	needsApproval bool
	deliveryMode  models.ApprovalDeliveryMode

	// Reuse of an existing valid approval.
	reuseApprovalID string
	// Pull the reused approval's start date back to the hiring date.
	pullStartDateTo *time.Time

	// Approval to create when issued automatically.
	createApproval *dbmodels.Approval
}

// planAccept applies the PASS IAE issuance ladder: reuse a valid approval,
// otherwise issue a new one from a valid diagnosis, otherwise defer to
// manual delivery, otherwise abort the hiring.
func planAccept(c acceptContext) (acceptPlan, error) {
	plan := acceptPlan{}
	if !c.company.IsSubjectToEligibilityRules() || c.app.HiringWithoutApproval {
		return plan, nil
	}
	plan.needsApproval = true

	if c.latestApproval != nil && c.latestApproval.IsValid(c.now) {
		if c.hiringStartAt.After(c.latestApproval.EndAt) {
			return plan, ErrHiresAfterPass
		}
		plan.deliveryMode = models.ApprovalDeliveryModeAutomatic
		plan.reuseApprovalID = c.latestApproval.ID
		if c.hiringStartAt.Before(c.latestApproval.StartAt) && c.latestApproval.CanPostponeStartDate(c.now) {
			startAt := c.hiringStartAt
			plan.pullStartDateTo = &startAt
		}
		return plan, nil
	}

	if c.diagnosis == nil || !c.diagnosis.IsValid(c.now) {
		return plan, ErrNoValidDiagnosis
	}

	// An expired approval opens a waiting period that only an authorized
	// prescriber's diagnosis can bypass.
	if c.latestApproval != nil && c.latestApproval.IsInWaitingPeriod(c.now) &&
		c.diagnosis.AuthorKind != models.AuthorKindPrescriber {
		return plan, ErrInWaitingPeriod
	}

	if c.jobSeeker.HasVerifiableIdentity() ||
		c.jobSeeker.LackOfPoleEmploiIDReason == models.ReasonNotRegistered {
		startAt := c.hiringStartAt
		if startAt.Before(c.now) {
			startAt = c.now
		}
		diagnosisID := c.diagnosis.ID
		plan.deliveryMode = models.ApprovalDeliveryModeAutomatic
		plan.createApproval = &dbmodels.Approval{
			UserID:                 c.jobSeeker.ID,
			StartAt:                startAt,
			EndAt:                  dbmodels.DefaultApprovalEndDate(startAt),
			EligibilityDiagnosisID: &diagnosisID,
		}
		return plan, nil
	}

	if c.jobSeeker.LackOfPoleEmploiIDReason == models.ReasonForgotten {
		plan.deliveryMode = models.ApprovalDeliveryModeManual
		return plan, nil
	}

	return plan, ErrApprovalImpossible
}
