package models

type JobApplicationState string

const (
	JobApplicationStateNew         JobApplicationState = "new"
	JobApplicationStateProcessing  JobApplicationState = "processing"
	JobApplicationStatePostponed   JobApplicationState = "postponed"
	JobApplicationStatePriorToHire JobApplicationState = "prior_to_hire"
	JobApplicationStateAccepted    JobApplicationState = "accepted"
	JobApplicationStateRefused     JobApplicationState = "refused"
	JobApplicationStateCancelled   JobApplicationState = "cancelled"
	JobApplicationStateObsolete    JobApplicationState = "obsolete"
)

// PendingStates are the states rendered obsolete when a sibling
// application of the same job seeker gets accepted.
var PendingStates = []JobApplicationState{
	JobApplicationStateNew,
	JobApplicationStateProcessing,
	JobApplicationStatePostponed,
}

func (s JobApplicationState) IsPending() bool {
	for _, p := range PendingStates {
		if s == p {
			return true
		}
	}
	return false
}

type JobApplicationTransition string

const (
	TransitionProcess           JobApplicationTransition = "process"
	TransitionPostpone          JobApplicationTransition = "postpone"
	TransitionAccept            JobApplicationTransition = "accept"
	TransitionRefuse            JobApplicationTransition = "refuse"
	TransitionCancel            JobApplicationTransition = "cancel"
	TransitionRenderObsolete    JobApplicationTransition = "render_obsolete"
	TransitionReset             JobApplicationTransition = "reset"
	TransitionTransfer          JobApplicationTransition = "transfer"
	TransitionExternalTransfer  JobApplicationTransition = "external_transfer"
	TransitionMoveToPriorToHire JobApplicationTransition = "move_to_prior_to_hire"
	TransitionCancelPriorToHire JobApplicationTransition = "cancel_prior_to_hire"
)

type RefusalReason string

const (
	RefusalReasonDidNotCome       RefusalReason = "did_not_come"
	RefusalReasonUnavailable      RefusalReason = "unavailable"
	RefusalReasonNonEligible      RefusalReason = "non_eligible"
	RefusalReasonEligibilityDoubt RefusalReason = "eligibility_doubt"
	RefusalReasonIncompatible     RefusalReason = "incompatible"
	RefusalReasonNoPosition       RefusalReason = "no_position"
	RefusalReasonNotMobile        RefusalReason = "not_mobile"
	RefusalReasonDeactivation     RefusalReason = "deactivation"
	RefusalReasonPoorlyInformed   RefusalReason = "poorly_informed"
	RefusalReasonAutoTransfer     RefusalReason = "transfer"
	RefusalReasonOther            RefusalReason = "other"
)

type ApprovalDeliveryMode string

const (
	ApprovalDeliveryModeAutomatic ApprovalDeliveryMode = "automatic"
	ApprovalDeliveryModeManual    ApprovalDeliveryMode = "manual"
)

// ApplicationOrigin tracks where the application row comes from.
// Bulk-imported rows ("ai_stock") cannot be cancelled.
type ApplicationOrigin string

const (
	ApplicationOriginDefault  ApplicationOrigin = "default"
	ApplicationOriginAIStock  ApplicationOrigin = "ai_stock"
	ApplicationOriginPEImport ApplicationOrigin = "pe_approval"
)
