package models

// EvaluatedSiaeState is never stored: it is derived from the timestamps and
// review states of the underlying evaluated administrative criteria.
type EvaluatedSiaeState string

const (
	EvaluatedSiaeStatePending     EvaluatedSiaeState = "PENDING"
	EvaluatedSiaeStateSubmittable EvaluatedSiaeState = "SUBMITTABLE"
	EvaluatedSiaeStateSubmitted   EvaluatedSiaeState = "SUBMITTED"
	EvaluatedSiaeStateAdversarial EvaluatedSiaeState = "ADVERSARIAL_STAGE"
	EvaluatedSiaeStateAccepted    EvaluatedSiaeState = "ACCEPTED"
	EvaluatedSiaeStateRefused     EvaluatedSiaeState = "REFUSED"
)

type EvaluatedCriteriaReviewState string

const (
	ReviewStatePending  EvaluatedCriteriaReviewState = "PENDING"
	ReviewStateAccepted EvaluatedCriteriaReviewState = "ACCEPTED"
	ReviewStateRefused  EvaluatedCriteriaReviewState = "REFUSED"
	// Refusal confirmed during the adversarial stage.
	ReviewStateRefused2 EvaluatedCriteriaReviewState = "REFUSED_2"
)

// Share of eligible structures controlled by a campaign, chosen by the
// institution within these bounds.
const (
	EvaluationChosenPercentMin     = 20
	EvaluationChosenPercentDefault = 30
	EvaluationChosenPercentMax     = 40
)

// Bounds of the per-structure sample of accepted job applications.
const (
	EvaluationSelectionPercentage = 20
	EvaluationMinJobApplications  = 2
	EvaluationMaxJobApplications  = 20
)

type SanctionKind string

const (
	SanctionTrainingSession     SanctionKind = "TRAINING_SESSION"
	SanctionTemporarySuspension SanctionKind = "TEMPORARY_SUSPENSION"
	SanctionPermanentSuspension SanctionKind = "PERMANENT_SUSPENSION"
	SanctionSubsidyCutPercent   SanctionKind = "SUBSIDY_CUT_PERCENT"
	SanctionDeactivation        SanctionKind = "DEACTIVATION"
	SanctionNoSanction          SanctionKind = "NO_SANCTIONS"
)
