package dbmodels

import (
	"time"
)

// ApprovalNumberPrefix marks PASS IAE numbers issued by the platform
// itself (as opposed to agency-imported ones).
const ApprovalNumberPrefix = "99999"

const (
	// Default validity of a PASS IAE.
	DefaultApprovalYears = 2
	// Waiting period after expiry during which a new PASS cannot be
	// obtained without an authorized prescriber.
	ApprovalWaitingPeriodYears = 2
)

// Approval is the PASS IAE credential: a time-bounded work-integration
// authorization owned by one job seeker.
type Approval struct {
	BaseModel
	Number string `gorm:"type:varchar(12);uniqueIndex"`

	UserID string `gorm:"type:varchar(36);index"`
	User   *User  `gorm:"foreignKey:UserID"`

	StartAt time.Time `gorm:"type:date;index"`
	EndAt   time.Time `gorm:"type:date;index;check:chk_approval_dates,end_at >= start_at"`

	// Diagnosis the approval was issued from, when issued automatically.
	EligibilityDiagnosisID *string               `gorm:"type:varchar(36)"`
	EligibilityDiagnosis   *EligibilityDiagnosis `gorm:"foreignKey:EligibilityDiagnosisID"`

	Suspensions   []Suspension   `gorm:"foreignKey:ApprovalID"`
	Prolongations []Prolongation `gorm:"foreignKey:ApprovalID"`
}

// DefaultApprovalEndDate is start + 2 years - 1 day.
func DefaultApprovalEndDate(startAt time.Time) time.Time {
	return startAt.AddDate(DefaultApprovalYears, 0, -1)
}

// IsValid: an approval is valid while in progress and before it starts,
// never after its end date.
func (a Approval) IsValid(now time.Time) bool {
	return a.IsInProgress(now) || a.StartAt.After(now)
}

func (a Approval) IsInProgress(now time.Time) bool {
	return !now.Before(a.StartAt) && !now.After(a.EndAt)
}

func (a Approval) WaitingPeriodEnd() time.Time {
	return a.EndAt.AddDate(ApprovalWaitingPeriodYears, 0, 0)
}

func (a Approval) IsInWaitingPeriod(now time.Time) bool {
	return now.After(a.EndAt) && !now.After(a.WaitingPeriodEnd())
}

func (a Approval) Duration() time.Duration {
	return a.EndAt.Sub(a.StartAt)
}

// CanPostponeStartDate: only approvals that have not started yet can have
// their start date moved.
func (a Approval) CanPostponeStartDate(now time.Time) bool {
	return a.StartAt.After(now)
}

type SuspensionReason string

const (
	SuspensionReasonSickness          SuspensionReason = "sickness"
	SuspensionReasonMaternity         SuspensionReason = "maternity"
	SuspensionReasonIncarceration     SuspensionReason = "incarceration"
	SuspensionReasonTrialOutsideIAE   SuspensionReason = "trial_outside_iae"
	SuspensionReasonContractSuspended SuspensionReason = "contract_suspended"
	SuspensionReasonContractBroken    SuspensionReason = "contract_broken"
	SuspensionReasonForceMajeure      SuspensionReason = "force_majeure"
)

type Suspension struct {
	BaseModel
	ApprovalID  string           `gorm:"type:varchar(36);index"`
	StartAt     time.Time        `gorm:"type:date"`
	EndAt       time.Time        `gorm:"type:date;check:chk_suspension_dates,end_at >= start_at"`
	Reason      SuspensionReason `gorm:"type:varchar(40)"`
	CreatedByID *string          `gorm:"type:varchar(36)"`
}

func (s Suspension) IsInProgress(now time.Time) bool {
	return !now.Before(s.StartAt) && !now.After(s.EndAt)
}

type ProlongationReason string

const (
	ProlongationReasonSeniorCDI              ProlongationReason = "senior_cdi"
	ProlongationReasonCompleteTraining       ProlongationReason = "complete_training"
	ProlongationReasonRQTH                   ProlongationReason = "rqth"
	ProlongationReasonSenior                 ProlongationReason = "senior"
	ProlongationReasonParticularDifficulties ProlongationReason = "particular_difficulties"
)

type Prolongation struct {
	BaseModel
	ApprovalID    string             `gorm:"type:varchar(36);index"`
	StartAt       time.Time          `gorm:"type:date"`
	EndAt         time.Time          `gorm:"type:date;check:chk_prolongation_dates,end_at >= start_at"`
	Reason        ProlongationReason `gorm:"type:varchar(40)"`
	DeclaredByID  *string            `gorm:"type:varchar(36)"`
	ValidatedByID *string            `gorm:"type:varchar(36)"`
}
