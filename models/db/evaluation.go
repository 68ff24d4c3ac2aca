package dbmodels

import (
	"fmt"
	"strings"
	"time"

	"itou-backend/models"
)

// EvaluationCampaign drives one "contrôle a posteriori" cycle run by an
// institution on the self-prescribed hirings of its department.
type EvaluationCampaign struct {
	BaseModel
	Name string `gorm:"type:varchar(100)"`

	InstitutionID string       `gorm:"type:varchar(36);index"`
	Institution   *Institution `gorm:"foreignKey:InstitutionID"`

	EvaluatedPeriodStartAt time.Time `gorm:"type:date"`
	EvaluatedPeriodEndAt   time.Time `gorm:"type:date;check:chk_campaign_period,evaluated_period_end_at > evaluated_period_start_at"`

	ChosenPercent int `gorm:"default:30"`

	PercentSetAt       *time.Time
	EvaluationsAskedAt *time.Time
	EndedAt            *time.Time

	EvaluatedSiaes []EvaluatedSiae `gorm:"foreignKey:CampaignID"`
}

func (c EvaluationCampaign) IsPopulated() bool {
	return c.EvaluationsAskedAt != nil
}

func (c EvaluationCampaign) IsEnded() bool {
	return c.EndedAt != nil
}

// EvaluatedSiae holds one structure's audit within a campaign. Its state is
// derived from the child criteria, never stored.
type EvaluatedSiae struct {
	BaseModel
	CampaignID string              `gorm:"type:varchar(36);index:idx_evaluated_siae,unique"`
	Campaign   *EvaluationCampaign `gorm:"foreignKey:CampaignID"`
	CompanyID  string              `gorm:"type:varchar(36);index:idx_evaluated_siae,unique"`
	Company    *Company            `gorm:"foreignKey:CompanyID"`

	ReviewedAt *time.Time
	// Adversarial review outcome; cannot precede the first review.
	FinalReviewedAt *time.Time `gorm:"check:chk_review_order,final_reviewed_at IS NULL OR reviewed_at IS NULL OR final_reviewed_at >= reviewed_at"`

	// Submission lock while the institution reviews the uploads.
	SubmissionFreezedAt *time.Time

	// One result email per structure, stamped to keep close() idempotent.
	NotifiedAt *time.Time

	EvaluatedJobApplications []EvaluatedJobApplication `gorm:"foreignKey:EvaluatedSiaeID"`
	Sanctions                *Sanctions                `gorm:"foreignKey:EvaluatedSiaeID"`
}

type EvaluatedJobApplication struct {
	BaseModel
	EvaluatedSiaeID  string          `gorm:"type:varchar(36);index"`
	JobApplicationID string          `gorm:"type:varchar(36);index"`
	JobApplication   *JobApplication `gorm:"foreignKey:JobApplicationID"`

	LaborInspectorExplanation string

	Criteria []EvaluatedAdministrativeCriteria `gorm:"foreignKey:EvaluatedJobApplicationID"`
}

type EvaluatedAdministrativeCriteria struct {
	BaseModel
	EvaluatedJobApplicationID string                  `gorm:"type:varchar(36);index:idx_evaluated_criteria,unique"`
	CriteriaID                string                  `gorm:"type:varchar(36);index:idx_evaluated_criteria,unique"`
	Criteria                  *AdministrativeCriteria `gorm:"foreignKey:CriteriaID"`

	ProofURL    string `gorm:"type:varchar(500)"`
	UploadedAt  *time.Time
	SubmittedAt *time.Time
	ReviewState models.EvaluatedCriteriaReviewState `gorm:"type:varchar(10);default:'PENDING'"`
}

// CanUpload: a proof can be (re)uploaded before submission, or again during
// the adversarial stage after an explicit refusal.
func (c EvaluatedAdministrativeCriteria) CanUpload(siaeReviewedAt *time.Time) bool {
	if c.SubmittedAt == nil {
		return true
	}
	return siaeReviewedAt != nil && c.ReviewState == models.ReviewStateRefused
}

// Sanctions is the determination recorded when an evaluation ends with a
// refusal.
type Sanctions struct {
	BaseModel
	EvaluatedSiaeID string `gorm:"type:varchar(36);uniqueIndex"`

	TrainingSession string

	SuspensionStartAt *time.Time `gorm:"type:date"`
	SuspensionEndAt   *time.Time `gorm:"type:date"`

	SubsidyCutPercent *int
	SubsidyCutFrom    *time.Time `gorm:"type:date"`
	SubsidyCutTo      *time.Time `gorm:"type:date"`

	Deactivation bool

	NoSanctionReason string
}

// Summary returns a short human readable list of the applied sanctions.
func (s Sanctions) Summary() string {
	parts := make([]string, 0, 4)
	if s.TrainingSession != "" {
		parts = append(parts, "participation à une session de présentation")
	}
	if s.SuspensionStartAt != nil {
		parts = append(parts, "suspension de l'aide au poste")
	}
	if s.SubsidyCutPercent != nil {
		parts = append(parts, fmt.Sprintf("réduction de l'aide au poste de %d%%", *s.SubsidyCutPercent))
	}
	if s.Deactivation {
		parts = append(parts, "déconventionnement")
	}
	if len(parts) == 0 {
		return s.NoSanctionReason
	}
	return strings.Join(parts, ", ")
}
