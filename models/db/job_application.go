package dbmodels

import (
	"time"

	"github.com/lib/pq"

	"itou-backend/models"
)

type JobApplication struct {
	BaseModel
	State models.JobApplicationState `gorm:"type:varchar(30);index;default:'new'"`

	JobSeekerID string `gorm:"type:varchar(36);index"`
	JobSeeker   *User  `gorm:"foreignKey:JobSeekerID"`

	SenderID                       *string                 `gorm:"type:varchar(36)"`
	Sender                         *User                   `gorm:"foreignKey:SenderID"`
	SenderKind                     models.SenderKind       `gorm:"type:varchar(20)"`
	SenderCompanyID                *string                 `gorm:"type:varchar(36)"`
	SenderCompany                  *Company                `gorm:"foreignKey:SenderCompanyID"`
	SenderPrescriberOrganizationID *string                 `gorm:"type:varchar(36)"`
	SenderPrescriberOrganization   *PrescriberOrganization `gorm:"foreignKey:SenderPrescriberOrganizationID"`

	ToCompanyID string   `gorm:"type:varchar(36);index"`
	ToCompany   *Company `gorm:"foreignKey:ToCompanyID"`

	SelectedJobIDs pq.StringArray  `gorm:"type:text[]"`
	HiredJobID     *string         `gorm:"type:varchar(36)"`
	HiredJob       *JobDescription `gorm:"foreignKey:HiredJobID"`

	Message            string
	Answer             string
	AnswerToPrescriber string
	RefusalReason      models.RefusalReason `gorm:"type:varchar(30)"`
	ResumeLink         string               `gorm:"type:varchar(500)"`

	HiringStartAt *time.Time `gorm:"type:date;index"`
	HiringEndAt   *time.Time `gorm:"type:date"`

	// Exactly one of the two diagnoses may be set, never both.
	EligibilityDiagnosisID     *string                   `gorm:"type:varchar(36);check:chk_diagnosis_exclusive,eligibility_diagnosis_id IS NULL OR geiq_eligibility_diagnosis_id IS NULL"`
	EligibilityDiagnosis       *EligibilityDiagnosis     `gorm:"foreignKey:EligibilityDiagnosisID"`
	GEIQEligibilityDiagnosisID *string                   `gorm:"type:varchar(36)"`
	GEIQEligibilityDiagnosis   *GEIQEligibilityDiagnosis `gorm:"foreignKey:GEIQEligibilityDiagnosisID"`

	HiringWithoutApproval bool

	ApprovalID                    *string                     `gorm:"type:varchar(36);index"`
	Approval                      *Approval                   `gorm:"foreignKey:ApprovalID"`
	ApprovalDeliveryMode          models.ApprovalDeliveryMode `gorm:"type:varchar(30)"`
	ApprovalNumberSentByEmail     bool
	ApprovalNumberSentAt          *time.Time
	ApprovalManuallyDeliveredByID *string `gorm:"type:varchar(36)"`
	ApprovalManuallyRefusedByID   *string `gorm:"type:varchar(36)"`
	ApprovalManuallyRefusedAt     *time.Time

	CreateEmployeeRecord bool                     `gorm:"default:true"`
	Origin               models.ApplicationOrigin `gorm:"type:varchar(20);default:'default'"`

	// Soft archival, employer side only.
	Archived bool `gorm:"default:false"`

	TransferredAt     *time.Time
	TransferredByID   *string  `gorm:"type:varchar(36)"`
	TransferredFromID *string  `gorm:"type:varchar(36)"`
	TransferredFrom   *Company `gorm:"foreignKey:TransferredFromID"`

	PriorActions []PriorAction `gorm:"foreignKey:JobApplicationID"`
}

func (j JobApplication) IsSentByProxy() bool {
	return j.SenderID != nil && *j.SenderID != j.JobSeekerID
}

func (j JobApplication) IsSentByAuthorizedPrescriber() bool {
	return j.SenderKind == models.SenderKindPrescriber &&
		j.SenderPrescriberOrganization != nil &&
		j.SenderPrescriberOrganization.IsAuthorized
}

func (j JobApplication) IsFromAIStock() bool {
	return j.Origin == models.ApplicationOriginAIStock
}

func (j JobApplication) CanBeArchived() bool {
	switch j.State {
	case models.JobApplicationStateRefused,
		models.JobApplicationStateCancelled,
		models.JobApplicationStateObsolete:
		return true
	}
	return false
}

func (j JobApplication) HiringStartsInFuture(now time.Time) bool {
	return j.HiringStartAt != nil && now.Before(*j.HiringStartAt)
}

type JobApplicationFilter struct {
	JobSeekerID string                       `json:"job_seeker_id"`
	ToCompanyID string                       `json:"to_company_id"`
	States      []models.JobApplicationState `json:"states"`
	Archived    bool                         `json:"archived"`
}
