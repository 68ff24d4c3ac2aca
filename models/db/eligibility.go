package dbmodels

import (
	"time"

	"itou-backend/models"
)

// Validity of an IAE eligibility diagnosis, in months.
const DiagnosisValidityMonths = 6

// EligibilityDiagnosis is the snapshot of administrative criteria proving a
// job seeker's eligibility for assisted employment (IAE).
type EligibilityDiagnosis struct {
	BaseModel
	JobSeekerID string `gorm:"type:varchar(36);index"`
	JobSeeker   *User  `gorm:"foreignKey:JobSeekerID"`

	AuthorID   string            `gorm:"type:varchar(36)"`
	Author     *User             `gorm:"foreignKey:AuthorID"`
	AuthorKind models.AuthorKind `gorm:"type:varchar(20)"`
	// Set when the author is an employer staff member.
	AuthorCompanyID *string  `gorm:"type:varchar(36)"`
	AuthorCompany   *Company `gorm:"foreignKey:AuthorCompanyID"`
	// Set when the author is a prescriber.
	AuthorPrescriberOrganizationID *string                 `gorm:"type:varchar(36)"`
	AuthorPrescriberOrganization   *PrescriberOrganization `gorm:"foreignKey:AuthorPrescriberOrganizationID"`

	ExpiresAt time.Time `gorm:"type:date;index"`

	SelectedCriteria []SelectedAdministrativeCriteria `gorm:"foreignKey:DiagnosisID"`
}

func (d EligibilityDiagnosis) IsValid(now time.Time) bool {
	return now.Before(d.ExpiresAt)
}

// DiagnosisExpirationDate computes the expiry from the creation time.
func DiagnosisExpirationDate(createdAt time.Time) time.Time {
	return createdAt.AddDate(0, DiagnosisValidityMonths, 0)
}

// AdministrativeCriteria is reference data: one entry of the IAE criteria
// grid (level 1 or level 2). Seeded at migration time.
type AdministrativeCriteria struct {
	BaseModel
	Level        models.AdministrativeCriteriaLevel `gorm:"type:varchar(1)"`
	Name         string                             `gorm:"type:varchar(255)"`
	Desc         string                             `gorm:"type:varchar(255)"`
	WrittenProof string                             `gorm:"type:varchar(255)"`
	UIRank       int                                `gorm:"default:32767"`
}

type SelectedAdministrativeCriteria struct {
	BaseModel
	DiagnosisID string                  `gorm:"type:varchar(36);index:idx_selected_criteria,unique"`
	CriteriaID  string                  `gorm:"type:varchar(36);index:idx_selected_criteria,unique"`
	Criteria    *AdministrativeCriteria `gorm:"foreignKey:CriteriaID"`
}
