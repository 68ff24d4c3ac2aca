package dbmodels

import (
	"itou-backend/models"
)

// Company is an inclusion employer structure (SIAE or GEIQ).
type Company struct {
	BaseModel
	Kind       models.CompanyKind `gorm:"type:varchar(10);index"`
	Name       string             `gorm:"type:varchar(255)"`
	Siret      string             `gorm:"type:varchar(14);index"`
	Department string             `gorm:"type:varchar(3);index"`
	Email      string             `gorm:"type:varchar(255)"`
	// ASP convention identifier, used for employee record uniqueness.
	ConventionASPID *int
}

func (c Company) IsSubjectToEligibilityRules() bool {
	return c.Kind.IsSubjectToEligibilityRules()
}

type CompanyMembership struct {
	BaseModel
	UserID    string `gorm:"type:varchar(36);index:idx_company_membership,unique"`
	User      *User
	CompanyID string `gorm:"type:varchar(36);index:idx_company_membership,unique"`
	Company   *Company
	IsActive  bool `gorm:"default:true"`
	IsAdmin   bool
}

type JobDescription struct {
	BaseModel
	CompanyID string `gorm:"type:varchar(36);index"`
	Company   *Company
	Name      string `gorm:"type:varchar(255)"`
	RomeCode  string `gorm:"type:varchar(10)"`
	IsActive  bool   `gorm:"default:true"`
}
