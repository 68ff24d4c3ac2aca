package dbmodels

import (
	"itou-backend/models"
)

type PrescriberOrganization struct {
	BaseModel
	Kind       models.PrescriberOrganizationKind `gorm:"type:varchar(20)"`
	Name       string                            `gorm:"type:varchar(255)"`
	Department string                            `gorm:"type:varchar(3);index"`
	// Authorized organizations may attest eligibility on their own.
	IsAuthorized bool
}

type PrescriberMembership struct {
	BaseModel
	UserID         string `gorm:"type:varchar(36);index:idx_prescriber_membership,unique"`
	User           *User
	OrganizationID string `gorm:"type:varchar(36);index:idx_prescriber_membership,unique"`
	Organization   *PrescriberOrganization
	IsActive       bool `gorm:"default:true"`
	IsAdmin        bool
}
