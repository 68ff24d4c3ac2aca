package dbmodels

import (
	"itou-backend/models"
)

// Institution is an oversight body (DDETS, DREETS...) running
// evaluation campaigns on its department.
type Institution struct {
	BaseModel
	Kind       models.InstitutionKind `gorm:"type:varchar(20)"`
	Name       string                 `gorm:"type:varchar(255)"`
	Department string                 `gorm:"type:varchar(3);index"`
	Email      string                 `gorm:"type:varchar(255)"`
}

type InstitutionMembership struct {
	BaseModel
	UserID        string `gorm:"type:varchar(36);index:idx_institution_membership,unique"`
	User          *User
	InstitutionID string `gorm:"type:varchar(36);index:idx_institution_membership,unique"`
	Institution   *Institution
	IsActive      bool `gorm:"default:true"`
	IsAdmin       bool
}
