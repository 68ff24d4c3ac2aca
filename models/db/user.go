package dbmodels

import (
	"strings"

	"itou-backend/models"
)

type User struct {
	BaseModel
	Kind      models.UserKind `gorm:"type:varchar(50);index"`
	Email     string          `gorm:"type:varchar(255);uniqueIndex"`
	FirstName string          `gorm:"type:varchar(255)"`
	LastName  string          `gorm:"type:varchar(255)"`
	// NIR, the national registry identifier.
	NIR                      string                          `gorm:"type:varchar(15);index"`
	PoleEmploiID             string                          `gorm:"type:varchar(8);index"`
	LackOfPoleEmploiIDReason models.LackOfPoleEmploiIDReason `gorm:"type:varchar(30)"`
	Department               string                          `gorm:"type:varchar(3)"`
	ResumeLink               string                          `gorm:"type:varchar(500)"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasVerifiableIdentity reports whether the job seeker carries an identity
// reference usable for automatic PASS IAE delivery.
func (u User) HasVerifiableIdentity() bool {
	return u.NIR != "" || u.PoleEmploiID != ""
}
