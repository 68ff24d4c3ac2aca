package dbmodels

import (
	"itou-backend/models"
)

// EmployeeRecord is the declaration transmitted to the paying agency after
// an accepted hiring. Only its lifecycle status matters here: a transmitted
// record blocks the cancellation of the hiring.
type EmployeeRecord struct {
	BaseModel
	JobApplicationID string          `gorm:"type:varchar(36);index"`
	JobApplication   *JobApplication `gorm:"foreignKey:JobApplicationID"`

	ApprovalNumber string `gorm:"type:varchar(12);index"`
	ASPID          *int   `gorm:"index"`

	Status models.EmployeeRecordStatus `gorm:"type:varchar(20);default:'NEW'"`
}

func (r EmployeeRecord) IsBlockingJobApplicationCancellation() bool {
	return r.Status.IsBlockingCancellation()
}
