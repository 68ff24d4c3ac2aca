package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"itou-backend/models"
)

// JobApplicationTransitionLog is the append-only history of workflow
// transitions. Rows are written in the same transaction as the state change
// and are never updated afterwards.
type JobApplicationTransitionLog struct {
	BaseModel
	JobApplicationID string                          `gorm:"type:varchar(36);index"`
	Transition       models.JobApplicationTransition `gorm:"type:varchar(40)"`
	FromState        models.JobApplicationState      `gorm:"type:varchar(30)"`
	ToState          models.JobApplicationState      `gorm:"type:varchar(30)"`
	UserID           *string                         `gorm:"type:varchar(36)"`
	Timestamp        time.Time                       `gorm:"index"`
	Changes          TransitionChanges               `gorm:"type:jsonb"`
}

type TransitionChanges struct {
	Description string             `json:"description"`
	Data        []TransitionChange `json:"data"`
}

type TransitionChange struct {
	Field    string      `json:"field"`
	OldValue interface{} `json:"old_value"`
	NewValue interface{} `json:"new_value"`
}

func (c TransitionChanges) Value() (driver.Value, error) {
	valueString, err := json.Marshal(c)
	return string(valueString), err
}

func (c *TransitionChanges) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &c); err != nil {
		return err
	}
	return nil
}
