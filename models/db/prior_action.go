package dbmodels

import (
	"time"

	"github.com/pkg/errors"

	"itou-backend/models"
)

// PriorAction is a pre-hire action (training, situation) attached to a GEIQ
// job application in the prior-to-hire stage.
type PriorAction struct {
	BaseModel
	JobApplicationID string                 `gorm:"type:varchar(36);index"`
	Kind             models.PriorActionKind `gorm:"type:varchar(30)"`
	StartAt          time.Time              `gorm:"type:date"`
	EndAt            time.Time              `gorm:"type:date;check:chk_prior_action_dates,end_at >= start_at"`
}

func (a PriorAction) Clean() error {
	if !a.Kind.IsValid() {
		return errors.Errorf("type d'action préalable inconnu (%s)", a.Kind)
	}
	if a.EndAt.Before(a.StartAt) {
		return errors.New("la date de fin de l'action doit être postérieure à sa date de début")
	}
	return nil
}
