package jobapplicationlogstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "itou-backend/models/db"
)

type Provider interface {
	WithTx(tx *gorm.DB) Provider
	Create(rec dbmodels.JobApplicationTransitionLog) (id string, err error)
	ListByJobApplication(jobApplicationID string) (list []dbmodels.JobApplicationTransitionLog, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) WithTx(tx *gorm.DB) Provider {
	return &impl{db: tx}
}

func (i impl) Create(rec dbmodels.JobApplicationTransitionLog) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByJobApplication(jobApplicationID string) (list []dbmodels.JobApplicationTransitionLog, err error) {
	list = []dbmodels.JobApplicationTransitionLog{}
	err = i.db.
		Model(&dbmodels.JobApplicationTransitionLog{}).
		Where("job_application_id = ?", jobApplicationID).
		Order("timestamp asc").
		Find(&list).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return list, nil
}
