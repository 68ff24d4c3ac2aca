package employeerecordstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"itou-backend/models"
	dbmodels "itou-backend/models/db"
)

type Provider interface {
	WithTx(tx *gorm.DB) Provider
	Create(rec dbmodels.EmployeeRecord) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	GetByJobApplication(jobApplicationID string) (rec *dbmodels.EmployeeRecord, err error)
	HasBlocking(jobApplicationID string) (found bool, err error)
	DeleteUnsent(jobApplicationID string) error
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

func (i impl) Create(rec dbmodels.EmployeeRecord) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.EmployeeRecord{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.RowsAffected == 0 {
		return errors.New("fiche salarié introuvable")
	}
	err := tx.Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) GetByJobApplication(jobApplicationID string) (*dbmodels.EmployeeRecord, error) {
	rec := dbmodels.EmployeeRecord{}
	err := i.db.
		Model(&dbmodels.EmployeeRecord{}).
		Where("job_application_id = ?", jobApplicationID).
		Order("created_at desc").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// DeleteUnsent drops the records of a hiring that were never transmitted to
// the paying agency.
func (i impl) DeleteUnsent(jobApplicationID string) error {
	return i.db.
		Where("job_application_id = ?", jobApplicationID).
		Where("status not in (?)", []models.EmployeeRecordStatus{
			models.EmployeeRecordStatusSent,
			models.EmployeeRecordStatusProcessed,
		}).
		Delete(&dbmodels.EmployeeRecord{}).
		Error
}

// HasBlocking: a transmitted or integrated employee record forbids the
// cancellation of its hiring.
func (i impl) HasBlocking(jobApplicationID string) (found bool, err error) {
	var exists bool
	err = i.db.
		Model(&dbmodels.EmployeeRecord{}).
		Select("count(*) > 0").
		Where("job_application_id = ?", jobApplicationID).
		Where("status in (?)", []models.EmployeeRecordStatus{
			models.EmployeeRecordStatusSent,
			models.EmployeeRecordStatusProcessed,
		}).
		Find(&exists).
		Error
	return exists, err
}
