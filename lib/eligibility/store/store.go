package eligibilitystore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "itou-backend/models/db"
)

type Provider interface {
	WithTx(tx *gorm.DB) Provider
	Create(rec dbmodels.EligibilityDiagnosis) (id string, err error)
	GetByID(id string) (rec *dbmodels.EligibilityDiagnosis, err error)
	GetLastConsideredValid(jobSeekerID string, now time.Time) (rec *dbmodels.EligibilityDiagnosis, err error)
	Delete(id string) error
	AddSelectedCriteria(diagnosisID string, criteriaIDs []string) error
	ListCriteriaByIDs(ids []string) (list []dbmodels.AdministrativeCriteria, err error)
	ListCriteria() (list []dbmodels.AdministrativeCriteria, err error)
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

func (i impl) Create(rec dbmodels.EligibilityDiagnosis) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.EligibilityDiagnosis, error) {
	rec := dbmodels.EligibilityDiagnosis{}
	err := i.db.
		Model(&dbmodels.EligibilityDiagnosis{}).
		Where("id = ?", id).
		Preload("SelectedCriteria").
		Preload("SelectedCriteria.Criteria").
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

// GetLastConsideredValid picks the freshest unexpired diagnosis, with
// prescriber-authored ones taking precedence over employer-made ones.
func (i impl) GetLastConsideredValid(jobSeekerID string, now time.Time) (*dbmodels.EligibilityDiagnosis, error) {
	rec := dbmodels.EligibilityDiagnosis{}
	err := i.db.
		Model(&dbmodels.EligibilityDiagnosis{}).
		Where("job_seeker_id = ?", jobSeekerID).
		Where("expires_at > ?", now).
		Order("case when author_kind = 'prescriber' then 0 else 1 end").
		Order("created_at desc").
		Preload("SelectedCriteria").
		Preload("SelectedCriteria.Criteria").
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

func (i impl) Delete(id string) error {
	err := i.db.
		Where("diagnosis_id = ?", id).
		Delete(&dbmodels.SelectedAdministrativeCriteria{}).
		Error
	if err != nil {
		return err
	}
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.EligibilityDiagnosis{}).
		Error
}

func (i impl) AddSelectedCriteria(diagnosisID string, criteriaIDs []string) error {
	for _, criteriaID := range criteriaIDs {
		rec := dbmodels.SelectedAdministrativeCriteria{
			DiagnosisID: diagnosisID,
			CriteriaID:  criteriaID,
		}
		if err := i.db.Save(&rec).Error; err != nil {
			return err
		}
	}
	return nil
}

func (i impl) ListCriteriaByIDs(ids []string) (list []dbmodels.AdministrativeCriteria, err error) {
	list = []dbmodels.AdministrativeCriteria{}
	err = i.db.
		Model(&dbmodels.AdministrativeCriteria{}).
		Where("id in (?)", ids).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCriteria() (list []dbmodels.AdministrativeCriteria, err error) {
	list = []dbmodels.AdministrativeCriteria{}
	err = i.db.
		Model(&dbmodels.AdministrativeCriteria{}).
		Order("level asc, ui_rank asc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
