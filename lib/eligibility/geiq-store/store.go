package geiqeligibilitystore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "itou-backend/models/db"
)

type Provider interface {
	WithTx(tx *gorm.DB) Provider
	Create(rec dbmodels.GEIQEligibilityDiagnosis) (id string, err error)
	GetByID(id string) (rec *dbmodels.GEIQEligibilityDiagnosis, err error)
	GetLastConsideredValid(jobSeekerID string, now time.Time) (rec *dbmodels.GEIQEligibilityDiagnosis, err error)
	AddSelectedCriteria(diagnosisID string, criteriaIDs []string) error
	ListCriteriaByIDs(ids []string) (list []dbmodels.GEIQAdministrativeCriteria, err error)
	ListCriteria() (list []dbmodels.GEIQAdministrativeCriteria, err error)
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

func (i impl) Create(rec dbmodels.GEIQEligibilityDiagnosis) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.GEIQEligibilityDiagnosis, error) {
	rec := dbmodels.GEIQEligibilityDiagnosis{}
	err := i.db.
		Model(&dbmodels.GEIQEligibilityDiagnosis{}).
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

func (i impl) GetLastConsideredValid(jobSeekerID string, now time.Time) (*dbmodels.GEIQEligibilityDiagnosis, error) {
	rec := dbmodels.GEIQEligibilityDiagnosis{}
	err := i.db.
		Model(&dbmodels.GEIQEligibilityDiagnosis{}).
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

func (i impl) AddSelectedCriteria(diagnosisID string, criteriaIDs []string) error {
	for _, criteriaID := range criteriaIDs {
		rec := dbmodels.GEIQSelectedAdministrativeCriteria{
			DiagnosisID: diagnosisID,
			CriteriaID:  criteriaID,
		}
		if err := i.db.Save(&rec).Error; err != nil {
			return err
		}
	}
	return nil
}

func (i impl) ListCriteriaByIDs(ids []string) (list []dbmodels.GEIQAdministrativeCriteria, err error) {
	list = []dbmodels.GEIQAdministrativeCriteria{}
	err = i.db.
		Model(&dbmodels.GEIQAdministrativeCriteria{}).
		Where("id in (?)", ids).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCriteria() (list []dbmodels.GEIQAdministrativeCriteria, err error) {
	list = []dbmodels.GEIQAdministrativeCriteria{}
	err = i.db.
		Model(&dbmodels.GEIQAdministrativeCriteria{}).
		Order("annex asc, ui_rank asc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
