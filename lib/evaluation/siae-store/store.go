package evaluatedsiaestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "itou-backend/models/db"
)

type Provider interface {
	WithTx(tx *gorm.DB) Provider
	Create(rec dbmodels.EvaluatedSiae) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (rec *dbmodels.EvaluatedSiae, err error)
	ListByCampaign(campaignID string) (list []dbmodels.EvaluatedSiae, err error)
	CreateJobApplication(rec dbmodels.EvaluatedJobApplication) (id string, err error)
	CreateCriteria(rec dbmodels.EvaluatedAdministrativeCriteria) (id string, err error)
	GetCriteriaByID(id string) (rec *dbmodels.EvaluatedAdministrativeCriteria, err error)
	UpdateCriteria(id string, updMap map[string]interface{}) error
	UpdateCriteriaForSiae(evaluatedSiaeID string, condition string, updMap map[string]interface{}) error
	CreateSanctions(rec dbmodels.Sanctions) (id string, err error)
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

func (i impl) Create(rec dbmodels.EvaluatedSiae) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
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
		Model(&dbmodels.EvaluatedSiae{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.RowsAffected == 0 {
		return errors.New("structure contrôlée introuvable")
	}
	err := tx.Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.EvaluatedSiae, error) {
	rec := dbmodels.EvaluatedSiae{}
	err := i.db.
		Model(&dbmodels.EvaluatedSiae{}).
		Where("id = ?", id).
		Preload("Campaign").
		Preload("Company").
		Preload("EvaluatedJobApplications").
		Preload("EvaluatedJobApplications.Criteria").
		Preload("Sanctions").
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

func (i impl) ListByCampaign(campaignID string) (list []dbmodels.EvaluatedSiae, err error) {
	list = []dbmodels.EvaluatedSiae{}
	err = i.db.
		Model(&dbmodels.EvaluatedSiae{}).
		Where("campaign_id = ?", campaignID).
		Preload("Company").
		Preload("EvaluatedJobApplications").
		Preload("EvaluatedJobApplications.Criteria").
		Preload("Sanctions").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CreateJobApplication(rec dbmodels.EvaluatedJobApplication) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) CreateCriteria(rec dbmodels.EvaluatedAdministrativeCriteria) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetCriteriaByID(id string) (*dbmodels.EvaluatedAdministrativeCriteria, error) {
	rec := dbmodels.EvaluatedAdministrativeCriteria{}
	err := i.db.
		Model(&dbmodels.EvaluatedAdministrativeCriteria{}).
		Where("id = ?", id).
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

func (i impl) UpdateCriteria(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.EvaluatedAdministrativeCriteria{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.RowsAffected == 0 {
		return errors.New("critère contrôlé introuvable")
	}
	err := tx.Error
	if err != nil {
		return err
	}
	return nil
}

// UpdateCriteriaForSiae updates every evaluated criterion of one structure
// matching the given conditions.
func (i impl) UpdateCriteriaForSiae(evaluatedSiaeID string, condition string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.EvaluatedAdministrativeCriteria{}).
		Where("evaluated_job_application_id in (?)",
			i.db.Model(&dbmodels.EvaluatedJobApplication{}).
				Select("id").
				Where("evaluated_siae_id = ?", evaluatedSiaeID),
		)
	if condition != "" {
		tx = tx.Where(condition)
	}
	return tx.Updates(updMap).Error
}

func (i impl) CreateSanctions(rec dbmodels.Sanctions) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}
