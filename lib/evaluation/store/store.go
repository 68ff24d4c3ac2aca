package evaluationstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"itou-backend/models"
	dbmodels "itou-backend/models/db"
)

type Provider interface {
	WithTx(tx *gorm.DB) Provider
	Create(rec dbmodels.EvaluationCampaign) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (rec *dbmodels.EvaluationCampaign, err error)
	ListByInstitution(institutionID string) (list []dbmodels.EvaluationCampaign, err error)
	ListEligibleCompanies(department string) (list []dbmodels.Company, err error)
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

func (i impl) Create(rec dbmodels.EvaluationCampaign) (id string, err error) {
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
		Model(&dbmodels.EvaluationCampaign{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.RowsAffected == 0 {
		return errors.New("campagne de contrôle introuvable")
	}
	err := tx.Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.EvaluationCampaign, error) {
	rec := dbmodels.EvaluationCampaign{}
	err := i.db.
		Model(&dbmodels.EvaluationCampaign{}).
		Where("id = ?", id).
		Preload("Institution").
		Preload("EvaluatedSiaes").
		Preload("EvaluatedSiaes.Company").
		Preload("EvaluatedSiaes.EvaluatedJobApplications").
		Preload("EvaluatedSiaes.EvaluatedJobApplications.Criteria").
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

func (i impl) ListByInstitution(institutionID string) (list []dbmodels.EvaluationCampaign, err error) {
	list = []dbmodels.EvaluationCampaign{}
	err = i.db.
		Model(&dbmodels.EvaluationCampaign{}).
		Where("institution_id = ?", institutionID).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListEligibleCompanies returns the structures of the department that fall
// under eligibility rules, the audit population of a campaign.
func (i impl) ListEligibleCompanies(department string) (list []dbmodels.Company, err error) {
	list = []dbmodels.Company{}
	err = i.db.
		Model(&dbmodels.Company{}).
		Where("department = ?", department).
		Where("kind in (?)", []models.CompanyKind{
			models.CompanyKindEI,
			models.CompanyKindAI,
			models.CompanyKindACI,
			models.CompanyKindETTI,
			models.CompanyKindEITI,
		}).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
