package jobapplicationstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"itou-backend/models"
	dbmodels "itou-backend/models/db"
)

type Provider interface {
	WithTx(tx *gorm.DB) Provider
	Create(rec dbmodels.JobApplication) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (rec *dbmodels.JobApplication, err error)
	List(filter dbmodels.JobApplicationFilter, page, limit int) (list []dbmodels.JobApplication, rowCount int64, err error)
	ListPendingForJobSeeker(jobSeekerID, excludeID string) (list []dbmodels.JobApplication, err error)
	ListAcceptedForCompanies(companyIDs []string, periodStart, periodEnd time.Time) (list []dbmodels.JobApplication, err error)
	IsActiveMember(userID, companyID string) (bool, error)
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

func (i impl) Create(rec dbmodels.JobApplication) (id string, err error) {
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
		Model(&dbmodels.JobApplication{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.RowsAffected == 0 {
		return errors.New("candidature introuvable")
	}
	err := tx.Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.JobApplication, error) {
	rec := dbmodels.JobApplication{}
	err := i.db.
		Model(&dbmodels.JobApplication{}).
		Where("id = ?", id).
		Preload("JobSeeker").
		Preload("Sender").
		Preload("ToCompany").
		Preload("SenderPrescriberOrganization").
		Preload("EligibilityDiagnosis").
		Preload("GEIQEligibilityDiagnosis").
		Preload("Approval").
		Preload("PriorActions").
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

func (i impl) List(filter dbmodels.JobApplicationFilter, page, limit int) (list []dbmodels.JobApplication, rowCount int64, err error) {
	list = []dbmodels.JobApplication{}
	tx := i.db.
		Model(&dbmodels.JobApplication{}).
		Where("archived = ?", filter.Archived)
	if filter.JobSeekerID != "" {
		tx = tx.Where("job_seeker_id = ?", filter.JobSeekerID)
	}
	if filter.ToCompanyID != "" {
		tx = tx.Where("to_company_id = ?", filter.ToCompanyID)
	}
	if len(filter.States) != 0 {
		tx = tx.Where("state in (?)", filter.States)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	err = tx.
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Preload("JobSeeker").
		Preload("ToCompany").
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) ListPendingForJobSeeker(jobSeekerID, excludeID string) (list []dbmodels.JobApplication, err error) {
	list = []dbmodels.JobApplication{}
	err = i.db.
		Model(&dbmodels.JobApplication{}).
		Where("job_seeker_id = ?", jobSeekerID).
		Where("id <> ?", excludeID).
		Where("state in (?)", models.PendingStates).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) IsActiveMember(userID, companyID string) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.CompanyMembership{}).
		Where("user_id = ?", userID).
		Where("company_id = ?", companyID).
		Where("is_active = ?", true).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListAcceptedForCompanies returns the self-prescribed hirings of the given
// structures whose hiring started inside the audited period. Only hirings
// running on a platform-issued PASS IAE and diagnosed by the hiring structure
// itself are auditable.
func (i impl) ListAcceptedForCompanies(companyIDs []string, periodStart, periodEnd time.Time) (list []dbmodels.JobApplication, err error) {
	list = []dbmodels.JobApplication{}
	err = i.db.
		Model(&dbmodels.JobApplication{}).
		Joins("join eligibility_diagnoses as d on d.id = job_applications.eligibility_diagnosis_id").
		Joins("join approvals as a on a.id = job_applications.approval_id").
		Where("job_applications.state = ?", models.JobApplicationStateAccepted).
		Where("job_applications.to_company_id in (?)", companyIDs).
		Where("job_applications.hiring_start_at between ? and ?", periodStart, periodEnd).
		Where("d.author_kind = ?", models.AuthorKindEmployer).
		Where("d.author_company_id = job_applications.to_company_id").
		Where("a.number like ?", dbmodels.ApprovalNumberPrefix+"%").
		Preload("EligibilityDiagnosis").
		Preload("EligibilityDiagnosis.SelectedCriteria").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
