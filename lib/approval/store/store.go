package approvalstore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"itou-backend/models"
	dbmodels "itou-backend/models/db"
)

type Provider interface {
	WithTx(tx *gorm.DB) Provider
	Create(rec dbmodels.Approval) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (rec *dbmodels.Approval, err error)
	GetByNumber(number string) (rec *dbmodels.Approval, err error)
	GetLatestForUser(userID string) (rec *dbmodels.Approval, err error)
	ListForUser(userID string) (list []dbmodels.Approval, err error)
	Delete(id string) error
	NextNumber() (number string, err error)
	CountAcceptedJobApplications(approvalID string) (count int64, err error)
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

func (i impl) Create(rec dbmodels.Approval) (id string, err error) {
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
		Model(&dbmodels.Approval{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.RowsAffected == 0 {
		return errors.New("PASS IAE introuvable")
	}
	err := tx.Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.Approval, error) {
	rec := dbmodels.Approval{}
	err := i.db.
		Model(&dbmodels.Approval{}).
		Where("id = ?", id).
		Preload("Suspensions").
		Preload("Prolongations").
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

func (i impl) GetByNumber(number string) (*dbmodels.Approval, error) {
	rec := dbmodels.Approval{}
	err := i.db.
		Model(&dbmodels.Approval{}).
		Where("number = ?", number).
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

func (i impl) GetLatestForUser(userID string) (*dbmodels.Approval, error) {
	rec := dbmodels.Approval{}
	err := i.db.
		Model(&dbmodels.Approval{}).
		Where("user_id = ?", userID).
		Order("end_at desc").
		Preload("Suspensions").
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

func (i impl) ListForUser(userID string) (list []dbmodels.Approval, err error) {
	list = []dbmodels.Approval{}
	err = i.db.
		Model(&dbmodels.Approval{}).
		Where("user_id = ?", userID).
		Order("start_at desc").
		Preload("Suspensions").
		Preload("Prolongations").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Approval{}).
		Error
}

// NextNumber allocates the next platform-issued PASS IAE number. The row
// lock on the current maximum keeps concurrent hirings from drawing the same
// number.
func (i impl) NextNumber() (string, error) {
	var lastNumber string
	err := i.db.
		Model(&dbmodels.Approval{}).
		Select("number").
		Where("number like ?", dbmodels.ApprovalNumberPrefix+"%").
		Order("number desc").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Limit(1).
		Find(&lastNumber).
		Error
	if err != nil {
		return "", err
	}
	next := int64(1)
	if lastNumber != "" {
		seq, err := strconv.ParseInt(strings.TrimPrefix(lastNumber, dbmodels.ApprovalNumberPrefix), 10, 64)
		if err != nil {
			return "", errors.Wrapf(err, "numéro de PASS IAE invalide (%s)", lastNumber)
		}
		next = seq + 1
	}
	return fmt.Sprintf("%s%07d", dbmodels.ApprovalNumberPrefix, next), nil
}

func (i impl) CountAcceptedJobApplications(approvalID string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.JobApplication{}).
		Where("approval_id = ?", approvalID).
		Where("state = ?", models.JobApplicationStateAccepted).
		Count(&count).
		Error
	return count, err
}
