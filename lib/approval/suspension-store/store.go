package suspensionstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "itou-backend/models/db"
)

type Provider interface {
	WithTx(tx *gorm.DB) Provider
	Create(rec dbmodels.Suspension) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	GetActiveForApproval(approvalID string, at time.Time) (rec *dbmodels.Suspension, err error)
	HasOverlap(approvalID string, startAt, endAt time.Time) (found bool, err error)
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

func (i impl) Create(rec dbmodels.Suspension) (id string, err error) {
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
		Model(&dbmodels.Suspension{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.RowsAffected == 0 {
		return errors.New("suspension introuvable")
	}
	err := tx.Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Suspension{}).
		Error
}

func (i impl) GetActiveForApproval(approvalID string, at time.Time) (*dbmodels.Suspension, error) {
	rec := dbmodels.Suspension{}
	err := i.db.
		Model(&dbmodels.Suspension{}).
		Where("approval_id = ?", approvalID).
		Where("start_at <= ? and end_at >= ?", at, at).
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

func (i impl) HasOverlap(approvalID string, startAt, endAt time.Time) (found bool, err error) {
	var exists bool
	err = i.db.
		Model(&dbmodels.Suspension{}).
		Select("count(*) > 0").
		Where("approval_id = ?", approvalID).
		Where("start_at <= ? and end_at >= ?", endAt, startAt).
		Find(&exists).
		Error
	return exists, err
}
