package prolongationstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "itou-backend/models/db"
)

type Provider interface {
	WithTx(tx *gorm.DB) Provider
	Create(rec dbmodels.Prolongation) (id string, err error)
	GetLastForApproval(approvalID string) (rec *dbmodels.Prolongation, err error)
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

func (i impl) Create(rec dbmodels.Prolongation) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetLastForApproval(approvalID string) (*dbmodels.Prolongation, error) {
	rec := dbmodels.Prolongation{}
	err := i.db.
		Model(&dbmodels.Prolongation{}).
		Where("approval_id = ?", approvalID).
		Order("end_at desc").
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
		Model(&dbmodels.Prolongation{}).
		Select("count(*) > 0").
		Where("approval_id = ?", approvalID).
		Where("start_at <= ? and end_at >= ?", endAt, startAt).
		Find(&exists).
		Error
	return exists, err
}
