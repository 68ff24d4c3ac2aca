package agencystore

import (
	"time"

	"gorm.io/gorm"

	"itou-backend/models"
	dbmodels "itou-backend/models/db"
)

type Provider interface {
	WithTx(tx *gorm.DB) Provider
	Create(rec dbmodels.AgencyNotification) (id string, err error)
	ListPending(limit int) (list []dbmodels.AgencyNotification, err error)
	MarkSent(id string) error
	MarkError(id string, details string) error
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

func (i impl) Create(rec dbmodels.AgencyNotification) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListPending(limit int) (list []dbmodels.AgencyNotification, err error) {
	list = []dbmodels.AgencyNotification{}
	err = i.db.
		Model(&dbmodels.AgencyNotification{}).
		Where("status = ?", models.AgencyNotificationPending).
		Order("created_at asc").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) MarkSent(id string) error {
	now := time.Now()
	return i.db.
		Model(&dbmodels.AgencyNotification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  models.AgencyNotificationSent,
			"sent_at": now,
		}).
		Error
}

func (i impl) MarkError(id string, details string) error {
	return i.db.
		Model(&dbmodels.AgencyNotification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  models.AgencyNotificationError,
			"details": details,
		}).
		Error
}
