package notificationstore

import (
	"time"

	"gorm.io/gorm"

	dbmodels "itou-backend/models/db"
)

type Provider interface {
	WithTx(tx *gorm.DB) Provider
	Create(rec dbmodels.Notification) (id string, err error)
	ListPending(limit, maxAttempts int) (list []dbmodels.Notification, err error)
	MarkSent(id string) error
	MarkFailed(id string, sendErr string) error
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

func (i impl) Create(rec dbmodels.Notification) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListPending(limit, maxAttempts int) (list []dbmodels.Notification, err error) {
	list = []dbmodels.Notification{}
	err = i.db.
		Model(&dbmodels.Notification{}).
		Where("sent_at is null").
		Where("attempts < ?", maxAttempts).
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
		Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"sent_at": now,
		}).
		Error
}

func (i impl) MarkFailed(id string, sendErr string) error {
	return i.db.
		Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": sendErr,
		}).
		Error
}
