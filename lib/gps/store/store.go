package gpsstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "itou-backend/models/db"
)

type Provider interface {
	WithTx(tx *gorm.DB) Provider
	GetGroupForBeneficiary(beneficiaryID string) (rec *dbmodels.FollowUpGroup, err error)
	CreateGroup(rec dbmodels.FollowUpGroup) (id string, err error)
	GetMembership(groupID, memberID string) (rec *dbmodels.FollowUpGroupMembership, err error)
	CreateMembership(rec dbmodels.FollowUpGroupMembership) (id string, err error)
	UpdateMembership(id string, updMap map[string]interface{}) error
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

func (i impl) GetGroupForBeneficiary(beneficiaryID string) (*dbmodels.FollowUpGroup, error) {
	rec := dbmodels.FollowUpGroup{}
	err := i.db.
		Model(&dbmodels.FollowUpGroup{}).
		Where("beneficiary_id = ?", beneficiaryID).
		Preload("Memberships").
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

func (i impl) CreateGroup(rec dbmodels.FollowUpGroup) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetMembership(groupID, memberID string) (*dbmodels.FollowUpGroupMembership, error) {
	rec := dbmodels.FollowUpGroupMembership{}
	err := i.db.
		Model(&dbmodels.FollowUpGroupMembership{}).
		Where("group_id = ?", groupID).
		Where("member_id = ?", memberID).
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

func (i impl) CreateMembership(rec dbmodels.FollowUpGroupMembership) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) UpdateMembership(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.FollowUpGroupMembership{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}
