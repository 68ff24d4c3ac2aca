package gpshandler

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"itou-backend/db"
	gpsstore "itou-backend/lib/gps/store"
	dbmodels "itou-backend/models/db"
)

// GPS: professionals who interact with a job seeker join their follow-up
// group, so everyone involved in the journey can be found.
type Provider interface {
	FollowBeneficiary(tx *gorm.DB, beneficiaryID, memberID string, isReferent bool) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: gpsstore.NewInstance(db.DB),
	}
}

type impl struct {
	store gpsstore.Provider
}

func (i impl) FollowBeneficiary(tx *gorm.DB, beneficiaryID, memberID string, isReferent bool) error {
	if beneficiaryID == "" || memberID == "" || beneficiaryID == memberID {
		return nil
	}
	store := i.store.WithTx(tx)
	group, err := store.GetGroupForBeneficiary(beneficiaryID)
	if err != nil {
		return err
	}
	groupID := ""
	if group == nil {
		groupID, err = store.CreateGroup(dbmodels.FollowUpGroup{
			BeneficiaryID: beneficiaryID,
		})
		if err != nil {
			return err
		}
	} else {
		groupID = group.ID
	}
	membership, err := store.GetMembership(groupID, memberID)
	if err != nil {
		return err
	}
	if membership != nil {
		if membership.IsActive {
			return nil
		}
		return store.UpdateMembership(membership.ID, map[string]interface{}{
			"is_active": true,
		})
	}
	_, err = store.CreateMembership(dbmodels.FollowUpGroupMembership{
		GroupID:    groupID,
		MemberID:   memberID,
		IsReferent: isReferent,
		IsActive:   true,
	})
	if err != nil {
		log.WithError(err).Error("erreur d'ajout au groupe de suivi")
		return err
	}
	return nil
}
