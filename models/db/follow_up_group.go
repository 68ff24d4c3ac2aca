package dbmodels

// FollowUpGroup gathers the professionals following one job seeker (GPS).
type FollowUpGroup struct {
	BaseModel
	BeneficiaryID string `gorm:"type:varchar(36);uniqueIndex"`
	Beneficiary   *User  `gorm:"foreignKey:BeneficiaryID"`

	Memberships []FollowUpGroupMembership `gorm:"foreignKey:GroupID"`
}

type FollowUpGroupMembership struct {
	BaseModel
	GroupID  string `gorm:"type:varchar(36);index:idx_follow_up_membership,unique"`
	MemberID string `gorm:"type:varchar(36);index:idx_follow_up_membership,unique"`
	Member   *User  `gorm:"foreignKey:MemberID"`

	IsReferent bool
	IsActive   bool `gorm:"default:true"`
}
