package models

// AuthorKind identifies who established an eligibility diagnosis.
type AuthorKind string

const (
	AuthorKindPrescriber AuthorKind = "prescriber"
	AuthorKindEmployer   AuthorKind = "employer"
	AuthorKindGEIQ       AuthorKind = "geiq"
)

type AdministrativeCriteriaLevel string

const (
	CriteriaLevel1 AdministrativeCriteriaLevel = "1"
	CriteriaLevel2 AdministrativeCriteriaLevel = "2"
)

// Annexes of the GEIQ grid. Annex 1 criteria carry no level,
// annex 2 criteria always carry one.
type AdministrativeCriteriaAnnex string

const (
	CriteriaAnnex1 AdministrativeCriteriaAnnex = "1"
	CriteriaAnnex2 AdministrativeCriteriaAnnex = "2"
)

// GEIQ allowance amounts, in euros.
const (
	GEIQAllowanceAmountNone    = 0
	GEIQAllowanceAmountReduced = 814
	GEIQAllowanceAmountMax     = 1400
)

// An employer-made IAE diagnosis needs at least one level 1 criterion
// or at least three level 2 criteria.
const (
	EligibilityRequiredLevel1Count = 1
	EligibilityRequiredLevel2Count = 3
)
