package eligibilityhandler

import (
	"itou-backend/models"
	dbmodels "itou-backend/models/db"
)

// AllowanceAmount computes the yearly GEIQ allowance opened by a diagnosis.
// A prescriber-made diagnosis always opens the full allowance. A GEIQ-made
// one opens the full allowance on one annex 2 level 1 criterion or two
// annex 2 level 2 criteria, and the reduced allowance on annex 1 criteria
// alone. Zero means no confirmed eligibility.
func AllowanceAmount(authorKind models.AuthorKind, criteria []dbmodels.GEIQAdministrativeCriteria) int {
	if authorKind == models.AuthorKindPrescriber {
		return models.GEIQAllowanceAmountMax
	}
	var annex1, level1, level2 int
	for _, c := range criteria {
		switch c.Annex {
		case models.CriteriaAnnex1:
			annex1++
		case models.CriteriaAnnex2:
			if c.Level == nil {
				continue
			}
			switch *c.Level {
			case models.CriteriaLevel1:
				level1++
			case models.CriteriaLevel2:
				level2++
			}
		}
	}
	if level1 >= 1 || level2 >= 2 {
		return models.GEIQAllowanceAmountMax
	}
	if annex1 >= 1 {
		return models.GEIQAllowanceAmountReduced
	}
	return models.GEIQAllowanceAmountNone
}

// meetsIAECriteria tells whether an employer-made IAE diagnosis carries
// enough administrative criteria to stand on its own.
func meetsIAECriteria(criteria []dbmodels.AdministrativeCriteria) bool {
	var level1, level2 int
	for _, c := range criteria {
		switch c.Level {
		case models.CriteriaLevel1:
			level1++
		case models.CriteriaLevel2:
			level2++
		}
	}
	return level1 >= models.EligibilityRequiredLevel1Count ||
		level2 >= models.EligibilityRequiredLevel2Count
}
