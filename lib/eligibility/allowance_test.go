package eligibilityhandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"itou-backend/models"
	dbmodels "itou-backend/models/db"
)

func TestAllowanceAmount(t *testing.T) {
	level1 := models.CriteriaLevel1
	level2 := models.CriteriaLevel2
	annex1 := dbmodels.GEIQAdministrativeCriteria{Annex: models.CriteriaAnnex1}
	annex2Level1 := dbmodels.GEIQAdministrativeCriteria{Annex: models.CriteriaAnnex2, Level: &level1}
	annex2Level2 := dbmodels.GEIQAdministrativeCriteria{Annex: models.CriteriaAnnex2, Level: &level2}

	t.Run(`prescriber diagnosis always opens the full allowance`, func(t *testing.T) {
		amount := AllowanceAmount(models.AuthorKindPrescriber, nil)
		require.Equal(t, models.GEIQAllowanceAmountMax, amount)
	})

	t.Run(`one annex 2 level 1 criterion opens the full allowance`, func(t *testing.T) {
		amount := AllowanceAmount(models.AuthorKindGEIQ, []dbmodels.GEIQAdministrativeCriteria{annex2Level1})
		require.Equal(t, models.GEIQAllowanceAmountMax, amount)
	})

	t.Run(`two annex 2 level 2 criteria open the full allowance`, func(t *testing.T) {
		amount := AllowanceAmount(models.AuthorKindGEIQ, []dbmodels.GEIQAdministrativeCriteria{annex2Level2, annex2Level2})
		require.Equal(t, models.GEIQAllowanceAmountMax, amount)

		amount = AllowanceAmount(models.AuthorKindGEIQ, []dbmodels.GEIQAdministrativeCriteria{annex2Level2})
		require.Equal(t, models.GEIQAllowanceAmountNone, amount)
	})

	t.Run(`annex 1 criteria alone open the reduced allowance`, func(t *testing.T) {
		amount := AllowanceAmount(models.AuthorKindGEIQ, []dbmodels.GEIQAdministrativeCriteria{annex1})
		require.Equal(t, models.GEIQAllowanceAmountReduced, amount)
	})

	t.Run(`no criteria, no allowance`, func(t *testing.T) {
		amount := AllowanceAmount(models.AuthorKindGEIQ, nil)
		require.Equal(t, models.GEIQAllowanceAmountNone, amount)
	})
}

func TestMeetsIAECriteria(t *testing.T) {
	level1 := dbmodels.AdministrativeCriteria{Level: models.CriteriaLevel1}
	level2 := dbmodels.AdministrativeCriteria{Level: models.CriteriaLevel2}

	t.Run(`one level 1 criterion suffices`, func(t *testing.T) {
		require.True(t, meetsIAECriteria([]dbmodels.AdministrativeCriteria{level1}))
	})

	t.Run(`three level 2 criteria suffice`, func(t *testing.T) {
		require.False(t, meetsIAECriteria([]dbmodels.AdministrativeCriteria{level2, level2}))
		require.True(t, meetsIAECriteria([]dbmodels.AdministrativeCriteria{level2, level2, level2}))
	})

	t.Run(`empty selection never qualifies`, func(t *testing.T) {
		require.False(t, meetsIAECriteria(nil))
	})
}
