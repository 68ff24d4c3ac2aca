package dbmodels

import (
	"testing"

	"github.com/stretchr/testify/require"

	"itou-backend/models"
)

func TestGEIQEligibilityDiagnosisClean(t *testing.T) {
	geiqID := "geiq-1"
	orgID := "org-1"

	t.Run(`geiq author requires a geiq structure`, func(t *testing.T) {
		d := GEIQEligibilityDiagnosis{AuthorKind: models.AuthorKindGEIQ, AuthorGEIQID: &geiqID}
		require.Nil(t, d.Clean())

		d.AuthorGEIQID = nil
		require.NotNil(t, d.Clean())
	})

	t.Run(`both authors at once is rejected`, func(t *testing.T) {
		d := GEIQEligibilityDiagnosis{
			AuthorKind:                     models.AuthorKindGEIQ,
			AuthorGEIQID:                   &geiqID,
			AuthorPrescriberOrganizationID: &orgID,
		}
		require.NotNil(t, d.Clean())

		d.AuthorKind = models.AuthorKindPrescriber
		require.NotNil(t, d.Clean())
	})

	t.Run(`the author structure must really be a geiq`, func(t *testing.T) {
		d := GEIQEligibilityDiagnosis{
			AuthorKind:   models.AuthorKindGEIQ,
			AuthorGEIQID: &geiqID,
			AuthorGEIQ:   &Company{Kind: models.CompanyKindEI},
		}
		require.NotNil(t, d.Clean())
	})

	t.Run(`prescriber author requires an organization`, func(t *testing.T) {
		d := GEIQEligibilityDiagnosis{
			AuthorKind:                     models.AuthorKindPrescriber,
			AuthorPrescriberOrganizationID: &orgID,
		}
		require.Nil(t, d.Clean())

		d.AuthorPrescriberOrganizationID = nil
		require.NotNil(t, d.Clean())
	})

	t.Run(`employer can never author a geiq diagnosis`, func(t *testing.T) {
		d := GEIQEligibilityDiagnosis{AuthorKind: models.AuthorKindEmployer}
		require.NotNil(t, d.Clean())
	})
}

func TestGEIQAdministrativeCriteriaClean(t *testing.T) {
	level1 := models.CriteriaLevel1

	t.Run(`annex 1 carries no level`, func(t *testing.T) {
		c := GEIQAdministrativeCriteria{Annex: models.CriteriaAnnex1}
		require.Nil(t, c.Clean())

		c.Level = &level1
		require.NotNil(t, c.Clean())
	})

	t.Run(`annex 2 requires a level`, func(t *testing.T) {
		c := GEIQAdministrativeCriteria{Annex: models.CriteriaAnnex2, Level: &level1}
		require.Nil(t, c.Clean())

		c.Level = nil
		require.NotNil(t, c.Clean())
	})

	t.Run(`unknown annex`, func(t *testing.T) {
		c := GEIQAdministrativeCriteria{Annex: models.AdministrativeCriteriaAnnex("3")}
		require.NotNil(t, c.Clean())
	})
}
