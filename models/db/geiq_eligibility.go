package dbmodels

import (
	"time"

	"github.com/pkg/errors"

	"itou-backend/models"
)

// GEIQEligibilityDiagnosis is the GEIQ variant of the eligibility snapshot.
// The author is either a prescriber organization or the GEIQ itself,
// never both (enforced both here and by a DB check constraint).
type GEIQEligibilityDiagnosis struct {
	BaseModel
	JobSeekerID string `gorm:"type:varchar(36);index"`
	JobSeeker   *User  `gorm:"foreignKey:JobSeekerID"`

	AuthorID   string            `gorm:"type:varchar(36)"`
	Author     *User             `gorm:"foreignKey:AuthorID"`
	AuthorKind models.AuthorKind `gorm:"type:varchar(20);check:chk_geiq_author_coherence,(author_kind = 'geiq' AND author_geiq_id IS NOT NULL AND author_prescriber_organization_id IS NULL) OR (author_kind = 'prescriber' AND author_prescriber_organization_id IS NOT NULL AND author_geiq_id IS NULL)"`

	AuthorGEIQID *string  `gorm:"type:varchar(36)"`
	AuthorGEIQ   *Company `gorm:"foreignKey:AuthorGEIQID"`

	AuthorPrescriberOrganizationID *string                 `gorm:"type:varchar(36)"`
	AuthorPrescriberOrganization   *PrescriberOrganization `gorm:"foreignKey:AuthorPrescriberOrganizationID"`

	ExpiresAt time.Time `gorm:"type:date;index"`

	SelectedCriteria []GEIQSelectedAdministrativeCriteria `gorm:"foreignKey:DiagnosisID"`
}

// Clean validates author exclusivity before persisting.
func (d GEIQEligibilityDiagnosis) Clean() error {
	switch d.AuthorKind {
	case models.AuthorKindGEIQ:
		if d.AuthorGEIQID == nil || d.AuthorPrescriberOrganizationID != nil {
			return errors.New("le diagnostic GEIQ ne peut avoir deux structures pour auteur")
		}
		if d.AuthorGEIQ != nil && d.AuthorGEIQ.Kind != models.CompanyKindGEIQ {
			return errors.Errorf("la structure auteur du diagnostic n'est pas un GEIQ (%s)", d.AuthorGEIQ.Kind)
		}
	case models.AuthorKindPrescriber:
		if d.AuthorPrescriberOrganizationID == nil || d.AuthorGEIQID != nil {
			return errors.New("le diagnostic GEIQ ne peut avoir deux structures pour auteur")
		}
	default:
		return errors.Errorf("type d'auteur invalide pour un diagnostic GEIQ (%s)", d.AuthorKind)
	}
	return nil
}

func (d GEIQEligibilityDiagnosis) IsValid(now time.Time) bool {
	return now.Before(d.ExpiresAt)
}

// GEIQAdministrativeCriteria is one entry of the GEIQ criteria grid.
// Annex 1 criteria carry no level; annex 2 criteria require one.
type GEIQAdministrativeCriteria struct {
	BaseModel
	Annex models.AdministrativeCriteriaAnnex  `gorm:"type:varchar(1);check:chk_geiq_annex_level_coherence,(annex = '1' AND level IS NULL) OR (annex = '2' AND level IS NOT NULL)"`
	Level *models.AdministrativeCriteriaLevel `gorm:"type:varchar(1)"`

	ParentID *string `gorm:"type:varchar(36)"`

	Name         string `gorm:"type:varchar(255)"`
	WrittenProof string `gorm:"type:varchar(255)"`
	UIRank       int    `gorm:"default:32767"`
}

// Clean validates the annex/level lookup table coherence.
func (c GEIQAdministrativeCriteria) Clean() error {
	switch c.Annex {
	case models.CriteriaAnnex1:
		if c.Level != nil {
			return errors.New("un critère d'annexe 1 ne porte pas de niveau")
		}
	case models.CriteriaAnnex2:
		if c.Level == nil {
			return errors.New("un critère d'annexe 2 requiert un niveau")
		}
	default:
		return errors.Errorf("annexe inconnue (%s)", c.Annex)
	}
	return nil
}

type GEIQSelectedAdministrativeCriteria struct {
	BaseModel
	DiagnosisID string                      `gorm:"type:varchar(36);index:idx_geiq_selected_criteria,unique"`
	CriteriaID  string                      `gorm:"type:varchar(36);index:idx_geiq_selected_criteria,unique"`
	Criteria    *GEIQAdministrativeCriteria `gorm:"foreignKey:CriteriaID"`
}
