package eligibilityapimodels

import (
	"time"

	"github.com/pkg/errors"

	"itou-backend/models"
	dbmodels "itou-backend/models/db"
)

type CreateDiagnosisRequest struct {
	JobSeekerID                    string            `json:"job_seeker_id"`
	AuthorID                       string            `json:"author_id"`
	AuthorKind                     models.AuthorKind `json:"author_kind"` //prescriber/employer
	AuthorCompanyID                string            `json:"author_company_id,omitempty"`
	AuthorPrescriberOrganizationID string            `json:"author_prescriber_organization_id,omitempty"`
	CriteriaIDs                    []string          `json:"criteria_ids"`
}

func (r CreateDiagnosisRequest) Validate() error {
	if r.JobSeekerID == "" {
		return errors.New("le candidat est obligatoire")
	}
	if r.AuthorID == "" {
		return errors.New("l'auteur est obligatoire")
	}
	switch r.AuthorKind {
	case models.AuthorKindPrescriber:
		if r.AuthorPrescriberOrganizationID == "" {
			return errors.New("l'organisation prescriptrice est obligatoire")
		}
	case models.AuthorKindEmployer:
		if r.AuthorCompanyID == "" {
			return errors.New("la structure employeuse est obligatoire")
		}
	default:
		return errors.Errorf("type d'auteur invalide (%s)", r.AuthorKind)
	}
	return nil
}

type CreateGEIQDiagnosisRequest struct {
	JobSeekerID                    string            `json:"job_seeker_id"`
	AuthorID                       string            `json:"author_id"`
	AuthorKind                     models.AuthorKind `json:"author_kind"` //prescriber/geiq
	AuthorGEIQID                   string            `json:"author_geiq_id,omitempty"`
	AuthorPrescriberOrganizationID string            `json:"author_prescriber_organization_id,omitempty"`
	CriteriaIDs                    []string          `json:"criteria_ids"`
}

func (r CreateGEIQDiagnosisRequest) Validate() error {
	if r.JobSeekerID == "" {
		return errors.New("le candidat est obligatoire")
	}
	if r.AuthorID == "" {
		return errors.New("l'auteur est obligatoire")
	}
	return nil
}

type DiagnosisView struct {
	ID          string         `json:"id"`
	JobSeekerID string         `json:"job_seeker_id"`
	AuthorKind  string         `json:"author_kind"`
	CreatedAt   time.Time      `json:"created_at"`
	ExpiresAt   time.Time      `json:"expires_at"`
	IsValid     bool           `json:"is_valid"`
	Criteria    []CriteriaView `json:"criteria,omitempty"`
}

type CriteriaView struct {
	ID    string `json:"id"`
	Level string `json:"level,omitempty"`
	Annex string `json:"annex,omitempty"`
	Name  string `json:"name"`
}

type GEIQDiagnosisView struct {
	DiagnosisView
	AllowanceAmount int  `json:"allowance_amount"`
	EligibilityOK   bool `json:"eligibility_confirmed"`
}

func Convert(rec dbmodels.EligibilityDiagnosis, now time.Time) DiagnosisView {
	view := DiagnosisView{
		ID:          rec.ID,
		JobSeekerID: rec.JobSeekerID,
		AuthorKind:  string(rec.AuthorKind),
		CreatedAt:   rec.CreatedAt,
		ExpiresAt:   rec.ExpiresAt,
		IsValid:     rec.IsValid(now),
	}
	for _, sc := range rec.SelectedCriteria {
		if sc.Criteria == nil {
			continue
		}
		view.Criteria = append(view.Criteria, CriteriaView{
			ID:    sc.Criteria.ID,
			Level: string(sc.Criteria.Level),
			Name:  sc.Criteria.Name,
		})
	}
	return view
}

func ConvertGEIQ(rec dbmodels.GEIQEligibilityDiagnosis, allowance int, now time.Time) GEIQDiagnosisView {
	view := GEIQDiagnosisView{
		DiagnosisView: DiagnosisView{
			ID:          rec.ID,
			JobSeekerID: rec.JobSeekerID,
			AuthorKind:  string(rec.AuthorKind),
			CreatedAt:   rec.CreatedAt,
			ExpiresAt:   rec.ExpiresAt,
			IsValid:     rec.IsValid(now),
		},
		AllowanceAmount: allowance,
		EligibilityOK:   allowance > 0,
	}
	for _, sc := range rec.SelectedCriteria {
		if sc.Criteria == nil {
			continue
		}
		level := ""
		if sc.Criteria.Level != nil {
			level = string(*sc.Criteria.Level)
		}
		view.Criteria = append(view.Criteria, CriteriaView{
			ID:    sc.Criteria.ID,
			Level: level,
			Annex: string(sc.Criteria.Annex),
			Name:  sc.Criteria.Name,
		})
	}
	return view
}
