package evaluationapimodels

import (
	"time"

	"github.com/pkg/errors"

	"itou-backend/models"
	dbmodels "itou-backend/models/db"
)

type CreateCampaignRequest struct {
	Name                   string    `json:"name"`
	InstitutionID          string    `json:"institution_id"`
	EvaluatedPeriodStartAt time.Time `json:"evaluated_period_start_at"`
	EvaluatedPeriodEndAt   time.Time `json:"evaluated_period_end_at"`
	ChosenPercent          int       `json:"chosen_percent"`
}

func (r CreateCampaignRequest) Validate() error {
	if r.InstitutionID == "" {
		return errors.New("l'institution est obligatoire")
	}
	if !r.EvaluatedPeriodEndAt.After(r.EvaluatedPeriodStartAt) {
		return errors.New("la période contrôlée est invalide")
	}
	if r.ChosenPercent != 0 &&
		(r.ChosenPercent < models.EvaluationChosenPercentMin || r.ChosenPercent > models.EvaluationChosenPercentMax) {
		return errors.Errorf("le taux de contrôle doit être compris entre %d et %d",
			models.EvaluationChosenPercentMin, models.EvaluationChosenPercentMax)
	}
	return nil
}

type CampaignView struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	InstitutionID          string    `json:"institution_id"`
	EvaluatedPeriodStartAt time.Time `json:"evaluated_period_start_at"`
	EvaluatedPeriodEndAt   time.Time `json:"evaluated_period_end_at"`
	ChosenPercent          int       `json:"chosen_percent"`
	Populated              bool      `json:"populated"`
	Ended                  bool      `json:"ended"`

	EvaluatedSiaes []EvaluatedSiaeView `json:"evaluated_siaes,omitempty"`
}

type EvaluatedSiaeView struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	State     string `json:"state"`

	JobApplications []EvaluatedJobApplicationView `json:"job_applications,omitempty"`
}

type EvaluatedJobApplicationView struct {
	ID               string                  `json:"id"`
	JobApplicationID string                  `json:"job_application_id"`
	Criteria         []EvaluatedCriteriaView `json:"criteria,omitempty"`
}

type EvaluatedCriteriaView struct {
	ID          string `json:"id"`
	CriteriaID  string `json:"criteria_id"`
	ProofURL    string `json:"proof_url,omitempty"`
	Uploaded    bool   `json:"uploaded"`
	Submitted   bool   `json:"submitted"`
	ReviewState string `json:"review_state"`
}

type ReviewItem struct {
	EvaluatedCriteriaID string                              `json:"evaluated_criteria_id"`
	ReviewState         models.EvaluatedCriteriaReviewState `json:"review_state"` //ACCEPTED/REFUSED
}

type ReviewRequest struct {
	Items []ReviewItem `json:"items"`
}

func (r ReviewRequest) Validate() error {
	if len(r.Items) == 0 {
		return errors.New("aucun critère à contrôler")
	}
	for _, item := range r.Items {
		if item.ReviewState != models.ReviewStateAccepted && item.ReviewState != models.ReviewStateRefused {
			return errors.Errorf("état de contrôle invalide (%s)", item.ReviewState)
		}
	}
	return nil
}

type SanctionsRequest struct {
	TrainingSession   string     `json:"training_session,omitempty"`
	SuspensionStartAt *time.Time `json:"suspension_start_at,omitempty"`
	SuspensionEndAt   *time.Time `json:"suspension_end_at,omitempty"`
	SubsidyCutPercent *int       `json:"subsidy_cut_percent,omitempty"`
	SubsidyCutFrom    *time.Time `json:"subsidy_cut_from,omitempty"`
	SubsidyCutTo      *time.Time `json:"subsidy_cut_to,omitempty"`
	Deactivation      bool       `json:"deactivation"`
	NoSanctionReason  string     `json:"no_sanction_reason,omitempty"`
}

func ConvertCampaign(rec dbmodels.EvaluationCampaign, states map[string]models.EvaluatedSiaeState) CampaignView {
	view := CampaignView{
		ID:                     rec.ID,
		Name:                   rec.Name,
		InstitutionID:          rec.InstitutionID,
		EvaluatedPeriodStartAt: rec.EvaluatedPeriodStartAt,
		EvaluatedPeriodEndAt:   rec.EvaluatedPeriodEndAt,
		ChosenPercent:          rec.ChosenPercent,
		Populated:              rec.IsPopulated(),
		Ended:                  rec.IsEnded(),
	}
	for _, siae := range rec.EvaluatedSiaes {
		view.EvaluatedSiaes = append(view.EvaluatedSiaes, ConvertEvaluatedSiae(siae, states[siae.ID]))
	}
	return view
}

func ConvertEvaluatedSiae(rec dbmodels.EvaluatedSiae, state models.EvaluatedSiaeState) EvaluatedSiaeView {
	view := EvaluatedSiaeView{
		ID:        rec.ID,
		CompanyID: rec.CompanyID,
		State:     string(state),
	}
	for _, app := range rec.EvaluatedJobApplications {
		appView := EvaluatedJobApplicationView{
			ID:               app.ID,
			JobApplicationID: app.JobApplicationID,
		}
		for _, c := range app.Criteria {
			appView.Criteria = append(appView.Criteria, EvaluatedCriteriaView{
				ID:          c.ID,
				CriteriaID:  c.CriteriaID,
				ProofURL:    c.ProofURL,
				Uploaded:    c.UploadedAt != nil,
				Submitted:   c.SubmittedAt != nil,
				ReviewState: string(c.ReviewState),
			})
		}
		view.JobApplications = append(view.JobApplications, appView)
	}
	return view
}
