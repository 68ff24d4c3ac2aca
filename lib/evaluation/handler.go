package evaluationhandler

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"itou-backend/db"
	evaluatedsiaestore "itou-backend/lib/evaluation/siae-store"
	evaluationstore "itou-backend/lib/evaluation/store"
	xlsexport "itou-backend/lib/export/xls"
	jobapplicationstore "itou-backend/lib/jobapplication/store"
	notificationhandler "itou-backend/lib/notification"
	"itou-backend/lib/utils/lock"
	"itou-backend/models"
	evaluationapimodels "itou-backend/models/api/evaluation"
	dbmodels "itou-backend/models/db"
)

var (
	ErrCampaignNotFound         = errors.New("campagne de contrôle introuvable")
	ErrCampaignAlreadyPopulated = errors.New("la campagne a déjà été lancée")
	ErrCampaignEnded            = errors.New("la campagne est clôturée")
	ErrSiaeNotFound             = errors.New("structure contrôlée introuvable")
	ErrCriteriaNotFound         = errors.New("critère contrôlé introuvable")
	ErrProofsNotUploaded        = errors.New("tous les justificatifs doivent être téléversés avant transmission")
	ErrUploadForbidden          = errors.New("ce justificatif ne peut plus être modifié")
	ErrSubmissionFrozen         = errors.New("la transmission est gelée pendant le contrôle")
	ErrNotReviewed              = errors.New("le contrôle n'a pas encore été validé")
	ErrNotRefused               = errors.New("seule une structure refusée peut être sanctionnée")
)

type Provider interface {
	CreateCampaign(req evaluationapimodels.CreateCampaignRequest) (*evaluationapimodels.CampaignView, error)
	GetCampaign(id string) (*evaluationapimodels.CampaignView, error)
	ListCampaigns(institutionID string) ([]evaluationapimodels.CampaignView, error)
	SetChosenPercent(campaignID string, percent int) error
	Populate(campaignID string) error
	TransitionToAdversarialPhase(campaignID string) error
	Close(campaignID string) error
	GetEvaluatedSiae(id string) (*evaluationapimodels.EvaluatedSiaeView, error)
	UploadProof(evaluatedCriteriaID, proofURL string) error
	SubmitProofs(evaluatedSiaeID string) error
	Review(evaluatedSiaeID string, req evaluationapimodels.ReviewRequest) error
	ValidateReview(evaluatedSiaeID string) error
	FreezeSubmission(evaluatedSiaeID string) error
	SetSanctions(evaluatedSiaeID string, req evaluationapimodels.SanctionsRequest) error
	ExportCampaign(campaignID string) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		db:            db.DB,
		store:         evaluationstore.NewInstance(db.DB),
		siaeStore:     evaluatedsiaestore.NewInstance(db.DB),
		appStore:      jobapplicationstore.NewInstance(db.DB),
		notifications: notificationhandler.Instance,
	}
}

type impl struct {
	db            *gorm.DB
	store         evaluationstore.Provider
	siaeStore     evaluatedsiaestore.Provider
	appStore      jobapplicationstore.Provider
	notifications notificationhandler.Provider
}

func (i impl) CreateCampaign(req evaluationapimodels.CreateCampaignRequest) (*evaluationapimodels.CampaignView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	percent := req.ChosenPercent
	now := time.Now()
	rec := dbmodels.EvaluationCampaign{
		Name:                   req.Name,
		InstitutionID:          req.InstitutionID,
		EvaluatedPeriodStartAt: req.EvaluatedPeriodStartAt,
		EvaluatedPeriodEndAt:   req.EvaluatedPeriodEndAt,
		ChosenPercent:          models.EvaluationChosenPercentDefault,
	}
	if percent != 0 {
		rec.ChosenPercent = percent
		rec.PercentSetAt = &now
	}
	if rec.Name == "" {
		rec.Name = fmt.Sprintf("Contrôle a posteriori %s", req.EvaluatedPeriodEndAt.Format("2006"))
	}
	id, err := i.store.Create(rec)
	if err != nil {
		log.WithError(err).Error("erreur de création de la campagne de contrôle")
		return nil, errors.New("erreur de création de la campagne de contrôle")
	}
	return i.GetCampaign(id)
}

func (i impl) GetCampaign(id string) (*evaluationapimodels.CampaignView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrCampaignNotFound
	}
	states := map[string]models.EvaluatedSiaeState{}
	for _, siae := range rec.EvaluatedSiaes {
		states[siae.ID] = DeriveSiaeState(siae, rec.IsEnded())
	}
	view := evaluationapimodels.ConvertCampaign(*rec, states)
	return &view, nil
}

func (i impl) ListCampaigns(institutionID string) ([]evaluationapimodels.CampaignView, error) {
	list, err := i.store.ListByInstitution(institutionID)
	if err != nil {
		return nil, err
	}
	result := make([]evaluationapimodels.CampaignView, 0, len(list))
	for _, rec := range list {
		result = append(result, evaluationapimodels.ConvertCampaign(rec, nil))
	}
	return result, nil
}

func (i impl) SetChosenPercent(campaignID string, percent int) error {
	if percent < models.EvaluationChosenPercentMin || percent > models.EvaluationChosenPercentMax {
		return errors.Errorf("le taux de contrôle doit être compris entre %d et %d",
			models.EvaluationChosenPercentMin, models.EvaluationChosenPercentMax)
	}
	rec, err := i.store.GetByID(campaignID)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrCampaignNotFound
	}
	if rec.IsPopulated() {
		return ErrCampaignAlreadyPopulated
	}
	now := time.Now()
	return i.store.Update(campaignID, map[string]interface{}{
		"chosen_percent": percent,
		"percent_set_at": now,
	})
}

// Populate draws the audited structures and the sample of their hirings,
// then opens the campaign. Running it twice is an error: the draw must stay
// stable once the structures have been notified.
func (i impl) Populate(campaignID string) error {
	acquired, err := lock.WithDelay(context.Background(), "evaluation-populate-"+campaignID, 5*time.Second, func() error {
		return i.populate(campaignID)
	})
	if err != nil {
		return err
	}
	if !acquired {
		return errors.New("le lancement de la campagne est déjà en cours")
	}
	return nil
}

func (i impl) populate(campaignID string) error {
	campaign, err := i.store.GetByID(campaignID)
	if err != nil {
		return err
	}
	if campaign == nil {
		return ErrCampaignNotFound
	}
	if campaign.IsPopulated() {
		return ErrCampaignAlreadyPopulated
	}
	if campaign.IsEnded() {
		return ErrCampaignEnded
	}
	department := ""
	if campaign.Institution != nil {
		department = campaign.Institution.Department
	}
	companies, err := i.store.ListEligibleCompanies(department)
	if err != nil {
		return err
	}
	companyIDs := make([]string, 0, len(companies))
	companyByID := map[string]dbmodels.Company{}
	for _, c := range companies {
		companyIDs = append(companyIDs, c.ID)
		companyByID[c.ID] = c
	}
	apps, err := i.appStore.ListAcceptedForCompanies(companyIDs, campaign.EvaluatedPeriodStartAt, campaign.EvaluatedPeriodEndAt)
	if err != nil {
		return err
	}
	appsByCompany := map[string][]dbmodels.JobApplication{}
	for _, app := range apps {
		appsByCompany[app.ToCompanyID] = append(appsByCompany[app.ToCompanyID], app)
	}
	auditable := make([]string, 0, len(appsByCompany))
	for companyID := range appsByCompany {
		auditable = append(auditable, companyID)
	}
	rand.Shuffle(len(auditable), func(a, b int) {
		auditable[a], auditable[b] = auditable[b], auditable[a]
	})
	auditable = auditable[:controlledCount(len(auditable), campaign.ChosenPercent)]

	now := time.Now()
	return i.db.Transaction(func(tx *gorm.DB) error {
		siaeStore := i.siaeStore.WithTx(tx)
		for _, companyID := range auditable {
			siaeID, err := siaeStore.Create(dbmodels.EvaluatedSiae{
				CampaignID: campaignID,
				CompanyID:  companyID,
			})
			if err != nil {
				return err
			}
			companyApps := appsByCompany[companyID]
			rand.Shuffle(len(companyApps), func(a, b int) {
				companyApps[a], companyApps[b] = companyApps[b], companyApps[a]
			})
			for _, app := range companyApps[:sampleSize(len(companyApps))] {
				evaluatedAppID, err := siaeStore.CreateJobApplication(dbmodels.EvaluatedJobApplication{
					EvaluatedSiaeID:  siaeID,
					JobApplicationID: app.ID,
				})
				if err != nil {
					return err
				}
				if app.EligibilityDiagnosis == nil {
					continue
				}
				for _, sc := range app.EligibilityDiagnosis.SelectedCriteria {
					_, err := siaeStore.CreateCriteria(dbmodels.EvaluatedAdministrativeCriteria{
						EvaluatedJobApplicationID: evaluatedAppID,
						CriteriaID:                sc.CriteriaID,
					})
					if err != nil {
						return err
					}
				}
			}
			company := companyByID[companyID]
			if company.Email != "" {
				err := i.notifications.Enqueue(
					tx,
					models.NotificationEvaluationOpening,
					[]string{company.Email},
					"Contrôle a posteriori de vos embauches",
					fmt.Sprintf("Votre structure %s est contrôlée sur la période du %s au %s. Merci de transmettre les justificatifs demandés.",
						company.Name,
						campaign.EvaluatedPeriodStartAt.Format("02/01/2006"),
						campaign.EvaluatedPeriodEndAt.Format("02/01/2006")),
				)
				if err != nil {
					return err
				}
			}
		}
		return i.store.WithTx(tx).Update(campaignID, map[string]interface{}{
			"evaluations_asked_at": now,
		})
	})
}

// TransitionToAdversarialPhase ends the first review round for the whole
// campaign. Structures never reviewed get their pending criteria accepted,
// the absence of an explicit refusal being no grounds to escalate; the
// explicitly refused ones enter the adversarial stage. Submission locks are
// lifted and every structure gets a result email, plus one summary for the
// institution.
func (i impl) TransitionToAdversarialPhase(campaignID string) error {
	campaign, err := i.store.GetByID(campaignID)
	if err != nil {
		return err
	}
	if campaign == nil {
		return ErrCampaignNotFound
	}
	if campaign.IsEnded() {
		return ErrCampaignEnded
	}
	siaes, err := i.siaeStore.ListByCampaign(campaignID)
	if err != nil {
		return err
	}
	now := time.Now()
	adversarialCount := 0
	return i.db.Transaction(func(tx *gorm.DB) error {
		store := i.siaeStore.WithTx(tx)
		for idx := range siaes {
			siae := &siaes[idx]
			if siae.ReviewedAt == nil {
				err := store.UpdateCriteriaForSiae(siae.ID,
					fmt.Sprintf("review_state = '%s'", models.ReviewStatePending),
					map[string]interface{}{"review_state": models.ReviewStateAccepted},
				)
				if err != nil {
					return err
				}
				err = store.Update(siae.ID, map[string]interface{}{
					"reviewed_at":           now,
					"submission_freezed_at": nil,
				})
				if err != nil {
					return err
				}
				autoAcceptCriteria(siae)
				siae.ReviewedAt = &now
			} else if siae.SubmissionFreezedAt != nil {
				err := store.Update(siae.ID, map[string]interface{}{
					"submission_freezed_at": nil,
				})
				if err != nil {
					return err
				}
			}
			state := DeriveSiaeState(*siae, false)
			if state == models.EvaluatedSiaeStateAdversarial {
				adversarialCount++
			}
			if siae.Company != nil && siae.Company.Email != "" {
				body := fmt.Sprintf("La première phase du contrôle a posteriori de %s est terminée. État : %s.",
					siae.Company.Name, resultLabel(state))
				err := i.notifications.Enqueue(tx, models.NotificationEvaluationResult,
					[]string{siae.Company.Email}, "Contrôle a posteriori : fin de la première phase", body)
				if err != nil {
					return err
				}
			}
		}
		if campaign.Institution != nil && campaign.Institution.Email != "" {
			body := fmt.Sprintf("La campagne «%s» passe en phase contradictoire : %d structure(s) sur %d en procédure.",
				campaign.Name, adversarialCount, len(siaes))
			err := i.notifications.Enqueue(tx, models.NotificationEvaluationSummary,
				[]string{campaign.Institution.Email}, "Bilan de la première phase du contrôle", body)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// autoAcceptCriteria mirrors in memory what the pending criteria update did,
// so the derived state sent in the emails matches the stored one.
func autoAcceptCriteria(siae *dbmodels.EvaluatedSiae) {
	for appIdx := range siae.EvaluatedJobApplications {
		app := &siae.EvaluatedJobApplications[appIdx]
		for cIdx := range app.Criteria {
			if app.Criteria[cIdx].ReviewState == models.ReviewStatePending {
				app.Criteria[cIdx].ReviewState = models.ReviewStateAccepted
			}
		}
	}
}

// Close ends the campaign and sends each structure its result, exactly once.
// A structure that never reached a compliant outcome is finalized as refused
// and the institution is notified so sanctions can follow.
func (i impl) Close(campaignID string) error {
	campaign, err := i.store.GetByID(campaignID)
	if err != nil {
		return err
	}
	if campaign == nil {
		return ErrCampaignNotFound
	}
	siaes, err := i.siaeStore.ListByCampaign(campaignID)
	if err != nil {
		return err
	}
	now := time.Now()
	return i.db.Transaction(func(tx *gorm.DB) error {
		if !campaign.IsEnded() {
			err := i.store.WithTx(tx).Update(campaignID, map[string]interface{}{
				"ended_at": now,
			})
			if err != nil {
				return err
			}
			campaign.EndedAt = &now
		}
		store := i.siaeStore.WithTx(tx)
		for idx := range siaes {
			siae := &siaes[idx]
			if siae.NotifiedAt != nil {
				continue
			}
			state := DeriveSiaeState(*siae, true)
			if state == models.EvaluatedSiaeStateRefused && siae.FinalReviewedAt == nil {
				updMap := map[string]interface{}{
					"final_reviewed_at": now,
				}
				if siae.ReviewedAt == nil {
					updMap["reviewed_at"] = now
				}
				if err := store.Update(siae.ID, updMap); err != nil {
					return err
				}
				siae.FinalReviewedAt = &now
			}
			name := ""
			if siae.Company != nil {
				name = siae.Company.Name
			}
			if siae.Company != nil && siae.Company.Email != "" {
				body := fmt.Sprintf("Le contrôle a posteriori de %s est terminé. Résultat : %s.", name, resultLabel(state))
				err := i.notifications.Enqueue(tx, models.NotificationEvaluationResult,
					[]string{siae.Company.Email}, "Résultat du contrôle a posteriori", body)
				if err != nil {
					return err
				}
			}
			if state == models.EvaluatedSiaeStateRefused &&
				campaign.Institution != nil && campaign.Institution.Email != "" {
				body := fmt.Sprintf("Le contrôle a posteriori de %s s'achève sur un refus. Des sanctions peuvent être prononcées.", name)
				err := i.notifications.Enqueue(tx, models.NotificationEvaluationSanction,
					[]string{campaign.Institution.Email}, "Contrôle a posteriori : structure non conforme", body)
				if err != nil {
					return err
				}
			}
			err = store.Update(siae.ID, map[string]interface{}{
				"notified_at": now,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func campaignEnded(siae *dbmodels.EvaluatedSiae) bool {
	return siae.Campaign != nil && siae.Campaign.IsEnded()
}

func resultLabel(state models.EvaluatedSiaeState) string {
	switch state {
	case models.EvaluatedSiaeStateAccepted:
		return "conforme"
	case models.EvaluatedSiaeStateRefused:
		return "non conforme"
	}
	return "en cours"
}

func (i impl) GetEvaluatedSiae(id string) (*evaluationapimodels.EvaluatedSiaeView, error) {
	rec, err := i.siaeStore.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrSiaeNotFound
	}
	view := evaluationapimodels.ConvertEvaluatedSiae(*rec, DeriveSiaeState(*rec, campaignEnded(rec)))
	return &view, nil
}

func (i impl) UploadProof(evaluatedCriteriaID, proofURL string) error {
	criteria, err := i.siaeStore.GetCriteriaByID(evaluatedCriteriaID)
	if err != nil {
		return err
	}
	if criteria == nil {
		return ErrCriteriaNotFound
	}
	siae, err := i.siaeOfCriteria(*criteria)
	if err != nil {
		return err
	}
	if campaignEnded(siae) {
		return ErrCampaignEnded
	}
	if siae.SubmissionFreezedAt != nil {
		return ErrSubmissionFrozen
	}
	if !criteria.CanUpload(siae.ReviewedAt) {
		return ErrUploadForbidden
	}
	now := time.Now()
	updMap := map[string]interface{}{
		"proof_url":   proofURL,
		"uploaded_at": now,
	}
	// A re-upload during the adversarial stage reopens the criterion.
	if criteria.SubmittedAt != nil {
		updMap["submitted_at"] = nil
		updMap["review_state"] = models.ReviewStatePending
	}
	return i.siaeStore.UpdateCriteria(evaluatedCriteriaID, updMap)
}

// SubmitProofs transmits every uploaded justification to the institution.
func (i impl) SubmitProofs(evaluatedSiaeID string) error {
	siae, err := i.siaeStore.GetByID(evaluatedSiaeID)
	if err != nil {
		return err
	}
	if siae == nil {
		return ErrSiaeNotFound
	}
	if campaignEnded(siae) {
		return ErrCampaignEnded
	}
	if siae.SubmissionFreezedAt != nil {
		return ErrSubmissionFrozen
	}
	if DeriveSiaeState(*siae, false) != models.EvaluatedSiaeStateSubmittable {
		return ErrProofsNotUploaded
	}
	now := time.Now()
	return i.siaeStore.UpdateCriteriaForSiae(evaluatedSiaeID,
		"submitted_at is null",
		map[string]interface{}{"submitted_at": now},
	)
}

func (i impl) Review(evaluatedSiaeID string, req evaluationapimodels.ReviewRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	siae, err := i.siaeStore.GetByID(evaluatedSiaeID)
	if err != nil {
		return err
	}
	if siae == nil {
		return ErrSiaeNotFound
	}
	if campaignEnded(siae) {
		return ErrCampaignEnded
	}
	state := DeriveSiaeState(*siae, false)
	if state != models.EvaluatedSiaeStateSubmitted && state != models.EvaluatedSiaeStateAdversarial {
		return errors.New("les justificatifs n'ont pas encore été transmis")
	}
	return i.db.Transaction(func(tx *gorm.DB) error {
		store := i.siaeStore.WithTx(tx)
		for _, item := range req.Items {
			reviewState := item.ReviewState
			// A refusal confirmed after the adversarial stage is final.
			if siae.ReviewedAt != nil && reviewState == models.ReviewStateRefused {
				reviewState = models.ReviewStateRefused2
			}
			err := store.UpdateCriteria(item.EvaluatedCriteriaID, map[string]interface{}{
				"review_state": reviewState,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ValidateReview stamps the review: the first validation opens the
// adversarial stage for refused criteria, the second one is final.
func (i impl) ValidateReview(evaluatedSiaeID string) error {
	siae, err := i.siaeStore.GetByID(evaluatedSiaeID)
	if err != nil {
		return err
	}
	if siae == nil {
		return ErrSiaeNotFound
	}
	now := time.Now()
	if siae.ReviewedAt == nil {
		return i.siaeStore.Update(evaluatedSiaeID, map[string]interface{}{
			"reviewed_at": now,
		})
	}
	if siae.FinalReviewedAt != nil {
		return nil
	}
	return i.siaeStore.Update(evaluatedSiaeID, map[string]interface{}{
		"final_reviewed_at":     now,
		"submission_freezed_at": nil,
	})
}

func (i impl) FreezeSubmission(evaluatedSiaeID string) error {
	now := time.Now()
	return i.siaeStore.Update(evaluatedSiaeID, map[string]interface{}{
		"submission_freezed_at": now,
	})
}

func (i impl) SetSanctions(evaluatedSiaeID string, req evaluationapimodels.SanctionsRequest) error {
	siae, err := i.siaeStore.GetByID(evaluatedSiaeID)
	if err != nil {
		return err
	}
	if siae == nil {
		return ErrSiaeNotFound
	}
	if siae.FinalReviewedAt == nil {
		return ErrNotReviewed
	}
	if DeriveSiaeState(*siae, campaignEnded(siae)) != models.EvaluatedSiaeStateRefused {
		return ErrNotRefused
	}
	rec := dbmodels.Sanctions{
		EvaluatedSiaeID:   evaluatedSiaeID,
		TrainingSession:   req.TrainingSession,
		SuspensionStartAt: req.SuspensionStartAt,
		SuspensionEndAt:   req.SuspensionEndAt,
		SubsidyCutPercent: req.SubsidyCutPercent,
		SubsidyCutFrom:    req.SubsidyCutFrom,
		SubsidyCutTo:      req.SubsidyCutTo,
		Deactivation:      req.Deactivation,
		NoSanctionReason:  req.NoSanctionReason,
	}
	return i.db.Transaction(func(tx *gorm.DB) error {
		if _, err := i.siaeStore.WithTx(tx).CreateSanctions(rec); err != nil {
			return err
		}
		if siae.Company != nil && siae.Company.Email != "" {
			return i.notifications.Enqueue(
				tx,
				models.NotificationEvaluationSanction,
				[]string{siae.Company.Email},
				"Suites du contrôle a posteriori",
				fmt.Sprintf("Des mesures ont été prononcées à l'encontre de %s à l'issue du contrôle.", siae.Company.Name),
			)
		}
		return nil
	})
}

// ExportCampaign builds the xlsx recap of a campaign for the institution.
func (i impl) ExportCampaign(campaignID string) (*bytes.Buffer, error) {
	campaign, err := i.store.GetByID(campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	list, err := i.siaeStore.ListByCampaign(campaignID)
	if err != nil {
		return nil, err
	}
	states := map[string]models.EvaluatedSiaeState{}
	for _, siae := range list {
		states[siae.ID] = DeriveSiaeState(siae, campaign.IsEnded())
	}
	return xlsexport.Instance.ExportCampaign(*campaign, list, states)
}

// siaeOfCriteria climbs from a criterion to its structure.
func (i impl) siaeOfCriteria(criteria dbmodels.EvaluatedAdministrativeCriteria) (*dbmodels.EvaluatedSiae, error) {
	app := dbmodels.EvaluatedJobApplication{}
	err := i.db.
		Model(&dbmodels.EvaluatedJobApplication{}).
		Where("id = ?", criteria.EvaluatedJobApplicationID).
		First(&app).
		Error
	if err != nil {
		return nil, err
	}
	siae, err := i.siaeStore.GetByID(app.EvaluatedSiaeID)
	if err != nil {
		return nil, err
	}
	if siae == nil {
		return nil, ErrSiaeNotFound
	}
	return siae, nil
}
