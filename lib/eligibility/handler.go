package eligibilityhandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"itou-backend/db"
	geiqeligibilitystore "itou-backend/lib/eligibility/geiq-store"
	eligibilitystore "itou-backend/lib/eligibility/store"
	"itou-backend/models"
	eligibilityapimodels "itou-backend/models/api/eligibility"
	dbmodels "itou-backend/models/db"
)

var (
	ErrNotFound            = errors.New("diagnostic introuvable")
	ErrCriteriaRequired    = errors.New("un diagnostic employeur requiert au moins un critère de niveau 1 ou trois critères de niveau 2")
	ErrUnknownCriteria     = errors.New("critère administratif inconnu")
	ErrPrescriberNotableTo = errors.New("seul un prescripteur habilité peut valider l'éligibilité sans critères")
)

type Provider interface {
	Create(req eligibilityapimodels.CreateDiagnosisRequest) (*eligibilityapimodels.DiagnosisView, error)
	CreateGEIQ(req eligibilityapimodels.CreateGEIQDiagnosisRequest) (*eligibilityapimodels.GEIQDiagnosisView, error)
	Get(id string) (*eligibilityapimodels.DiagnosisView, error)
	GetGEIQ(id string) (*eligibilityapimodels.GEIQDiagnosisView, error)
	LastConsideredValid(jobSeekerID string) (*eligibilityapimodels.DiagnosisView, error)
	ListCriteria() ([]eligibilityapimodels.CriteriaView, error)
	ListGEIQCriteria() ([]eligibilityapimodels.CriteriaView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:     eligibilitystore.NewInstance(db.DB),
		geiqStore: geiqeligibilitystore.NewInstance(db.DB),
	}
}

type impl struct {
	store     eligibilitystore.Provider
	geiqStore geiqeligibilitystore.Provider
}

func (i impl) Create(req eligibilityapimodels.CreateDiagnosisRequest) (*eligibilityapimodels.DiagnosisView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	criteria, err := i.store.ListCriteriaByIDs(req.CriteriaIDs)
	if err != nil {
		log.WithError(err).Error("erreur de lecture des critères administratifs")
		return nil, errors.New("erreur de lecture des critères administratifs")
	}
	if len(criteria) != len(req.CriteriaIDs) {
		return nil, ErrUnknownCriteria
	}
	// A prescriber's word is enough; an employer must justify with criteria.
	if req.AuthorKind == models.AuthorKindEmployer && !meetsIAECriteria(criteria) {
		return nil, ErrCriteriaRequired
	}
	now := time.Now()
	rec := dbmodels.EligibilityDiagnosis{
		JobSeekerID: req.JobSeekerID,
		AuthorID:    req.AuthorID,
		AuthorKind:  req.AuthorKind,
		ExpiresAt:   dbmodels.DiagnosisExpirationDate(now),
	}
	if req.AuthorCompanyID != "" {
		rec.AuthorCompanyID = &req.AuthorCompanyID
	}
	if req.AuthorPrescriberOrganizationID != "" {
		rec.AuthorPrescriberOrganizationID = &req.AuthorPrescriberOrganizationID
	}
	var id string
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := i.store.WithTx(tx)
		var err error
		id, err = store.Create(rec)
		if err != nil {
			return err
		}
		return store.AddSelectedCriteria(id, req.CriteriaIDs)
	})
	if err != nil {
		log.WithError(err).Error("erreur de création du diagnostic d'éligibilité")
		return nil, errors.New("erreur de création du diagnostic d'éligibilité")
	}
	return i.Get(id)
}

func (i impl) CreateGEIQ(req eligibilityapimodels.CreateGEIQDiagnosisRequest) (*eligibilityapimodels.GEIQDiagnosisView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	criteria, err := i.geiqStore.ListCriteriaByIDs(req.CriteriaIDs)
	if err != nil {
		log.WithError(err).Error("erreur de lecture des critères administratifs GEIQ")
		return nil, errors.New("erreur de lecture des critères administratifs GEIQ")
	}
	if len(criteria) != len(req.CriteriaIDs) {
		return nil, ErrUnknownCriteria
	}
	now := time.Now()
	rec := dbmodels.GEIQEligibilityDiagnosis{
		JobSeekerID: req.JobSeekerID,
		AuthorID:    req.AuthorID,
		AuthorKind:  req.AuthorKind,
		ExpiresAt:   dbmodels.DiagnosisExpirationDate(now),
	}
	if req.AuthorGEIQID != "" {
		rec.AuthorGEIQID = &req.AuthorGEIQID
	}
	if req.AuthorPrescriberOrganizationID != "" {
		rec.AuthorPrescriberOrganizationID = &req.AuthorPrescriberOrganizationID
	}
	if err := rec.Clean(); err != nil {
		return nil, err
	}
	var id string
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := i.geiqStore.WithTx(tx)
		var err error
		id, err = store.Create(rec)
		if err != nil {
			return err
		}
		return store.AddSelectedCriteria(id, req.CriteriaIDs)
	})
	if err != nil {
		log.WithError(err).Error("erreur de création du diagnostic GEIQ")
		return nil, errors.New("erreur de création du diagnostic GEIQ")
	}
	return i.GetGEIQ(id)
}

func (i impl) Get(id string) (*eligibilityapimodels.DiagnosisView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	view := eligibilityapimodels.Convert(*rec, time.Now())
	return &view, nil
}

func (i impl) GetGEIQ(id string) (*eligibilityapimodels.GEIQDiagnosisView, error) {
	rec, err := i.geiqStore.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	criteria := make([]dbmodels.GEIQAdministrativeCriteria, 0, len(rec.SelectedCriteria))
	for _, sc := range rec.SelectedCriteria {
		if sc.Criteria != nil {
			criteria = append(criteria, *sc.Criteria)
		}
	}
	allowance := AllowanceAmount(rec.AuthorKind, criteria)
	view := eligibilityapimodels.ConvertGEIQ(*rec, allowance, time.Now())
	return &view, nil
}

func (i impl) LastConsideredValid(jobSeekerID string) (*eligibilityapimodels.DiagnosisView, error) {
	rec, err := i.store.GetLastConsideredValid(jobSeekerID, time.Now())
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	view := eligibilityapimodels.Convert(*rec, time.Now())
	return &view, nil
}

func (i impl) ListCriteria() ([]eligibilityapimodels.CriteriaView, error) {
	list, err := i.store.ListCriteria()
	if err != nil {
		return nil, err
	}
	result := make([]eligibilityapimodels.CriteriaView, 0, len(list))
	for _, c := range list {
		result = append(result, eligibilityapimodels.CriteriaView{
			ID:    c.ID,
			Level: string(c.Level),
			Name:  c.Name,
		})
	}
	return result, nil
}

func (i impl) ListGEIQCriteria() ([]eligibilityapimodels.CriteriaView, error) {
	list, err := i.geiqStore.ListCriteria()
	if err != nil {
		return nil, err
	}
	result := make([]eligibilityapimodels.CriteriaView, 0, len(list))
	for _, c := range list {
		level := ""
		if c.Level != nil {
			level = string(*c.Level)
		}
		result = append(result, eligibilityapimodels.CriteriaView{
			ID:    c.ID,
			Level: level,
			Annex: string(c.Annex),
			Name:  c.Name,
		})
	}
	return result, nil
}
