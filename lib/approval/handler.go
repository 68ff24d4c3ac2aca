package approvalhandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"itou-backend/db"
	prolongationstore "itou-backend/lib/approval/prolongation-store"
	approvalstore "itou-backend/lib/approval/store"
	suspensionstore "itou-backend/lib/approval/suspension-store"
	approvalapimodels "itou-backend/models/api/approval"
	dbmodels "itou-backend/models/db"
)

var (
	ErrNotFound            = errors.New("PASS IAE introuvable")
	ErrNotInProgress       = errors.New("le PASS IAE n'est pas en cours de validité")
	ErrSuspensionOverlap   = errors.New("une suspension existe déjà sur cette période")
	ErrProlongationOverlap = errors.New("une prolongation existe déjà sur cette période")
	ErrAlreadyStarted      = errors.New("la date de début d'un PASS IAE démarré ne peut plus être modifiée")
	ErrDeleteForbidden     = errors.New("un PASS IAE lié à une embauche ne peut pas être supprimé")
)

type Provider interface {
	Get(id string) (*approvalapimodels.ApprovalView, error)
	GetByNumber(number string) (*approvalapimodels.ApprovalView, error)
	ListForUser(userID string) ([]approvalapimodels.ApprovalView, error)
	Suspend(id, userID string, req approvalapimodels.SuspendRequest) error
	Unsuspend(id string, hiringStartAt time.Time) error
	Prolong(id, declaredByID string, req approvalapimodels.ProlongRequest) error
	UpdateStartDate(id string, newStartAt time.Time) error
	Delete(id string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:             approvalstore.NewInstance(db.DB),
		suspensionStore:   suspensionstore.NewInstance(db.DB),
		prolongationStore: prolongationstore.NewInstance(db.DB),
	}
}

type impl struct {
	store             approvalstore.Provider
	suspensionStore   suspensionstore.Provider
	prolongationStore prolongationstore.Provider
}

func (i impl) Get(id string) (*approvalapimodels.ApprovalView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithError(err).Error("erreur de lecture du PASS IAE")
		return nil, errors.New("erreur de lecture du PASS IAE")
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	view := approvalapimodels.Convert(*rec, time.Now())
	return &view, nil
}

func (i impl) GetByNumber(number string) (*approvalapimodels.ApprovalView, error) {
	rec, err := i.store.GetByNumber(number)
	if err != nil {
		log.WithError(err).Error("erreur de lecture du PASS IAE")
		return nil, errors.New("erreur de lecture du PASS IAE")
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return i.Get(rec.ID)
}

func (i impl) ListForUser(userID string) ([]approvalapimodels.ApprovalView, error) {
	list, err := i.store.ListForUser(userID)
	if err != nil {
		log.WithError(err).Error("erreur de lecture des PASS IAE")
		return nil, errors.New("erreur de lecture des PASS IAE")
	}
	now := time.Now()
	result := make([]approvalapimodels.ApprovalView, 0, len(list))
	for _, rec := range list {
		result = append(result, approvalapimodels.Convert(rec, now))
	}
	return result, nil
}

func (i impl) Suspend(id, userID string, req approvalapimodels.SuspendRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNotFound
	}
	if !rec.IsInProgress(req.StartAt) {
		return ErrNotInProgress
	}
	found, err := i.suspensionStore.HasOverlap(id, req.StartAt, req.EndAt)
	if err != nil {
		return err
	}
	if found {
		return ErrSuspensionOverlap
	}
	suspension := dbmodels.Suspension{
		ApprovalID: id,
		StartAt:    req.StartAt,
		EndAt:      req.EndAt,
		Reason:     req.Reason,
	}
	if userID != "" {
		suspension.CreatedByID = &userID
	}
	_, err = i.suspensionStore.Create(suspension)
	return err
}

// Unsuspend closes the suspension covering the hiring start date, so a new
// hiring can run on the PASS. The suspension ends the day before the hiring.
func (i impl) Unsuspend(id string, hiringStartAt time.Time) error {
	active, err := i.suspensionStore.GetActiveForApproval(id, hiringStartAt)
	if err != nil {
		return err
	}
	if active == nil {
		return nil
	}
	newEnd := hiringStartAt.AddDate(0, 0, -1)
	if newEnd.Before(active.StartAt) {
		// The suspension had not effectively started, drop it.
		return i.suspensionStore.Delete(active.ID)
	}
	return i.suspensionStore.Update(active.ID, map[string]interface{}{
		"end_at": newEnd,
	})
}

// Prolong extends the approval's end date, keeping a trace of the reason and
// of who declared it.
func (i impl) Prolong(id, declaredByID string, req approvalapimodels.ProlongRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNotFound
	}
	if !req.EndAt.After(rec.EndAt) {
		return errors.New("la prolongation doit dépasser la date de fin actuelle du PASS IAE")
	}
	startAt := rec.EndAt.AddDate(0, 0, 1)
	found, err := i.prolongationStore.HasOverlap(id, startAt, req.EndAt)
	if err != nil {
		return err
	}
	if found {
		return ErrProlongationOverlap
	}
	prolongation := dbmodels.Prolongation{
		ApprovalID: id,
		StartAt:    startAt,
		EndAt:      req.EndAt,
		Reason:     req.Reason,
	}
	if declaredByID != "" {
		prolongation.DeclaredByID = &declaredByID
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := i.prolongationStore.WithTx(tx).Create(prolongation); err != nil {
			return err
		}
		return i.store.WithTx(tx).Update(id, map[string]interface{}{
			"end_at": req.EndAt,
		})
	})
	return err
}

func (i impl) UpdateStartDate(id string, newStartAt time.Time) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNotFound
	}
	if !rec.CanPostponeStartDate(time.Now()) {
		return ErrAlreadyStarted
	}
	return i.store.Update(id, map[string]interface{}{
		"start_at": newStartAt,
		"end_at":   dbmodels.DefaultApprovalEndDate(newStartAt),
	})
}

// Delete removes an approval that never backed an accepted hiring.
func (i impl) Delete(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNotFound
	}
	count, err := i.store.CountAcceptedJobApplications(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDeleteForbidden
	}
	return i.store.Delete(id)
}
