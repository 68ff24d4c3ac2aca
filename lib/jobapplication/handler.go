package jobapplication

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"itou-backend/config"
	"itou-backend/db"
	agencystore "itou-backend/lib/agency/store"
	approvalstore "itou-backend/lib/approval/store"
	suspensionstore "itou-backend/lib/approval/suspension-store"
	eligibilitystore "itou-backend/lib/eligibility/store"
	employeerecordstore "itou-backend/lib/employeerecord/store"
	gpshandler "itou-backend/lib/gps"
	jobapplicationlogstore "itou-backend/lib/jobapplication/log-store"
	jobapplicationstore "itou-backend/lib/jobapplication/store"
	notificationhandler "itou-backend/lib/notification"
	"itou-backend/models"
	jobapplicationapimodels "itou-backend/models/api/jobapplication"
	dbmodels "itou-backend/models/db"
)

type Provider interface {
	Create(req jobapplicationapimodels.CreateRequest) (*jobapplicationapimodels.JobApplicationView, error)
	Get(id string) (*jobapplicationapimodels.JobApplicationView, error)
	List(filter dbmodels.JobApplicationFilter, page, limit int) ([]jobapplicationapimodels.JobApplicationView, int64, error)
	History(id string) ([]jobapplicationapimodels.TransitionLogView, error)
	Process(id, userID string) error
	Postpone(id, userID string, req jobapplicationapimodels.PostponeRequest) error
	Accept(id, userID string, req jobapplicationapimodels.AcceptRequest) (*jobapplicationapimodels.AcceptResult, error)
	Refuse(id, userID string, req jobapplicationapimodels.RefuseRequest) error
	Cancel(id, userID string) error
	Reset(id, userID string) error
	Transfer(id, userID string, req jobapplicationapimodels.TransferRequest) error
	ExternalTransfer(id, userID string) error
	MoveToPriorToHire(id, userID string) error
	CancelPriorToHire(id, userID string) error
	AddPriorAction(id string, req jobapplicationapimodels.PriorActionRequest) error
	DeletePriorAction(id, actionID string) error
	Archive(id string, archived bool) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		db:                  db.DB,
		store:               jobapplicationstore.NewInstance(db.DB),
		logStore:            jobapplicationlogstore.NewInstance(db.DB),
		approvalStore:       approvalstore.NewInstance(db.DB),
		suspensionStore:     suspensionstore.NewInstance(db.DB),
		eligibilityStore:    eligibilitystore.NewInstance(db.DB),
		employeeRecordStore: employeerecordstore.NewInstance(db.DB),
		agencyStore:         agencystore.NewInstance(db.DB),
		notifications:       notificationhandler.Instance,
		gps:                 gpshandler.Instance,
		staffEmail:          config.Conf.App.StaffEmail,
	}
}

type impl struct {
	db                  *gorm.DB
	store               jobapplicationstore.Provider
	logStore            jobapplicationlogstore.Provider
	approvalStore       approvalstore.Provider
	suspensionStore     suspensionstore.Provider
	eligibilityStore    eligibilitystore.Provider
	employeeRecordStore employeerecordstore.Provider
	agencyStore         agencystore.Provider
	notifications       notificationhandler.Provider
	gps                 gpshandler.Provider
	staffEmail          string
}

func (i impl) Create(req jobapplicationapimodels.CreateRequest) (*jobapplicationapimodels.JobApplicationView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	rec := dbmodels.JobApplication{
		State:          models.JobApplicationStateNew,
		JobSeekerID:    req.JobSeekerID,
		SenderKind:     req.SenderKind,
		ToCompanyID:    req.ToCompanyID,
		SelectedJobIDs: req.SelectedJobIDs,
		Message:        req.Message,
		ResumeLink:     req.ResumeLink,
	}
	if req.SenderID != "" {
		rec.SenderID = &req.SenderID
	}
	if req.SenderCompanyID != "" {
		rec.SenderCompanyID = &req.SenderCompanyID
	}
	if req.SenderPrescriberOrganizationID != "" {
		rec.SenderPrescriberOrganizationID = &req.SenderPrescriberOrganizationID
	}
	id, err := i.store.Create(rec)
	if err != nil {
		log.WithError(err).Error("erreur de création de la candidature")
		return nil, errors.New("erreur de création de la candidature")
	}
	return i.Get(id)
}

func (i impl) Get(id string) (*jobapplicationapimodels.JobApplicationView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	view := jobapplicationapimodels.Convert(*rec)
	return &view, nil
}

func (i impl) List(filter dbmodels.JobApplicationFilter, page, limit int) ([]jobapplicationapimodels.JobApplicationView, int64, error) {
	list, rowCount, err := i.store.List(filter, page, limit)
	if err != nil {
		log.WithError(err).Error("erreur de lecture des candidatures")
		return nil, 0, errors.New("erreur de lecture des candidatures")
	}
	result := make([]jobapplicationapimodels.JobApplicationView, 0, len(list))
	for _, rec := range list {
		result = append(result, jobapplicationapimodels.Convert(rec))
	}
	return result, rowCount, nil
}

func (i impl) History(id string) ([]jobapplicationapimodels.TransitionLogView, error) {
	list, err := i.logStore.ListByJobApplication(id)
	if err != nil {
		return nil, err
	}
	result := make([]jobapplicationapimodels.TransitionLogView, 0, len(list))
	for _, rec := range list {
		result = append(result, jobapplicationapimodels.ConvertLog(rec))
	}
	return result, nil
}

func (i impl) Process(id, userID string) error {
	return i.simpleTransition(id, userID, models.TransitionProcess, map[string]interface{}{})
}

func (i impl) Postpone(id, userID string, req jobapplicationapimodels.PostponeRequest) error {
	return i.simpleTransition(id, userID, models.TransitionPostpone, map[string]interface{}{
		"answer_to_prescriber": req.AnswerToPrescriber,
	})
}

func (i impl) Refuse(id, userID string, req jobapplicationapimodels.RefuseRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	rec, err := i.getForUpdate(id)
	if err != nil {
		return err
	}
	return i.db.Transaction(func(tx *gorm.DB) error {
		err := i.applyTransition(tx, rec, models.TransitionRefuse, userID, map[string]interface{}{
			"refusal_reason":       req.Reason,
			"answer":               req.Answer,
			"answer_to_prescriber": req.AnswerToPrescriber,
		})
		if err != nil {
			return err
		}
		rec.RefusalReason = req.Reason
		rec.Answer = req.Answer
		rec.AnswerToPrescriber = req.AnswerToPrescriber
		return i.notifications.EnqueueRefuseEmails(tx, rec)
	})
}

func (i impl) Cancel(id, userID string) error {
	rec, err := i.getForUpdate(id)
	if err != nil {
		return err
	}
	if rec.IsFromAIStock() {
		return ErrCancelAIStock
	}
	blocking, err := i.employeeRecordStore.HasBlocking(id)
	if err != nil {
		return err
	}
	if blocking {
		return ErrCancelForbidden
	}
	approvalID := rec.ApprovalID
	return i.db.Transaction(func(tx *gorm.DB) error {
		updMap := map[string]interface{}{}
		if approvalID != nil {
			// Detach the PASS IAE before any withdrawal so the row never
			// points at a deleted approval.
			updMap["approval_id"] = nil
			updMap["approval_delivery_mode"] = ""
			updMap["approval_number_sent_by_email"] = false
			updMap["approval_number_sent_at"] = nil
		}
		err := i.applyTransition(tx, rec, models.TransitionCancel, userID, updMap)
		if err != nil {
			return err
		}
		// An employee record never transmitted to the paying agency is dropped
		// with its hiring.
		if err := i.employeeRecordStore.WithTx(tx).DeleteUnsent(rec.ID); err != nil {
			return err
		}
		// The PASS IAE issued for this hiring is withdrawn when no other
		// accepted hiring runs on it.
		if approvalID != nil {
			store := i.approvalStore.WithTx(tx)
			count, err := store.CountAcceptedJobApplications(*approvalID)
			if err != nil {
				return err
			}
			if count == 0 {
				if err := store.Delete(*approvalID); err != nil {
					return err
				}
			}
		}
		return i.notifications.EnqueueCancelEmail(tx, rec)
	})
}

func (i impl) Reset(id, userID string) error {
	return i.simpleTransition(id, userID, models.TransitionReset, map[string]interface{}{})
}

func (i impl) Transfer(id, userID string, req jobapplicationapimodels.TransferRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	rec, err := i.getForUpdate(id)
	if err != nil {
		return err
	}
	if rec.ToCompanyID == req.TargetCompanyID {
		return ErrTransferSameSiae
	}
	// The acting user must belong to both the origin and the target
	// structure.
	for _, companyID := range []string{rec.ToCompanyID, req.TargetCompanyID} {
		member, err := i.store.IsActiveMember(userID, companyID)
		if err != nil {
			return err
		}
		if !member {
			return ErrTransferNotMember
		}
	}
	now := time.Now()
	return i.db.Transaction(func(tx *gorm.DB) error {
		updMap := map[string]interface{}{
			"to_company_id":       req.TargetCompanyID,
			"transferred_at":      now,
			"transferred_by_id":   userID,
			"transferred_from_id": rec.ToCompanyID,
			"answer":              "",
		}
		// A diagnosis made by the origin structure does not follow the
		// application; a prescriber-made one does.
		var dropDiagnosisID string
		if rec.EligibilityDiagnosisID != nil {
			diagnosis, err := i.eligibilityStore.WithTx(tx).GetByID(*rec.EligibilityDiagnosisID)
			if err != nil {
				return err
			}
			if diagnosis != nil && diagnosis.AuthorKind == models.AuthorKindEmployer {
				updMap["eligibility_diagnosis_id"] = nil
				dropDiagnosisID = diagnosis.ID
			}
		}
		if err := i.applyTransition(tx, rec, models.TransitionTransfer, userID, updMap); err != nil {
			return err
		}
		if dropDiagnosisID != "" {
			return i.eligibilityStore.WithTx(tx).Delete(dropDiagnosisID)
		}
		return nil
	})
}

func (i impl) ExternalTransfer(id, userID string) error {
	rec, err := i.getForUpdate(id)
	if err != nil {
		return err
	}
	now := time.Now()
	updMap := map[string]interface{}{
		"transferred_at": now,
		"refusal_reason": models.RefusalReasonAutoTransfer,
		"answer":         "",
	}
	if userID != "" {
		updMap["transferred_by_id"] = userID
	}
	return i.db.Transaction(func(tx *gorm.DB) error {
		return i.applyTransition(tx, rec, models.TransitionExternalTransfer, userID, updMap)
	})
}

func (i impl) MoveToPriorToHire(id, userID string) error {
	rec, err := i.getForUpdate(id)
	if err != nil {
		return err
	}
	if rec.ToCompany == nil || rec.ToCompany.Kind != models.CompanyKindGEIQ {
		return ErrPriorActionGEIQ
	}
	return i.db.Transaction(func(tx *gorm.DB) error {
		return i.applyTransition(tx, rec, models.TransitionMoveToPriorToHire, userID, map[string]interface{}{})
	})
}

func (i impl) CancelPriorToHire(id, userID string) error {
	return i.simpleTransition(id, userID, models.TransitionCancelPriorToHire, map[string]interface{}{})
}

func (i impl) AddPriorAction(id string, req jobapplicationapimodels.PriorActionRequest) error {
	rec, err := i.getForUpdate(id)
	if err != nil {
		return err
	}
	if rec.ToCompany == nil || rec.ToCompany.Kind != models.CompanyKindGEIQ {
		return ErrPriorActionGEIQ
	}
	action := dbmodels.PriorAction{
		JobApplicationID: id,
		Kind:             req.Kind,
		StartAt:          req.StartAt,
		EndAt:            req.EndAt,
	}
	if err := action.Clean(); err != nil {
		return err
	}
	return i.db.Save(&action).Error
}

func (i impl) DeletePriorAction(id, actionID string) error {
	tx := i.db.
		Where("id = ?", actionID).
		Where("job_application_id = ?", id).
		Delete(&dbmodels.PriorAction{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("action préalable introuvable")
	}
	return nil
}

func (i impl) Archive(id string, archived bool) error {
	rec, err := i.getForUpdate(id)
	if err != nil {
		return err
	}
	if archived && !rec.CanBeArchived() {
		return errors.Errorf("une candidature à l'état «%s» ne peut pas être archivée", rec.State)
	}
	return i.store.Update(id, map[string]interface{}{
		"archived": archived,
	})
}

// Accept runs the hiring: workflow transition, PASS IAE issuance or reuse,
// sibling invalidation, notifications and agency report, all in one
// transaction.
func (i impl) Accept(id, userID string, req jobapplicationapimodels.AcceptRequest) (*jobapplicationapimodels.AcceptResult, error) {
	if req.HiringStartAt.IsZero() {
		return nil, ErrHiringStartMissing
	}
	rec, err := i.getForUpdate(id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(rec.State, models.TransitionAccept) {
		_, err := NextState(rec.State, models.TransitionAccept)
		return nil, err
	}
	if rec.ToCompany == nil || rec.JobSeeker == nil {
		return nil, errors.New("candidature incomplète : structure ou candidat manquant")
	}
	now := time.Now()

	latestApproval, err := i.approvalStore.GetLatestForUser(rec.JobSeekerID)
	if err != nil {
		return nil, err
	}
	diagnosis, err := i.eligibilityStore.GetLastConsideredValid(rec.JobSeekerID, now)
	if err != nil {
		return nil, err
	}

	plan, err := planAccept(acceptContext{
		app:            rec,
		company:        rec.ToCompany,
		jobSeeker:      rec.JobSeeker,
		latestApproval: latestApproval,
		diagnosis:      diagnosis,
		hiringStartAt:  req.HiringStartAt,
		now:            now,
	})
	if err != nil {
		return nil, err
	}

	result := jobapplicationapimodels.AcceptResult{}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		updMap := map[string]interface{}{
			"hiring_start_at":      req.HiringStartAt,
			"answer":               req.Answer,
			"answer_to_prescriber": req.AnswerToPrescriber,
		}
		if req.HiringEndAt != nil {
			updMap["hiring_end_at"] = *req.HiringEndAt
		}
		if req.HiredJobID != "" {
			updMap["hired_job_id"] = req.HiredJobID
		}
		if diagnosis != nil && rec.ToCompany.IsSubjectToEligibilityRules() {
			updMap["eligibility_diagnosis_id"] = diagnosis.ID
		}

		var approval *dbmodels.Approval
		if plan.needsApproval {
			updMap["approval_delivery_mode"] = plan.deliveryMode
			switch {
			case plan.reuseApprovalID != "":
				approval = latestApproval
				if err := i.liftSuspension(tx, plan.reuseApprovalID, req.HiringStartAt); err != nil {
					return err
				}
				if plan.pullStartDateTo != nil {
					newStart := *plan.pullStartDateTo
					err := i.approvalStore.WithTx(tx).Update(plan.reuseApprovalID, map[string]interface{}{
						"start_at": newStart,
						"end_at":   dbmodels.DefaultApprovalEndDate(newStart),
					})
					if err != nil {
						return err
					}
				}
				updMap["approval_id"] = plan.reuseApprovalID
			case plan.createApproval != nil:
				store := i.approvalStore.WithTx(tx)
				number, err := store.NextNumber()
				if err != nil {
					return err
				}
				newApproval := *plan.createApproval
				newApproval.Number = number
				approvalID, err := store.Create(newApproval)
				if err != nil {
					return err
				}
				newApproval.ID = approvalID
				approval = &newApproval
				updMap["approval_id"] = approvalID
			}
		}

		if err := i.applyTransition(tx, rec, models.TransitionAccept, userID, updMap); err != nil {
			return err
		}

		// Sibling applications still pending become obsolete: the job
		// seeker has found a position.
		siblings, err := i.store.WithTx(tx).ListPendingForJobSeeker(rec.JobSeekerID, rec.ID)
		if err != nil {
			return err
		}
		for idx := range siblings {
			err := i.applyTransition(tx, &siblings[idx], models.TransitionRenderObsolete, "", map[string]interface{}{})
			if err != nil {
				return err
			}
		}
		result.ObsoleteCount = len(siblings)

		rec.Answer = req.Answer
		rec.AnswerToPrescriber = req.AnswerToPrescriber
		if err := i.notifications.EnqueueAcceptEmails(tx, rec); err != nil {
			return err
		}
		if approval != nil {
			result.ApprovalNumber = approval.Number
			if err := i.notifications.EnqueueApprovalDelivery(tx, rec, approval); err != nil {
				return err
			}
			_, err := i.agencyStore.WithTx(tx).Create(dbmodels.AgencyNotification{
				JobApplicationID: rec.ID,
				ApprovalNumber:   approval.Number,
			})
			if err != nil {
				return err
			}
			// The employee record opens the payroll declaration to the paying
			// agency for this hiring.
			if rec.CreateEmployeeRecord {
				_, err := i.employeeRecordStore.WithTx(tx).Create(dbmodels.EmployeeRecord{
					JobApplicationID: rec.ID,
					ApprovalNumber:   approval.Number,
					ASPID:            rec.ToCompany.ConventionASPID,
				})
				if err != nil {
					return err
				}
			}
		} else if plan.needsApproval && plan.deliveryMode == models.ApprovalDeliveryModeManual {
			if err := i.notifications.EnqueueManualDeliveryRequired(tx, rec, i.staffEmail); err != nil {
				return err
			}
		}

		if rec.IsSentByProxy() && rec.SenderID != nil {
			if err := i.gps.FollowBeneficiary(tx, rec.JobSeekerID, *rec.SenderID, false); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.DeliveryMode = string(plan.deliveryMode)
	view, err := i.Get(id)
	if err != nil {
		return nil, err
	}
	result.JobApplication = *view
	return &result, nil
}

// liftSuspension closes the suspension covering the hiring start so the
// reused PASS is active on day one.
func (i impl) liftSuspension(tx *gorm.DB, approvalID string, hiringStartAt time.Time) error {
	store := i.suspensionStore.WithTx(tx)
	active, err := store.GetActiveForApproval(approvalID, hiringStartAt)
	if err != nil {
		return err
	}
	if active == nil {
		return nil
	}
	newEnd := hiringStartAt.AddDate(0, 0, -1)
	if newEnd.Before(active.StartAt) {
		return store.Delete(active.ID)
	}
	return store.Update(active.ID, map[string]interface{}{
		"end_at": newEnd,
	})
}

func (i impl) getForUpdate(id string) (*dbmodels.JobApplication, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithError(err).Error("erreur de lecture de la candidature")
		return nil, errors.New("erreur de lecture de la candidature")
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (i impl) simpleTransition(id, userID string, transition models.JobApplicationTransition, updMap map[string]interface{}) error {
	rec, err := i.getForUpdate(id)
	if err != nil {
		return err
	}
	return i.db.Transaction(func(tx *gorm.DB) error {
		return i.applyTransition(tx, rec, transition, userID, updMap)
	})
}

// applyTransition resolves the target state, persists it and appends the
// history row, inside the caller's transaction.
func (i impl) applyTransition(tx *gorm.DB, rec *dbmodels.JobApplication, transition models.JobApplicationTransition, userID string, updMap map[string]interface{}) error {
	toState, err := NextState(rec.State, transition)
	if err != nil {
		return err
	}
	updMap["state"] = toState
	if err := i.store.WithTx(tx).Update(rec.ID, updMap); err != nil {
		return err
	}
	logRec := dbmodels.JobApplicationTransitionLog{
		JobApplicationID: rec.ID,
		Transition:       transition,
		FromState:        rec.State,
		ToState:          toState,
		Timestamp:        time.Now(),
	}
	if userID != "" {
		logRec.UserID = &userID
	}
	if _, err := i.logStore.WithTx(tx).Create(logRec); err != nil {
		return err
	}
	rec.State = toState
	return nil
}
