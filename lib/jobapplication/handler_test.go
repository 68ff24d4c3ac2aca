package jobapplication

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	agencystore "itou-backend/lib/agency/store"
	approvalstore "itou-backend/lib/approval/store"
	eligibilitystore "itou-backend/lib/eligibility/store"
	employeerecordstore "itou-backend/lib/employeerecord/store"
	jobapplicationlogstore "itou-backend/lib/jobapplication/log-store"
	jobapplicationstore "itou-backend/lib/jobapplication/store"
	notificationhandler "itou-backend/lib/notification"
	"itou-backend/models"
	jobapplicationapimodels "itou-backend/models/api/jobapplication"
	dbmodels "itou-backend/models/db"
)

func newTxDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.Nil(t, err)
	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.Nil(t, err)
	t.Cleanup(func() {
		require.Nil(t, mock.ExpectationsWereMet())
	})
	return gdb, mock
}

type fakeAppStore struct {
	jobapplicationstore.Provider
	rec     *dbmodels.JobApplication
	updates []map[string]interface{}
}

func (f *fakeAppStore) WithTx(tx *gorm.DB) jobapplicationstore.Provider { return f }

func (f *fakeAppStore) GetByID(id string) (*dbmodels.JobApplication, error) { return f.rec, nil }

func (f *fakeAppStore) Update(id string, updMap map[string]interface{}) error {
	f.updates = append(f.updates, updMap)
	return nil
}

func (f *fakeAppStore) ListPendingForJobSeeker(jobSeekerID, excludeID string) ([]dbmodels.JobApplication, error) {
	return nil, nil
}

type fakeLogStore struct {
	jobapplicationlogstore.Provider
	logs []dbmodels.JobApplicationTransitionLog
}

func (f *fakeLogStore) WithTx(tx *gorm.DB) jobapplicationlogstore.Provider { return f }

func (f *fakeLogStore) Create(rec dbmodels.JobApplicationTransitionLog) (string, error) {
	f.logs = append(f.logs, rec)
	return "log-1", nil
}

type fakeApprovalStore struct {
	approvalstore.Provider
	latest        *dbmodels.Approval
	acceptedCount int64
	created       []dbmodels.Approval
	deletedIDs    []string
}

func (f *fakeApprovalStore) WithTx(tx *gorm.DB) approvalstore.Provider { return f }

func (f *fakeApprovalStore) GetLatestForUser(userID string) (*dbmodels.Approval, error) {
	return f.latest, nil
}

func (f *fakeApprovalStore) NextNumber() (string, error) {
	return dbmodels.ApprovalNumberPrefix + "0000042", nil
}

func (f *fakeApprovalStore) Create(rec dbmodels.Approval) (string, error) {
	f.created = append(f.created, rec)
	return "approval-created", nil
}

func (f *fakeApprovalStore) CountAcceptedJobApplications(approvalID string) (int64, error) {
	return f.acceptedCount, nil
}

func (f *fakeApprovalStore) Delete(id string) error {
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

type fakeEligibilityStore struct {
	eligibilitystore.Provider
	diagnosis *dbmodels.EligibilityDiagnosis
}

func (f *fakeEligibilityStore) WithTx(tx *gorm.DB) eligibilitystore.Provider { return f }

func (f *fakeEligibilityStore) GetLastConsideredValid(jobSeekerID string, now time.Time) (*dbmodels.EligibilityDiagnosis, error) {
	return f.diagnosis, nil
}

type fakeEmployeeRecordStore struct {
	employeerecordstore.Provider
	blocking   bool
	created    []dbmodels.EmployeeRecord
	deletedFor []string
}

func (f *fakeEmployeeRecordStore) WithTx(tx *gorm.DB) employeerecordstore.Provider { return f }

func (f *fakeEmployeeRecordStore) HasBlocking(jobApplicationID string) (bool, error) {
	return f.blocking, nil
}

func (f *fakeEmployeeRecordStore) Create(rec dbmodels.EmployeeRecord) (string, error) {
	f.created = append(f.created, rec)
	return "record-1", nil
}

func (f *fakeEmployeeRecordStore) DeleteUnsent(jobApplicationID string) error {
	f.deletedFor = append(f.deletedFor, jobApplicationID)
	return nil
}

type fakeAgencyStore struct {
	agencystore.Provider
	created []dbmodels.AgencyNotification
}

func (f *fakeAgencyStore) WithTx(tx *gorm.DB) agencystore.Provider { return f }

func (f *fakeAgencyStore) Create(rec dbmodels.AgencyNotification) (string, error) {
	f.created = append(f.created, rec)
	return "agency-1", nil
}

type fakeNotifier struct {
	notificationhandler.Provider
	acceptFor  []string
	cancelFor  []string
	deliveries []string
}

func (f *fakeNotifier) EnqueueAcceptEmails(tx *gorm.DB, app *dbmodels.JobApplication) error {
	f.acceptFor = append(f.acceptFor, app.ID)
	return nil
}

func (f *fakeNotifier) EnqueueCancelEmail(tx *gorm.DB, app *dbmodels.JobApplication) error {
	f.cancelFor = append(f.cancelFor, app.ID)
	return nil
}

func (f *fakeNotifier) EnqueueApprovalDelivery(tx *gorm.DB, app *dbmodels.JobApplication, approval *dbmodels.Approval) error {
	f.deliveries = append(f.deliveries, approval.Number)
	return nil
}

func TestCancel(t *testing.T) {
	approvalID := "approval-1"

	acceptedRec := func() *dbmodels.JobApplication {
		return &dbmodels.JobApplication{
			BaseModel:            dbmodels.BaseModel{ID: "app-1"},
			State:                models.JobApplicationStateAccepted,
			JobSeekerID:          "seeker-1",
			ApprovalID:           &approvalID,
			ApprovalDeliveryMode: models.ApprovalDeliveryModeAutomatic,
		}
	}

	t.Run(`cancel detaches the pass before withdrawing it`, func(t *testing.T) {
		gdb, mock := newTxDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		store := &fakeAppStore{rec: acceptedRec()}
		approvals := &fakeApprovalStore{}
		records := &fakeEmployeeRecordStore{}
		notifier := &fakeNotifier{}
		handler := impl{
			db:                  gdb,
			store:               store,
			logStore:            &fakeLogStore{},
			approvalStore:       approvals,
			employeeRecordStore: records,
			notifications:       notifier,
		}

		require.Nil(t, handler.Cancel("app-1", "user-1"))

		require.Len(t, store.updates, 1)
		updMap := store.updates[0]
		require.Equal(t, models.JobApplicationStateCancelled, updMap["state"])
		require.Contains(t, updMap, "approval_id")
		require.Nil(t, updMap["approval_id"])
		require.Equal(t, "", updMap["approval_delivery_mode"])
		require.Equal(t, false, updMap["approval_number_sent_by_email"])

		require.Equal(t, []string{approvalID}, approvals.deletedIDs)
		require.Equal(t, []string{"app-1"}, records.deletedFor)
		require.Equal(t, []string{"app-1"}, notifier.cancelFor)
	})

	t.Run(`the pass survives when another accepted hiring runs on it`, func(t *testing.T) {
		gdb, mock := newTxDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		store := &fakeAppStore{rec: acceptedRec()}
		approvals := &fakeApprovalStore{acceptedCount: 1}
		handler := impl{
			db:                  gdb,
			store:               store,
			logStore:            &fakeLogStore{},
			approvalStore:       approvals,
			employeeRecordStore: &fakeEmployeeRecordStore{},
			notifications:       &fakeNotifier{},
		}

		require.Nil(t, handler.Cancel("app-1", "user-1"))

		require.Empty(t, approvals.deletedIDs)
		require.Len(t, store.updates, 1)
		require.Contains(t, store.updates[0], "approval_id")
		require.Nil(t, store.updates[0]["approval_id"])
	})

	t.Run(`a transmitted employee record blocks the cancellation`, func(t *testing.T) {
		gdb, _ := newTxDB(t)

		store := &fakeAppStore{rec: acceptedRec()}
		records := &fakeEmployeeRecordStore{blocking: true}
		handler := impl{
			db:                  gdb,
			store:               store,
			logStore:            &fakeLogStore{},
			approvalStore:       &fakeApprovalStore{},
			employeeRecordStore: records,
			notifications:       &fakeNotifier{},
		}

		require.Equal(t, ErrCancelForbidden, handler.Cancel("app-1", "user-1"))
		require.Empty(t, store.updates)
		require.Empty(t, records.deletedFor)
	})
}

func TestExternalTransfer(t *testing.T) {
	t.Run(`a pending application leaves the platform as refused with its lineage`, func(t *testing.T) {
		gdb, mock := newTxDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		store := &fakeAppStore{rec: &dbmodels.JobApplication{
			BaseModel: dbmodels.BaseModel{ID: "app-1"},
			State:     models.JobApplicationStateProcessing,
		}}
		logs := &fakeLogStore{}
		handler := impl{db: gdb, store: store, logStore: logs}

		require.Nil(t, handler.ExternalTransfer("app-1", "user-1"))

		require.Len(t, store.updates, 1)
		updMap := store.updates[0]
		require.Equal(t, models.JobApplicationStateRefused, updMap["state"])
		require.Equal(t, models.RefusalReasonAutoTransfer, updMap["refusal_reason"])
		require.Equal(t, "user-1", updMap["transferred_by_id"])
		require.Contains(t, updMap, "transferred_at")
		require.Equal(t, "", updMap["answer"])

		require.Len(t, logs.logs, 1)
		require.Equal(t, models.TransitionExternalTransfer, logs.logs[0].Transition)
	})

	t.Run(`an accepted hiring cannot be transferred out`, func(t *testing.T) {
		gdb, mock := newTxDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		store := &fakeAppStore{rec: &dbmodels.JobApplication{
			BaseModel: dbmodels.BaseModel{ID: "app-1"},
			State:     models.JobApplicationStateAccepted,
		}}
		handler := impl{db: gdb, store: store, logStore: &fakeLogStore{}}

		require.NotNil(t, handler.ExternalTransfer("app-1", "user-1"))
		require.Empty(t, store.updates)
	})
}

func TestAcceptCreatesEmployeeRecord(t *testing.T) {
	now := time.Now()
	hiringStartAt := now.AddDate(0, 0, 7)
	aspID := 1234

	rec := &dbmodels.JobApplication{
		BaseModel:   dbmodels.BaseModel{ID: "app-1"},
		State:       models.JobApplicationStateProcessing,
		JobSeekerID: "seeker-1",
		JobSeeker: &dbmodels.User{
			BaseModel: dbmodels.BaseModel{ID: "seeker-1"},
			NIR:       "269054958815780",
		},
		ToCompanyID: "company-1",
		ToCompany: &dbmodels.Company{
			BaseModel:       dbmodels.BaseModel{ID: "company-1"},
			Kind:            models.CompanyKindEI,
			ConventionASPID: &aspID,
		},
		CreateEmployeeRecord: true,
	}
	diagnosis := &dbmodels.EligibilityDiagnosis{
		BaseModel:   dbmodels.BaseModel{ID: "diag-1"},
		JobSeekerID: "seeker-1",
		AuthorKind:  models.AuthorKindPrescriber,
		ExpiresAt:   now.AddDate(0, 3, 0),
	}

	gdb, mock := newTxDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	records := &fakeEmployeeRecordStore{}
	agency := &fakeAgencyStore{}
	notifier := &fakeNotifier{}
	handler := impl{
		db:                  gdb,
		store:               &fakeAppStore{rec: rec},
		logStore:            &fakeLogStore{},
		approvalStore:       &fakeApprovalStore{},
		eligibilityStore:    &fakeEligibilityStore{diagnosis: diagnosis},
		employeeRecordStore: records,
		agencyStore:         agency,
		notifications:       notifier,
	}

	result, err := handler.Accept("app-1", "user-1", jobapplicationapimodels.AcceptRequest{
		HiringStartAt: hiringStartAt,
	})
	require.Nil(t, err)
	require.Equal(t, dbmodels.ApprovalNumberPrefix+"0000042", result.ApprovalNumber)

	require.Len(t, records.created, 1)
	require.Equal(t, "app-1", records.created[0].JobApplicationID)
	require.Equal(t, dbmodels.ApprovalNumberPrefix+"0000042", records.created[0].ApprovalNumber)
	require.Equal(t, &aspID, records.created[0].ASPID)

	require.Len(t, agency.created, 1)
	require.Equal(t, []string{dbmodels.ApprovalNumberPrefix + "0000042"}, notifier.deliveries)
	require.Equal(t, []string{"app-1"}, notifier.acceptFor)
}
