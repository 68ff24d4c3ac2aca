package evaluationhandler

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	evaluatedsiaestore "itou-backend/lib/evaluation/siae-store"
	evaluationstore "itou-backend/lib/evaluation/store"
	notificationhandler "itou-backend/lib/notification"
	"itou-backend/models"
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

type fakeCampaignStore struct {
	evaluationstore.Provider
	campaign *dbmodels.EvaluationCampaign
	updates  []map[string]interface{}
}

func (f *fakeCampaignStore) WithTx(tx *gorm.DB) evaluationstore.Provider { return f }

func (f *fakeCampaignStore) GetByID(id string) (*dbmodels.EvaluationCampaign, error) {
	return f.campaign, nil
}

func (f *fakeCampaignStore) Update(id string, updMap map[string]interface{}) error {
	f.updates = append(f.updates, updMap)
	return nil
}

type fakeSiaeStore struct {
	evaluatedsiaestore.Provider
	siaes   []dbmodels.EvaluatedSiae
	updates map[string][]map[string]interface{}
}

func (f *fakeSiaeStore) WithTx(tx *gorm.DB) evaluatedsiaestore.Provider { return f }

func (f *fakeSiaeStore) ListByCampaign(campaignID string) ([]dbmodels.EvaluatedSiae, error) {
	return f.siaes, nil
}

func (f *fakeSiaeStore) Update(id string, updMap map[string]interface{}) error {
	if f.updates == nil {
		f.updates = map[string][]map[string]interface{}{}
	}
	f.updates[id] = append(f.updates[id], updMap)
	return nil
}

type sentEmail struct {
	kind     models.NotificationKind
	toEmails []string
	body     string
}

type fakeNotifications struct {
	notificationhandler.Provider
	sent []sentEmail
}

func (f *fakeNotifications) Enqueue(tx *gorm.DB, kind models.NotificationKind, toEmails []string, subject, body string) error {
	f.sent = append(f.sent, sentEmail{kind: kind, toEmails: toEmails, body: body})
	return nil
}

func TestCloseCampaign(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	newCampaign := func() *dbmodels.EvaluationCampaign {
		return &dbmodels.EvaluationCampaign{
			BaseModel: dbmodels.BaseModel{ID: "campaign-1"},
			Name:      "Contrôle a posteriori 2023",
			Institution: &dbmodels.Institution{
				Email: "ddets@example.com",
			},
		}
	}
	silentSiae := func(id string) dbmodels.EvaluatedSiae {
		return dbmodels.EvaluatedSiae{
			BaseModel: dbmodels.BaseModel{ID: id},
			Company: &dbmodels.Company{
				Name:  "Les Jardins de Cocagne",
				Email: "siae-" + id + "@example.com",
			},
		}
	}

	t.Run(`a structure that never submitted is finalized as refused`, func(t *testing.T) {
		gdb, mock := newTxDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		campaignStore := &fakeCampaignStore{campaign: newCampaign()}
		siaeStore := &fakeSiaeStore{siaes: []dbmodels.EvaluatedSiae{silentSiae("siae-1")}}
		notifications := &fakeNotifications{}
		handler := impl{db: gdb, store: campaignStore, siaeStore: siaeStore, notifications: notifications}

		require.Nil(t, handler.Close("campaign-1"))

		require.Len(t, campaignStore.updates, 1)
		require.Contains(t, campaignStore.updates[0], "ended_at")

		updates := siaeStore.updates["siae-1"]
		require.Len(t, updates, 2)
		require.Contains(t, updates[0], "final_reviewed_at")
		require.Contains(t, updates[0], "reviewed_at")
		require.Contains(t, updates[1], "notified_at")

		require.Len(t, notifications.sent, 2)
		require.Equal(t, models.NotificationEvaluationResult, notifications.sent[0].kind)
		require.Equal(t, []string{"siae-siae-1@example.com"}, notifications.sent[0].toEmails)
		require.Contains(t, notifications.sent[0].body, "non conforme")
		require.Equal(t, models.NotificationEvaluationSanction, notifications.sent[1].kind)
		require.Equal(t, []string{"ddets@example.com"}, notifications.sent[1].toEmails)
	})

	t.Run(`a compliant structure keeps its acceptance and skips the sanction email`, func(t *testing.T) {
		gdb, mock := newTxDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		siae := silentSiae("siae-2")
		siae.ReviewedAt = &now
		siae.EvaluatedJobApplications = []dbmodels.EvaluatedJobApplication{{
			Criteria: []dbmodels.EvaluatedAdministrativeCriteria{
				{UploadedAt: &now, SubmittedAt: &now, ReviewState: models.ReviewStateAccepted},
			},
		}}

		campaignStore := &fakeCampaignStore{campaign: newCampaign()}
		siaeStore := &fakeSiaeStore{siaes: []dbmodels.EvaluatedSiae{siae}}
		notifications := &fakeNotifications{}
		handler := impl{db: gdb, store: campaignStore, siaeStore: siaeStore, notifications: notifications}

		require.Nil(t, handler.Close("campaign-1"))

		updates := siaeStore.updates["siae-2"]
		require.Len(t, updates, 1)
		require.Contains(t, updates[0], "notified_at")

		require.Len(t, notifications.sent, 1)
		require.Equal(t, models.NotificationEvaluationResult, notifications.sent[0].kind)
		require.Contains(t, notifications.sent[0].body, "conforme")
		require.NotContains(t, notifications.sent[0].body, "non conforme")
	})

	t.Run(`a second close sends nothing`, func(t *testing.T) {
		gdb, mock := newTxDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		campaign := newCampaign()
		campaign.EndedAt = &now
		siae := silentSiae("siae-3")
		siae.FinalReviewedAt = &now
		siae.NotifiedAt = &now

		campaignStore := &fakeCampaignStore{campaign: campaign}
		siaeStore := &fakeSiaeStore{siaes: []dbmodels.EvaluatedSiae{siae}}
		notifications := &fakeNotifications{}
		handler := impl{db: gdb, store: campaignStore, siaeStore: siaeStore, notifications: notifications}

		require.Nil(t, handler.Close("campaign-1"))

		require.Empty(t, campaignStore.updates)
		require.Empty(t, siaeStore.updates)
		require.Empty(t, notifications.sent)
	})

	t.Run(`unknown campaign`, func(t *testing.T) {
		gdb, _ := newTxDB(t)
		handler := impl{db: gdb, store: &fakeCampaignStore{}, siaeStore: &fakeSiaeStore{}, notifications: &fakeNotifications{}}
		require.Equal(t, ErrCampaignNotFound, handler.Close("missing"))
	})
}
