package notificationstore

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"itou-backend/models"
)

func newMockStore(t *testing.T) (Provider, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.Nil(t, err)
	t.Cleanup(func() {
		require.Nil(t, mock.ExpectationsWereMet())
		db.Close()
	})

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.Nil(t, err)

	return NewInstance(gormDB), mock
}

func TestListPending(t *testing.T) {
	t.Run(`only unsent notifications below the attempt cap`, func(t *testing.T) {
		store, mock := newMockStore(t)

		rows := sqlmock.NewRows([]string{"id", "kind", "subject", "attempts"}).
			AddRow("notif-1", string(models.NotificationAcceptForJobSeeker), "Candidature acceptée", 0).
			AddRow("notif-2", string(models.NotificationCancel), "Embauche annulée", 2)
		mock.ExpectQuery(`SELECT \* FROM "notifications" WHERE sent_at is null AND attempts < \$1`).
			WithArgs(3, 10).
			WillReturnRows(rows)

		list, err := store.ListPending(10, 3)
		require.Nil(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "notif-1", list[0].ID)
		require.Equal(t, 2, list[1].Attempts)
	})

	t.Run(`empty outbox`, func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery(`SELECT \* FROM "notifications"`).
			WithArgs(3, 10).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		list, err := store.ListPending(10, 3)
		require.Nil(t, err)
		require.Empty(t, list)
	})
}

func TestMarkSent(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE "notifications" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.Nil(t, store.MarkSent("notif-1"))
}

func TestMarkFailed(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE "notifications" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.Nil(t, store.MarkFailed("notif-1", "connexion smtp refusée"))
}
