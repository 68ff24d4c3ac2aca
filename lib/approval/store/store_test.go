package approvalstore

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

func TestCountAcceptedJobApplications(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"count"}).AddRow(2)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "job_applications" WHERE approval_id = \$1 AND state = \$2`).
		WithArgs("approval-1", string(models.JobApplicationStateAccepted)).
		WillReturnRows(rows)

	count, err := store.CountAcceptedJobApplications("approval-1")
	require.Nil(t, err)
	require.Equal(t, int64(2), count)
}
