package employeerecordstore

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
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

func TestDeleteUnsent(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM "employee_records" WHERE job_application_id = \$1 AND status not in \(\$2,\$3\)`).
		WithArgs("app-1", "SENT", "PROCESSED").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.Nil(t, store.DeleteUnsent("app-1"))
}

func TestHasBlocking(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"count(*) > 0"}).AddRow(true)
	mock.ExpectQuery(`SELECT count\(\*\) > 0 FROM "employee_records" WHERE job_application_id = \$1 AND status in \(\$2,\$3\)`).
		WithArgs("app-1", "SENT", "PROCESSED").
		WillReturnRows(rows)

	found, err := store.HasBlocking("app-1")
	require.Nil(t, err)
	require.True(t, found)
}
