package jobapplicationstore

import (
	"testing"
	"time"

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

func TestListAcceptedForCompanies(t *testing.T) {
	periodStart := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)

	t.Run(`only self-prescribed hirings on a platform pass are auditable`, func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery(`SELECT \* FROM "job_applications" `+
			`join eligibility_diagnoses as d on d\.id = job_applications\.eligibility_diagnosis_id `+
			`join approvals as a on a\.id = job_applications\.approval_id `+
			`WHERE job_applications\.state = \$1 `+
			`AND job_applications\.to_company_id in \(\$2\) `+
			`AND job_applications\.hiring_start_at between \$3 and \$4 `+
			`AND d\.author_kind = \$5 `+
			`AND d\.author_company_id = job_applications\.to_company_id `+
			`AND a\.number like \$6`).
			WithArgs(
				string(models.JobApplicationStateAccepted),
				"company-1",
				periodStart,
				periodEnd,
				string(models.AuthorKindEmployer),
				"99999%",
			).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		list, err := store.ListAcceptedForCompanies([]string{"company-1"}, periodStart, periodEnd)
		require.Nil(t, err)
		require.Empty(t, list)
	})
}

func TestIsActiveMember(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"count"}).AddRow(1)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "company_memberships"`).
		WithArgs("user-1", "company-1", true).
		WillReturnRows(rows)

	member, err := store.IsActiveMember("user-1", "company-1")
	require.Nil(t, err)
	require.True(t, member)
}
