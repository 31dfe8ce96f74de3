package transactions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/duoledger/internal/common"
	"github.com/dmitrijs2005/duoledger/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var txColumns = []string{"id", "user_id", "account_id", "category_id", "amount", "type", "description", "date", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()
	desc := "groceries"

	q := `(?s)^INSERT\s+INTO\s+transactions\s*\(id,\s*user_id,\s*account_id,\s*category_id,\s*amount,\s*type,\s*description,\s*date,\s*created_at\)\s*VALUES`
	mock.ExpectExec(q).
		WithArgs("t-1", "u-1", "a-1", "c-1", "40", "EXPENSE", desc, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tx := &models.Transaction{ID: "t-1", UserID: "u-1", AccountID: "a-1", CategoryID: "c-1",
		Amount: decimal.NewFromInt(40), Type: models.TransactionExpense, Description: &desc, Date: now, CreatedAt: now}
	_, err := repo.Create(context.Background(), tx)
	require.NoError(t, err)

	mock.ExpectExec(q).WillReturnError(&pgconn.PgError{Code: "23503"})
	_, err = repo.Create(context.Background(), tx)
	assert.ErrorIs(t, err, common.ErrorValidation)

	mock.ExpectExec(q).WillReturnError(errors.New("boom"))
	_, err = repo.Create(context.Background(), tx)
	assert.ErrorContains(t, err, "db error: boom")
}

func TestList_UserOnly(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	q := `(?s)FROM\s+transactions\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+date\s+DESC,\s*created_at\s+DESC\s+LIMIT\s+\$2\s+OFFSET\s+\$3$`
	mock.ExpectQuery(q).
		WithArgs("u-1", 10, 10).
		WillReturnRows(sqlmock.NewRows(txColumns).
			AddRow("t-11", "u-1", "a-1", "c-1", "1.00", "EXPENSE", nil, now, now))

	got, err := repo.List(context.Background(), models.TransactionFilter{UserID: "u-1"}, 10, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Description)
	assert.Equal(t, models.TransactionExpense, got[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_AllFilters(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)WHERE\s+user_id\s*=\s*\$1\s+AND\s+account_id\s*=\s*\$2\s+AND\s+type\s*=\s*\$3\s+ORDER\s+BY.*LIMIT\s+\$4\s+OFFSET\s+\$5$`
	mock.ExpectQuery(q).
		WithArgs("u-1", "a-1", "INCOME", 50, 0).
		WillReturnRows(sqlmock.NewRows(txColumns))

	got, err := repo.List(context.Background(),
		models.TransactionFilter{UserID: "u-1", AccountID: "a-1", Type: models.TransactionIncome}, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCount_SamePredicate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT\s+COUNT\(\*\)\s+FROM\s+transactions\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+type\s*=\s*\$2$`).
		WithArgs("u-1", "EXPENSE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	n, err := repo.Count(context.Background(), models.TransactionFilter{UserID: "u-1", Type: models.TransactionExpense})
	require.NoError(t, err)
	assert.Equal(t, 25, n)
}

func TestCount_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`COUNT`).WillReturnError(errors.New("boom"))
	_, err := repo.Count(context.Background(), models.TransactionFilter{UserID: "u-1"})
	assert.ErrorContains(t, err, "db error: boom")
}
