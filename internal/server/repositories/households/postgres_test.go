package households

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/duoledger/internal/common"
	"github.com/dmitrijs2005/duoledger/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertQ = `(?s)^INSERT\s+INTO\s+households\s*\(id,\s*name,\s*owner_id,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*ON\s+CONFLICT\s*\(owner_id\)\s*DO\s+NOTHING\s*RETURNING\s+id\s*$`

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreateIfAbsent_Inserted(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(insertQ).
		WithArgs("h-1", "Ann's household", "u-1", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("h-1"))

	got, created, err := repo.CreateIfAbsent(context.Background(),
		&models.Household{ID: "h-1", Name: "Ann's household", OwnerID: "u-1", CreatedAt: now})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "h-1", got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIfAbsent_ReturnsExisting(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(insertQ).WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*name,\s*owner_id,\s*created_at\s+FROM\s+households\s+WHERE\s+owner_id\s*=\s*\$1\s*$`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id", "created_at"}).
			AddRow("h-0", "First", "u-1", now))

	got, created, err := repo.CreateIfAbsent(context.Background(),
		&models.Household{ID: "h-1", Name: "Second", OwnerID: "u-1", CreatedAt: now})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "h-0", got.ID)
	assert.Equal(t, "First", got.Name)
}

func TestCreateIfAbsent_Errors(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).WillReturnError(&pgconn.PgError{Code: "23503"})
	_, _, err := repo.CreateIfAbsent(context.Background(), &models.Household{OwnerID: "ghost"})
	assert.ErrorIs(t, err, common.ErrorValidation)

	mock.ExpectQuery(insertQ).WillReturnError(errors.New("boom"))
	_, _, err = repo.CreateIfAbsent(context.Background(), &models.Household{OwnerID: "u-1"})
	assert.ErrorContains(t, err, "db error: boom")
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+households\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
