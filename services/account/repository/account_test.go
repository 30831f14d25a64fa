package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/pkg/errors"
	"minibank/internal/pkg/models"
	"minibank/services/account"
)

func newTestRepo(t *testing.T) (account.AccountRepo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewAccountRepo(sqlx.NewDb(db, "sqlmock")), mock
}

func accountRows(id uuid.UUID) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "full_name", "document", "email", "password_hash", "kind", "balance", "created_at", "updated_at",
	}).AddRow(id.String(), "Jo Silva", "12345678901", "jo@example.com", "hash", "common", "0.00", now, now)
}

func TestCreateAccount(t *testing.T) {
	repo, mock := newTestRepo(t)
	acc := models.NewAccount("Jo Silva", "12345678901", "jo@example.com", "hash", models.AccountKindCommon)

	mock.ExpectExec("INSERT INTO accounts").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.CreateAccount(context.Background(), acc))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAccount_UniqueViolation(t *testing.T) {
	repo, mock := newTestRepo(t)
	acc := models.NewAccount("Jo Silva", "12345678901", "jo@example.com", "hash", models.AccountKindCommon)

	mock.ExpectExec("INSERT INTO accounts").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.CreateAccount(context.Background(), acc)

	assert.Equal(t, errors.DuplicateAccount, errors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAccountByID(t *testing.T) {
	repo, mock := newTestRepo(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(accountRows(id))

	acc, err := repo.GetAccountByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, acc.ID)
	assert.Equal(t, models.AccountKindCommon, acc.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAccountByDocument_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE document = \\$1").
		WithArgs("12345678901").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetAccountByDocument(context.Background(), "12345678901")

	assert.Equal(t, errors.AccountNotFound, errors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAccountByEmail(t *testing.T) {
	repo, mock := newTestRepo(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE email = \\$1").
		WithArgs("jo@example.com").
		WillReturnRows(accountRows(id))

	acc, err := repo.GetAccountByEmail(context.Background(), "jo@example.com")

	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", acc.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}
