package repository

import (
	"context"
	"database/sql"
	goerrors "errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"

	"minibank/internal/pkg/errors"
	"minibank/internal/pkg/models"
	"minibank/services/account"
)

const uniqueViolationCode = "23505"

// AccountRepo implements the account.AccountRepo interface
type AccountRepo struct {
	db *sqlx.DB
}

// NewAccountRepo creates a new account repository
func NewAccountRepo(db *sqlx.DB) account.AccountRepo {
	return &AccountRepo{db: db}
}

// CreateAccount inserts a new account row
func (r *AccountRepo) CreateAccount(ctx context.Context, acc *models.Account) error {
	query := `
		INSERT INTO accounts (
			id, full_name, document, email, password_hash, kind, balance, created_at, updated_at
		) VALUES (
			:id, :full_name, :document, :email, :password_hash, :kind, :balance, :created_at, :updated_at
		)
	`
	_, err := r.db.NamedExecContext(ctx, query, acc)
	if err != nil {
		var pgErr *pgconn.PgError
		if goerrors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return errors.ErrDuplicateAccount
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}

	return nil
}

// GetAccountByID retrieves an account by id
func (r *AccountRepo) GetAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	return r.getAccountByField(ctx, "id", id)
}

// GetAccountByDocument retrieves an account by document
func (r *AccountRepo) GetAccountByDocument(ctx context.Context, document string) (*models.Account, error) {
	return r.getAccountByField(ctx, "document", document)
}

// GetAccountByEmail retrieves an account by email
func (r *AccountRepo) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.getAccountByField(ctx, "email", email)
}

func (r *AccountRepo) getAccountByField(ctx context.Context, field string, value interface{}) (*models.Account, error) {
	query := fmt.Sprintf(`
		SELECT id, full_name, document, email, password_hash, kind, balance, created_at, updated_at
		FROM accounts
		WHERE %s = $1
	`, field)

	var acc models.Account
	err := r.db.GetContext(ctx, &acc, query, value)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &acc, nil
}
