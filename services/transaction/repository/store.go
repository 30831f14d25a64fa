package repository

import (
	"context"
	"database/sql"
	goerrors "errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"minibank/internal/pkg/errors"
	"minibank/internal/pkg/models"
	"minibank/services/transaction"
)

// Store implements the transaction.TransactionRepo interface. WithinTx hands
// out a TxRepo bound to a single database transaction; balance writes and
// status transitions issued through it commit or roll back together.
type Store struct {
	db *sqlx.DB
}

// NewStore creates a new transaction store
func NewStore(db *sqlx.DB) transaction.TransactionRepo {
	return &Store{db: db}
}

// WithinTx executes fn inside one database transaction
func (s *Store) WithinTx(ctx context.Context, fn func(r transaction.TxRepo) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&txRepo{tx: tx}); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTransactionByID retrieves a transaction by id
func (s *Store) GetTransactionByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	return getTransaction(ctx, s.db, id, false)
}

// GetAccountByID retrieves an account by id
func (s *Store) GetAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	return getAccount(ctx, s.db, id, false)
}

// ListByAccount returns transactions where the account is payer or payee,
// newest first.
func (s *Store) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]models.Transaction, error) {
	query := `
		SELECT id, payer_id, payee_id, value, status, message, created_at, updated_at
		FROM transactions
		WHERE payer_id = $1 OR payee_id = $1
		ORDER BY created_at DESC
	`

	transactions := []models.Transaction{}
	if err := s.db.SelectContext(ctx, &transactions, query, accountID); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return transactions, nil
}

// txRepo implements transaction.TxRepo over an open database transaction
type txRepo struct {
	tx *sqlx.Tx
}

func (r *txRepo) GetTransactionForUpdate(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	return getTransaction(ctx, r.tx, id, true)
}

func (r *txRepo) GetAccountForUpdate(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	return getAccount(ctx, r.tx, id, true)
}

func (r *txRepo) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	query := `
		INSERT INTO transactions (
			id, payer_id, payee_id, value, status, message, created_at, updated_at
		) VALUES (
			:id, :payer_id, :payee_id, :value, :status, :message, :created_at, :updated_at
		)
	`
	if _, err := r.tx.NamedExecContext(ctx, query, txn); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// UpdateTransactionStatus persists a status transition guarded by the state
// it transitions from. Zero rows affected means another writer resolved the
// row first; that is surfaced instead of silently overwriting the outcome.
func (r *txRepo) UpdateTransactionStatus(ctx context.Context, txn *models.Transaction, from models.TransactionStatus) error {
	query := `
		UPDATE transactions
		SET status = $1, message = $2, updated_at = $3
		WHERE id = $4 AND status = $5
	`

	result, err := r.tx.ExecContext(ctx, query, txn.Status, txn.Message, txn.UpdatedAt, txn.ID, from)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.Newf(errors.InvalidTransition,
			"transaction %s is no longer %s", txn.ID, from)
	}

	return nil
}

func (r *txRepo) UpdateAccountBalance(ctx context.Context, acc *models.Account) error {
	query := `
		UPDATE accounts
		SET balance = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.tx.ExecContext(ctx, query, acc.Balance, acc.UpdatedAt, acc.ID)
	if err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.ErrAccountNotFound
	}

	return nil
}

type queryer interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func getTransaction(ctx context.Context, q queryer, id uuid.UUID, forUpdate bool) (*models.Transaction, error) {
	query := `
		SELECT id, payer_id, payee_id, value, status, message, created_at, updated_at
		FROM transactions
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var txn models.Transaction
	if err := q.GetContext(ctx, &txn, query, id); err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return &txn, nil
}

func getAccount(ctx context.Context, q queryer, id uuid.UUID, forUpdate bool) (*models.Account, error) {
	query := `
		SELECT id, full_name, document, email, password_hash, kind, balance, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var acc models.Account
	if err := q.GetContext(ctx, &acc, query, id); err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &acc, nil
}
