package transaction

import (
	"context"

	"github.com/google/uuid"

	"minibank/internal/pkg/models"
)

// TransactionRepo defines the transaction persistence contract. WithinTx is
// the only path through which balances and statuses change together: the
// callback runs inside one database transaction and either everything it
// writes commits or nothing does.
type TransactionRepo interface {
	WithinTx(ctx context.Context, fn func(r TxRepo) error) error
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	GetAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]models.Transaction, error)
}

// TxRepo is the repository surface available inside one unit of work.
// The ForUpdate reads take row locks, serializing concurrent resolutions of
// the same transaction.
type TxRepo interface {
	GetTransactionForUpdate(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	GetAccountForUpdate(ctx context.Context, id uuid.UUID) (*models.Account, error)
	CreateTransaction(ctx context.Context, txn *models.Transaction) error
	UpdateTransactionStatus(ctx context.Context, txn *models.Transaction, from models.TransactionStatus) error
	UpdateAccountBalance(ctx context.Context, acc *models.Account) error
}
