package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"minibank/internal/pkg/errors"
)

// TransactionStatus is the lifecycle state of a transfer.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionFailed    TransactionStatus = "FAILED"
	TransactionReverted  TransactionStatus = "REVERTED"
)

// Transaction is a transfer of value between two accounts. It starts PENDING
// and resolves exactly once to COMPLETED or FAILED; a COMPLETED transaction
// may later be reverted exactly once. FAILED and REVERTED are terminal.
type Transaction struct {
	ID        uuid.UUID         `json:"id" db:"id"`
	PayerID   uuid.UUID         `json:"payer_id" db:"payer_id"`
	PayeeID   uuid.UUID         `json:"payee_id" db:"payee_id"`
	Value     decimal.Decimal   `json:"value" db:"value"`
	Status    TransactionStatus `json:"status" db:"status"`
	Message   string            `json:"message" db:"message"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at"`
}

// NewTransaction creates a PENDING transaction. Balances are untouched.
func NewTransaction(payer, payee *Account, value decimal.Decimal) (*Transaction, error) {
	if value.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New(errors.InvalidValue, "invalid transaction value")
	}
	if payer.ID == payee.ID {
		return nil, errors.ErrSamePayerPayee
	}

	// UUIDv7 keeps ids sortable by creation time.
	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Newf(errors.InternalError, "failed to generate transaction id: %v", err)
	}

	now := time.Now().UTC()
	return &Transaction{
		ID:        id,
		PayerID:   payer.ID,
		PayeeID:   payee.ID,
		Value:     value,
		Status:    TransactionPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Process moves value from payer to payee and completes the transaction.
// Business-rule failures (ineligible payer, insufficient balance) do not
// propagate: they downgrade the transaction to FAILED with the reason stored
// as the message. Only calling from a non-PENDING state is an error.
func (t *Transaction) Process(payer, payee *Account) error {
	if t.Status != TransactionPending {
		return errors.New(errors.InvalidTransition, "only pending transactions can be processed")
	}

	if err := t.apply(payer, payee); err != nil {
		if errors.IsDomainRule(err) {
			return t.Fail(err.Error())
		}
		return err
	}

	t.Status = TransactionCompleted
	t.Message = "transaction completed successfully"
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (t *Transaction) apply(payer, payee *Account) error {
	if err := payer.ValidateCanPay(t.Value); err != nil {
		return err
	}
	if err := payer.Debit(t.Value); err != nil {
		return err
	}
	return payee.Credit(t.Value)
}

// Fail marks a PENDING transaction as FAILED with the given reason. Used when
// authorization is denied before any balance is touched.
func (t *Transaction) Fail(reason string) error {
	if t.Status != TransactionPending {
		return errors.New(errors.InvalidTransition, "only pending transactions can fail")
	}
	t.Status = TransactionFailed
	t.Message = reason
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Revert undoes a COMPLETED transfer: the payer is credited and the payee
// debited by the original value. A payee balance too low to give the value
// back means the books are broken, so that surfaces as a consistency fault
// rather than a business failure.
func (t *Transaction) Revert(payer, payee *Account) error {
	if t.Status != TransactionCompleted {
		return errors.New(errors.InvalidTransition, "only completed transactions can be reverted")
	}

	if err := payee.Debit(t.Value); err != nil {
		return errors.Newf(errors.ConsistencyFault,
			"reverting transaction %s would corrupt the ledger: %v", t.ID, err)
	}
	if err := payer.Credit(t.Value); err != nil {
		return errors.Newf(errors.ConsistencyFault,
			"reverting transaction %s would corrupt the ledger: %v", t.ID, err)
	}

	t.Status = TransactionReverted
	t.Message = "transaction reverted"
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Resolved reports whether the transaction reached a terminal outcome.
func (t *Transaction) Resolved() bool {
	return t.Status != TransactionPending
}
