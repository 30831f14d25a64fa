package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"minibank/internal/pkg/errors"
)

// AccountKind determines whether an account may act as a payer.
type AccountKind string

const (
	AccountKindCommon   AccountKind = "common"
	AccountKindMerchant AccountKind = "merchant"
)

// Account is the ledger entity. Balance is only ever mutated through Debit
// and Credit, inside a single persistence transaction.
type Account struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	FullName     string          `json:"full_name" db:"full_name"`
	Document     string          `json:"document" db:"document"`
	Email        string          `json:"email" db:"email"`
	PasswordHash string          `json:"-" db:"password_hash"`
	Kind         AccountKind     `json:"kind" db:"kind"`
	Balance      decimal.Decimal `json:"balance" db:"balance"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// NewAccount creates an account with a zero balance.
func NewAccount(fullName, document, email, passwordHash string, kind AccountKind) *Account {
	now := time.Now().UTC()
	return &Account{
		ID:           uuid.New(),
		FullName:     fullName,
		Document:     document,
		Email:        email,
		PasswordHash: passwordHash,
		Kind:         kind,
		Balance:      decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ValidateCanPay checks payer eligibility without side effects.
func (a *Account) ValidateCanPay(amount decimal.Decimal) error {
	if a.Kind != AccountKindCommon {
		return errors.ErrNotPayerEligible
	}
	if a.Balance.LessThan(amount) {
		return errors.Newf(errors.InsufficientBalance, "insufficient balance: current balance is %s", a.Balance.StringFixed(2))
	}
	return nil
}

// Debit withdraws amount from the account balance.
func (a *Account) Debit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.ErrInvalidValue
	}
	if a.Balance.LessThan(amount) {
		return errors.ErrInsufficientBalance
	}
	a.Balance = a.Balance.Sub(amount)
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// Credit deposits amount into the account balance.
func (a *Account) Credit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.ErrInvalidValue
	}
	a.Balance = a.Balance.Add(amount)
	a.UpdatedAt = time.Now().UTC()
	return nil
}
