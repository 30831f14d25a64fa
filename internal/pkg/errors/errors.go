package errors

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	InvalidValue        ErrorCode = "invalid_value"
	SamePayerPayee      ErrorCode = "same_payer_payee"
	NotPayerEligible    ErrorCode = "not_payer_eligible"
	InsufficientBalance ErrorCode = "insufficient_balance"
	InvalidTransition   ErrorCode = "invalid_transition"
	AccountNotFound     ErrorCode = "account_not_found"
	TransactionNotFound ErrorCode = "transaction_not_found"
	DuplicateAccount    ErrorCode = "duplicate_account"
	TransientFault      ErrorCode = "transient_fault"
	ConsistencyFault    ErrorCode = "consistency_fault"
	InternalError       ErrorCode = "internal_error"
)

// AppError is the error type carried across the core. The code decides how a
// failure propagates: domain-rule codes are downgraded into a FAILED
// transaction during processing, everything else surfaces to the caller.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Predefined errors for common cases
var (
	ErrInvalidValue        = New(InvalidValue, "invalid value")
	ErrSamePayerPayee      = New(SamePayerPayee, "the payer and the payee cannot be the same account")
	ErrNotPayerEligible    = New(NotPayerEligible, "only common accounts are allowed to send money")
	ErrInsufficientBalance = New(InsufficientBalance, "insufficient balance")
	ErrAccountNotFound     = New(AccountNotFound, "account not found")
	ErrTransactionNotFound = New(TransactionNotFound, "transaction not found")
	ErrDuplicateAccount    = New(DuplicateAccount, "account already exists")
)

// CodeOf returns the code of err if it is an AppError, InternalError otherwise.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return InternalError
}

// IsDomainRule reports whether err is a business-rule violation. These are the
// failures that Process converts into a terminal FAILED transaction instead of
// propagating.
func IsDomainRule(err error) bool {
	switch CodeOf(err) {
	case InvalidValue, SamePayerPayee, NotPayerEligible, InsufficientBalance:
		return true
	}
	return false
}

// IsNotFound reports whether err marks a missing account or transaction.
func IsNotFound(err error) bool {
	code := CodeOf(err)
	return code == AccountNotFound || code == TransactionNotFound
}

// IsTransient reports whether err is a retriable infrastructure fault.
func IsTransient(err error) bool {
	return CodeOf(err) == TransientFault
}
