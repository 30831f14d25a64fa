package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/pkg/errors"
)

func TestNewAccount_StartsEmpty(t *testing.T) {
	acc := NewAccount("Jo Silva", "12345678901", "jo@example.com", "hash", AccountKindCommon)

	assert.True(t, acc.Balance.IsZero())
	assert.Equal(t, AccountKindCommon, acc.Kind)
	assert.NotEqual(t, "", acc.ID.String())
}

func TestDebit(t *testing.T) {
	tests := []struct {
		name     string
		balance  string
		amount   string
		wantCode errors.ErrorCode
		wantLeft string
	}{
		{name: "success", balance: "100", amount: "40", wantLeft: "60"},
		{name: "exact balance", balance: "100", amount: "100", wantLeft: "0"},
		{name: "zero amount", balance: "100", amount: "0", wantCode: errors.InvalidValue, wantLeft: "100"},
		{name: "negative amount", balance: "100", amount: "-5", wantCode: errors.InvalidValue, wantLeft: "100"},
		{name: "insufficient balance", balance: "30", amount: "70", wantCode: errors.InsufficientBalance, wantLeft: "30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := newTestAccount(t, AccountKindCommon, tt.balance)

			err := acc.Debit(decimal.RequireFromString(tt.amount))

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, errors.CodeOf(err))
			} else {
				require.NoError(t, err)
			}
			assert.True(t, acc.Balance.Equal(decimal.RequireFromString(tt.wantLeft)))
			assert.False(t, acc.Balance.IsNegative())
		})
	}
}

func TestCredit(t *testing.T) {
	acc := newTestAccount(t, AccountKindCommon, "10")

	require.NoError(t, acc.Credit(decimal.RequireFromString("15.50")))
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("25.50")))

	err := acc.Credit(decimal.Zero)
	assert.Equal(t, errors.InvalidValue, errors.CodeOf(err))
	err = acc.Credit(decimal.NewFromInt(-1))
	assert.Equal(t, errors.InvalidValue, errors.CodeOf(err))
}

func TestValidateCanPay(t *testing.T) {
	common := newTestAccount(t, AccountKindCommon, "100")
	merchant := newTestAccount(t, AccountKindMerchant, "100")

	assert.NoError(t, common.ValidateCanPay(decimal.NewFromInt(100)))

	err := common.ValidateCanPay(decimal.NewFromInt(101))
	assert.Equal(t, errors.InsufficientBalance, errors.CodeOf(err))

	err = merchant.ValidateCanPay(decimal.NewFromInt(1))
	assert.Equal(t, errors.NotPayerEligible, errors.CodeOf(err))

	// Side-effect free
	assert.True(t, common.Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, merchant.Balance.Equal(decimal.NewFromInt(100)))
}
