package usecase

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"minibank/internal/pkg/errors"
	"minibank/internal/pkg/logger"
	"minibank/internal/pkg/models"
	"minibank/services/account"
	"minibank/services/account/mocks"
)

func newTestUC(t *testing.T) (account.AccountUC, *mocks.MockAccountRepo) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockAccountRepo(ctrl)
	appLogger := logger.NewAppLogger("account-test", models.LoggerConfig{Level: "error"})
	return NewAccountUC(repo, appLogger), repo
}

func validRequest() account.RegisterRequest {
	return account.RegisterRequest{
		FullName: "Jo Silva",
		Document: "12345678901",
		Email:    "jo@example.com",
		Password: "secret123",
		Kind:     models.AccountKindCommon,
	}
}

func TestRegister_Success(t *testing.T) {
	uc, repo := newTestUC(t)
	req := validRequest()

	repo.EXPECT().GetAccountByDocument(gomock.Any(), req.Document).Return(nil, errors.ErrAccountNotFound)
	repo.EXPECT().GetAccountByEmail(gomock.Any(), req.Email).Return(nil, errors.ErrAccountNotFound)
	repo.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).Return(nil)

	acc, err := uc.Register(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, req.Document, acc.Document)
	assert.True(t, acc.Balance.IsZero())
	// Password is stored hashed, never verbatim
	assert.NotEqual(t, req.Password, acc.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(req.Password)))
}

func TestRegister_DuplicateDocument(t *testing.T) {
	uc, repo := newTestUC(t)
	req := validRequest()
	existing := models.NewAccount("Other", req.Document, "other@example.com", "hash", models.AccountKindCommon)

	repo.EXPECT().GetAccountByDocument(gomock.Any(), req.Document).Return(existing, nil)

	_, err := uc.Register(context.Background(), req)

	assert.Equal(t, errors.DuplicateAccount, errors.CodeOf(err))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, repo := newTestUC(t)
	req := validRequest()
	existing := models.NewAccount("Other", "10987654321", req.Email, "hash", models.AccountKindCommon)

	repo.EXPECT().GetAccountByDocument(gomock.Any(), req.Document).Return(nil, errors.ErrAccountNotFound)
	repo.EXPECT().GetAccountByEmail(gomock.Any(), req.Email).Return(existing, nil)

	_, err := uc.Register(context.Background(), req)

	assert.Equal(t, errors.DuplicateAccount, errors.CodeOf(err))
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*account.RegisterRequest)
	}{
		{name: "short name", mutate: func(r *account.RegisterRequest) { r.FullName = "Jo" }},
		{name: "document too short", mutate: func(r *account.RegisterRequest) { r.Document = "123" }},
		{name: "document not numeric", mutate: func(r *account.RegisterRequest) { r.Document = "1234567890a" }},
		{name: "bad email", mutate: func(r *account.RegisterRequest) { r.Email = "not-an-email" }},
		{name: "short password", mutate: func(r *account.RegisterRequest) { r.Password = "12345" }},
		{name: "unknown kind", mutate: func(r *account.RegisterRequest) { r.Kind = "corporate" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestUC(t)
			req := validRequest()
			tt.mutate(&req)

			_, err := uc.Register(context.Background(), req)

			assert.Equal(t, errors.InvalidValue, errors.CodeOf(err))
		})
	}
}

func TestGetByID(t *testing.T) {
	uc, repo := newTestUC(t)
	acc := models.NewAccount("Jo Silva", "12345678901", "jo@example.com", "hash", models.AccountKindCommon)

	repo.EXPECT().GetAccountByID(gomock.Any(), acc.ID).Return(acc, nil)

	got, err := uc.GetByID(context.Background(), acc.ID)

	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)
}

func TestGetByID_NotFound(t *testing.T) {
	uc, repo := newTestUC(t)
	id := uuid.New()

	repo.EXPECT().GetAccountByID(gomock.Any(), id).Return(nil, errors.ErrAccountNotFound)

	_, err := uc.GetByID(context.Background(), id)

	assert.Equal(t, errors.AccountNotFound, errors.CodeOf(err))
}
