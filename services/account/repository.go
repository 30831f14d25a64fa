package account

import (
	"context"

	"github.com/google/uuid"

	"minibank/internal/pkg/models"
)

// AccountRepo defines the account persistence contract
type AccountRepo interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	GetAccountByDocument(ctx context.Context, document string) (*models.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
}
