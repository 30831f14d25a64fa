package account

import (
	"context"

	"github.com/google/uuid"

	"minibank/internal/pkg/models"
)

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	FullName string             `json:"full_name"`
	Document string             `json:"document"`
	Email    string             `json:"email"`
	Password string             `json:"password"`
	Kind     models.AccountKind `json:"kind"`
}

// AccountUC defines the account service contract
type AccountUC interface {
	Register(ctx context.Context, req RegisterRequest) (*models.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
}
