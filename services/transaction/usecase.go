package transaction

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"minibank/internal/pkg/models"
)

// TransferRequest is the payload for both transfer flavors.
type TransferRequest struct {
	PayerID uuid.UUID       `json:"payer_id"`
	PayeeID uuid.UUID       `json:"payee_id"`
	Value   decimal.Decimal `json:"value"`
}

// TransactionUC defines the transaction service contract. Both transfer
// flavors drive the same lifecycle: create a pending transaction, then
// resolve it to a terminal state. SendMoney resolves inline; Transfer only
// creates and publishes, leaving resolution to ProcessEvent.
type TransactionUC interface {
	SendMoney(ctx context.Context, req TransferRequest) (*models.Transaction, error)
	Transfer(ctx context.Context, req TransferRequest) (*models.Transaction, error)
	ProcessEvent(ctx context.Context, event models.TransactionEvent) error
	Revert(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]models.Transaction, error)
}
