package transaction

import (
	"context"

	"github.com/google/uuid"

	"minibank/internal/pkg/models"
)

// AuthorizationGW asks the external authorizer for a yes/no decision.
// A deny is (false, nil); a broken or unreachable authorizer is an error.
type AuthorizationGW interface {
	IsAuthorized(ctx context.Context) (bool, error)
}

// NotificationGW delivers a best-effort post-completion notice. Callers log
// and swallow its errors.
type NotificationGW interface {
	Notify(ctx context.Context, txn *models.Transaction) error
}

// EventGW publishes durable transaction events for asynchronous processing.
type EventGW interface {
	PublishTransactionCreated(event models.TransactionEvent) error
}

// DedupGW tracks already-processed transaction events so redeliveries can be
// short-circuited without touching the database. Best-effort: the
// authoritative duplicate guard is the transaction status itself.
type DedupGW interface {
	WasProcessed(ctx context.Context, transactionID uuid.UUID) (bool, error)
	MarkProcessed(ctx context.Context, transactionID uuid.UUID) error
}
