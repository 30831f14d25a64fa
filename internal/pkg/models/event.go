package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionEvent is the durable message announcing a created transaction.
// It deliberately carries no business data beyond the id: the consumer
// re-reads authoritative state from storage.
type TransactionEvent struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewTransactionEvent builds an event for the given transaction id.
func NewTransactionEvent(transactionID uuid.UUID) TransactionEvent {
	return TransactionEvent{
		TransactionID: transactionID,
		OccurredAt:    time.Now().UTC(),
	}
}
