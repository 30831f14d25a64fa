package nsq

import (
	"context"

	"github.com/sirupsen/logrus"

	"minibank/internal/pkg/logger"
	"minibank/internal/pkg/models"
	"minibank/internal/pkg/nsq"
	"minibank/services/transaction"
)

// EventHandler consumes transaction created events and drives pending
// transactions to a terminal state.
type EventHandler struct {
	transactionUC transaction.TransactionUC
	logger        *logger.AppLogger
}

// NewEventHandler creates a new event handler
func NewEventHandler(transactionUC transaction.TransactionUC, appLogger *logger.AppLogger) *EventHandler {
	return &EventHandler{
		transactionUC: transactionUC,
		logger:        appLogger,
	}
}

// HandleTransactionCreated decodes an event and resolves the transaction it
// announces. A returned error requeues the delivery; the consumer's
// max-attempts policy routes exhausted messages to the dead-letter topic.
// The context is deliberately not tied to any inbound request: once a
// pending transaction exists it must eventually be resolved.
func (h *EventHandler) HandleTransactionCreated(message []byte) error {
	var event models.TransactionEvent
	if err := nsq.UnmarshalMessage(message, &event); err != nil {
		h.logger.WithError(err).Error("failed to decode transaction event")
		return err
	}

	h.logger.WithFields(logrus.Fields{
		"transaction_id": event.TransactionID,
		"occurred_at":    event.OccurredAt,
	}).Info("processing transaction event")

	if err := h.transactionUC.ProcessEvent(context.Background(), event); err != nil {
		h.logger.WithFields(logrus.Fields{
			"transaction_id": event.TransactionID,
		}).WithError(err).Error("failed to process transaction event, requeueing")
		return err
	}

	return nil
}
