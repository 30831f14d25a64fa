package gateway

import (
	"minibank/internal/pkg/models"
	"minibank/internal/pkg/nsq"
	"minibank/services/transaction"
)

// EventPublisherGW implements the transaction.EventGW interface over NSQ.
type EventPublisherGW struct {
	producer *nsq.Producer
	topic    string
}

// NewEventPublisherGW creates a new event publisher gateway
func NewEventPublisherGW(producer *nsq.Producer, topic string) transaction.EventGW {
	return &EventPublisherGW{
		producer: producer,
		topic:    topic,
	}
}

// PublishTransactionCreated publishes a transaction created event. Callers
// must only invoke this after the transaction row is durably committed.
func (g *EventPublisherGW) PublishTransactionCreated(event models.TransactionEvent) error {
	return g.producer.Publish(g.topic, event)
}
