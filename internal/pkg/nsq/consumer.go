package nsq

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nsqio/go-nsq"
)

// MessageHandler is a function that processes NSQ messages
type MessageHandler func(message []byte) error

// DeadLetterFunc receives the body of a message whose delivery attempts are
// exhausted. It must not be nil if dropped messages are unacceptable.
type DeadLetterFunc func(body []byte)

// ConsumerConfig bounds the redelivery policy for a consumer
type ConsumerConfig struct {
	Topic        string
	Channel      string
	MaxAttempts  int
	RequeueDelay time.Duration
}

// Consumer handles consuming messages from NSQ topics
type Consumer struct {
	consumer *nsq.Consumer
}

type handlerAdapter struct {
	handle     MessageHandler
	deadLetter DeadLetterFunc
}

func (h *handlerAdapter) HandleMessage(message *nsq.Message) error {
	// Returning an error requeues the message with the configured delay
	// until MaxAttempts is reached.
	return h.handle(message.Body)
}

// LogFailedMessage is called by go-nsq once MaxAttempts is exhausted; the
// message is finished afterwards, so this is the last chance to keep it.
func (h *handlerAdapter) LogFailedMessage(message *nsq.Message) {
	log.Printf("message exhausted delivery attempts, routing to dead letter")
	if h.deadLetter != nil {
		h.deadLetter(message.Body)
	}
}

// NewConsumer creates a new NSQ consumer for a topic/channel with a bounded
// retry policy.
func NewConsumer(cfg ConsumerConfig, address string, handler MessageHandler, deadLetter DeadLetterFunc) (*Consumer, error) {
	config := nsq.NewConfig()
	if cfg.MaxAttempts > 0 {
		config.MaxAttempts = uint16(cfg.MaxAttempts)
	}
	if cfg.RequeueDelay > 0 {
		config.DefaultRequeueDelay = cfg.RequeueDelay
		config.MaxRequeueDelay = cfg.RequeueDelay
	}

	consumer, err := nsq.NewConsumer(cfg.Topic, cfg.Channel, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ consumer: %w", err)
	}

	consumer.AddHandler(&handlerAdapter{handle: handler, deadLetter: deadLetter})

	if err := consumer.ConnectToNSQD(address); err != nil {
		return nil, fmt.Errorf("failed to connect to NSQ daemon: %w", err)
	}

	return &Consumer{consumer: consumer}, nil
}

// ConnectToLookupd connects the consumer to NSQ lookupd instances
func (c *Consumer) ConnectToLookupd(addresses []string) error {
	for _, addr := range addresses {
		if err := c.consumer.ConnectToNSQLookupd(addr); err != nil {
			return fmt.Errorf("failed to connect to NSQ lookupd at %s: %w", addr, err)
		}
	}
	return nil
}

// UnmarshalMessage deserializes a JSON message into the provided struct
func UnmarshalMessage(messageBody []byte, v interface{}) error {
	if err := json.Unmarshal(messageBody, v); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return nil
}

// Stop gracefully stops the consumer
func (c *Consumer) Stop() {
	c.consumer.Stop()
}
