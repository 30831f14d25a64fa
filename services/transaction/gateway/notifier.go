package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	pkghttp "minibank/internal/pkg/http"
	"minibank/internal/pkg/models"
	"minibank/internal/pkg/retry"
	"minibank/services/transaction"
)

const notifyPath = "/v1/notify"

// NotifierGW implements the transaction.NotificationGW interface against the
// external notification service. Deliveries are retried with backoff; after
// the retry budget the failure is reported and the caller moves on.
type NotifierGW struct {
	client  *pkghttp.Client
	retrier *retry.Retrier
}

// NewNotifierGW creates a new notification gateway
func NewNotifierGW(client *pkghttp.Client, retrier *retry.Retrier) transaction.NotificationGW {
	return &NotifierGW{client: client, retrier: retrier}
}

type notifyPayload struct {
	TransactionID string `json:"transaction_id"`
	PayerID       string `json:"payer_id"`
	PayeeID       string `json:"payee_id"`
	Value         string `json:"value"`
	Status        string `json:"status"`
}

// Notify posts a transaction summary to the notification service. The
// client's timeout bounds the call; the caller decides what to do with a
// failure (in practice: log and move on).
func (g *NotifierGW) Notify(ctx context.Context, txn *models.Transaction) error {
	payload := notifyPayload{
		TransactionID: txn.ID.String(),
		PayerID:       txn.PayerID.String(),
		PayeeID:       txn.PayeeID.String(),
		Value:         txn.Value.StringFixed(2),
		Status:        string(txn.Status),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	return g.retrier.Execute(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.client.BaseURL+notifyPath, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to build notify request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := g.client.HTTPClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to reach notifier: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("notifier returned unexpected status %d", resp.StatusCode)
		}

		return nil
	})
}
