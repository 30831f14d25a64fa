package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkghttp "minibank/internal/pkg/http"
	"minibank/internal/pkg/logger"
	"minibank/internal/pkg/models"
	"minibank/internal/pkg/retry"
	"minibank/services/transaction"
)

func newTestNotifier(t *testing.T, baseURL string) transaction.NotificationGW {
	t.Helper()
	retrier := retry.New(retry.Config{
		MaxRetries: 1,
		BaseDelay:  time.Millisecond,
		MaxDelay:   time.Millisecond,
		Multiplier: 1,
	}, logger.NewAppLogger("notifier-test", models.LoggerConfig{Level: "error"}))
	return NewNotifierGW(pkghttp.NewClient(baseURL, time.Second), retrier)
}

func completedTransaction(t *testing.T) *models.Transaction {
	t.Helper()
	payer := models.NewAccount("Payer", "12345678901", "payer@example.com", "hash", models.AccountKindCommon)
	payer.Balance = decimal.RequireFromString("200")
	payee := models.NewAccount("Payee", "10987654321", "payee@example.com", "hash", models.AccountKindCommon)

	txn, err := models.NewTransaction(payer, payee, decimal.RequireFromString("70"))
	require.NoError(t, err)
	require.NoError(t, txn.Process(payer, payee))
	return txn
}

func TestNotify_PostsSummary(t *testing.T) {
	txn := completedTransaction(t)

	var got notifyPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/notify", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	gw := newTestNotifier(t, srv.URL)

	require.NoError(t, gw.Notify(context.Background(), txn))
	assert.Equal(t, txn.ID.String(), got.TransactionID)
	assert.Equal(t, "70.00", got.Value)
	assert.Equal(t, string(models.TransactionCompleted), got.Status)
}

func TestNotify_ServerError(t *testing.T) {
	txn := completedTransaction(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	gw := newTestNotifier(t, srv.URL)

	assert.Error(t, gw.Notify(context.Background(), txn))
}

func TestNotify_Unreachable(t *testing.T) {
	txn := completedTransaction(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	gw := newTestNotifier(t, srv.URL)

	assert.Error(t, gw.Notify(context.Background(), txn))
}
