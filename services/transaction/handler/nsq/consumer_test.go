package nsq

import (
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/pkg/logger"
	"minibank/internal/pkg/models"
	"minibank/services/transaction/mocks"
)

func newTestEventHandler(t *testing.T) (*EventHandler, *mocks.MockTransactionUC) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	uc := mocks.NewMockTransactionUC(ctrl)
	appLogger := logger.NewAppLogger("worker-test", models.LoggerConfig{Level: "error"})
	return NewEventHandler(uc, appLogger), uc
}

func TestHandleTransactionCreated(t *testing.T) {
	h, uc := newTestEventHandler(t)
	event := models.NewTransactionEvent(uuid.New())
	body, err := json.Marshal(event)
	require.NoError(t, err)

	uc.EXPECT().
		ProcessEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, got models.TransactionEvent) error {
			assert.Equal(t, event.TransactionID, got.TransactionID)
			return nil
		})

	assert.NoError(t, h.HandleTransactionCreated(body))
}

func TestHandleTransactionCreated_ProcessingError_Requeues(t *testing.T) {
	h, uc := newTestEventHandler(t)
	body, err := json.Marshal(models.NewTransactionEvent(uuid.New()))
	require.NoError(t, err)

	uc.EXPECT().ProcessEvent(gomock.Any(), gomock.Any()).Return(assert.AnError)

	// A returned error makes the consumer requeue the delivery
	assert.Error(t, h.HandleTransactionCreated(body))
}

func TestHandleTransactionCreated_MalformedBody(t *testing.T) {
	h, _ := newTestEventHandler(t)

	assert.Error(t, h.HandleTransactionCreated([]byte("not json")))
}
