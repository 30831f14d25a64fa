package gateway

import (
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/pkg/database"
	"minibank/internal/pkg/models"
	"minibank/services/transaction"
)

func newTestDedupGW(t *testing.T) (transaction.DedupGW, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	redisClient, err := database.NewRedisClient(models.RedisConfig{
		Host: mr.Host(),
		Port: port,
	})
	require.NoError(t, err)
	t.Cleanup(func() { redisClient.Close() })

	return NewDedupMarkerGW(redisClient), mr
}

func TestDedupMarker_RoundTrip(t *testing.T) {
	gw, _ := newTestDedupGW(t)
	id := uuid.New()
	ctx := context.Background()

	processed, err := gw.WasProcessed(ctx, id)
	require.NoError(t, err)
	assert.False(t, processed)

	require.NoError(t, gw.MarkProcessed(ctx, id))

	processed, err = gw.WasProcessed(ctx, id)
	require.NoError(t, err)
	assert.True(t, processed)
}

func TestDedupMarker_Expires(t *testing.T) {
	gw, mr := newTestDedupGW(t)
	id := uuid.New()
	ctx := context.Background()

	require.NoError(t, gw.MarkProcessed(ctx, id))
	mr.FastForward(dedupTTL + 1)

	processed, err := gw.WasProcessed(ctx, id)
	require.NoError(t, err)
	// Marker loss is safe: the consumer falls back to the status check
	assert.False(t, processed)
}

func TestDedupMarker_IsolatedPerTransaction(t *testing.T) {
	gw, _ := newTestDedupGW(t)
	ctx := context.Background()

	require.NoError(t, gw.MarkProcessed(ctx, uuid.New()))

	processed, err := gw.WasProcessed(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, processed)
}
