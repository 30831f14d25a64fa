package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"minibank/internal/pkg/database"
	"minibank/services/transaction"
)

const dedupTTL = 24 * time.Hour

// DedupMarkerGW implements the transaction.DedupGW interface with a redis
// marker per processed transaction event. It is a fast path only: losing a
// marker is safe because the consumer re-checks the transaction status.
type DedupMarkerGW struct {
	redis *database.RedisClient
}

// NewDedupMarkerGW creates a new dedup marker gateway
func NewDedupMarkerGW(redisClient *database.RedisClient) transaction.DedupGW {
	return &DedupMarkerGW{redis: redisClient}
}

// WasProcessed reports whether the event for this transaction was handled
func (g *DedupMarkerGW) WasProcessed(ctx context.Context, transactionID uuid.UUID) (bool, error) {
	return g.redis.Exists(ctx, dedupKey(transactionID))
}

// MarkProcessed records that the event for this transaction was handled
func (g *DedupMarkerGW) MarkProcessed(ctx context.Context, transactionID uuid.UUID) error {
	return g.redis.Set(ctx, dedupKey(transactionID), "1", dedupTTL)
}

func dedupKey(transactionID uuid.UUID) string {
	return fmt.Sprintf("transaction:processed:%s", transactionID)
}
