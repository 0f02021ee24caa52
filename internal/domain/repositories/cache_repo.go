package repositories

import (
	"context"
	"time"

	"vidhub/internal/domain/dto"
)

// DedupCache is a best-effort key/value store with per-key expiry.
type DedupCache interface {
	Seen(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string, ttl time.Duration) error
}

// ParkedEvent is an asset-ready event whose upload handle had no video yet.
type ParkedEvent struct {
	UploadHandle string             `json:"uploadHandle"`
	Data         dto.AssetReadyData `json:"data"`
	ParkedAt     time.Time          `json:"parkedAt"`
}

type PendingStore interface {
	// Park stores ev unless one is already parked for the handle.
	Park(ctx context.Context, ev ParkedEvent) error
	List(ctx context.Context) ([]ParkedEvent, error)
	Remove(ctx context.Context, handle string) error
}
