package storage

import (
	"context"
	"fmt"
	"path"
	"time"

	"vidhub/internal/domain/repositories"
	"vidhub/internal/pkg/config"
)

// ArchiveKey names an archived webhook body: <prefix>/<yyyy>/<mm>/<dd>/<event>.json.
func ArchiveKey(prefix, eventID string, at time.Time) string {
	at = at.UTC()
	return path.Join(prefix, at.Format("2006"), at.Format("01"), at.Format("02"), eventID+".json")
}

// NewArchive builds the configured payload archive; it returns nil for "none".
func NewArchive(ctx context.Context, cfg config.ArchiveConfig) (repositories.PayloadArchive, error) {
	switch cfg.Driver {
	case "", "none":
		return nil, nil
	case "local":
		return NewLocalStorage(cfg.Dir), nil
	case "s3":
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("archive driver s3 requires S3_BUCKET")
		}
		s3s, err := NewS3Storage(ctx, cfg.Bucket, cfg.Region)
		if err != nil {
			return nil, err
		}
		return s3s, nil
	default:
		return nil, fmt.Errorf("unknown archive driver %q", cfg.Driver)
	}
}
