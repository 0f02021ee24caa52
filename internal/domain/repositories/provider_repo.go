package repositories

import (
	"context"

	"vidhub/internal/domain/dto"
)

// AssetProvider is the external transcoding provider.
type AssetProvider interface {
	CreateDirectUpload(ctx context.Context) (*dto.DirectUpload, error)
	DeleteAsset(ctx context.Context, assetID string) error
}

// PayloadArchive keeps a copy of verified webhook bodies.
type PayloadArchive interface {
	Put(ctx context.Context, key string, body []byte) error
}

// Identity is a caller proven by the identity service.
type Identity struct {
	Subject string
	Email   string
}

type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}
