package usecases

import (
	"context"
	"testing"
	"time"

	"vidhub/internal/domain/repositories"
	"vidhub/pkg/errors"
	"vidhub/pkg/signature"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveUser(t *testing.T) {
	f := newFixture(t)
	svc := NewUploadService(f.videos, f.users, &fakeProvider{})
	ctx := context.Background()

	a, err := svc.ResolveUser(ctx, &repositories.Identity{Email: "A@example.com"})
	require.NoError(t, err)
	b, err := svc.ResolveUser(ctx, &repositories.Identity{Email: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	_, err = svc.ResolveUser(ctx, &repositories.Identity{Subject: "no-email"})
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))
}

func TestCreateDirectUpload(t *testing.T) {
	f := newFixture(t)
	up, err := NewUploadService(f.videos, f.users, &fakeProvider{}).CreateDirectUpload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "up-new", up.UploadID)
}

func TestDeleteVideo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	provider := &fakeProvider{}
	svc := NewUploadService(f.videos, f.users, provider)

	video := f.register(t, "up-1")
	body := assetReadyBody("up-1", 5)
	_, err := newIngestor(f, nil).Ingest(ctx, body, signature.Sign(testSecret, body, time.Now()))
	require.NoError(t, err)
	_, err = NewLikeToggler(f.videos, f.likes).Toggle(ctx, video.ID.String(), uuid.New())
	require.NoError(t, err)

	err = svc.DeleteVideo(ctx, video.ID.String(), uuid.New())
	assert.True(t, errors.Is(err, errors.CodeForbidden))
	assert.Empty(t, provider.deleted)

	provider.deleteErr = errBoom
	err = svc.DeleteVideo(ctx, video.ID.String(), f.owner)
	assert.True(t, errors.Is(err, errors.CodeInternal))
	f.reload(t, video.ID)

	provider.deleteErr = nil
	require.NoError(t, svc.DeleteVideo(ctx, video.ID.String(), f.owner))
	assert.Equal(t, []string{"asset-up-1"}, provider.deleted)

	_, err = f.videos.GetByID(ctx, video.ID)
	assert.ErrorIs(t, err, repositories.ErrVideoNotFound)
	count, err := f.likes.CountByVideo(ctx, video.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	err = svc.DeleteVideo(ctx, video.ID.String(), f.owner)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestDeleteProcessingVideoSkipsProvider(t *testing.T) {
	f := newFixture(t)
	provider := &fakeProvider{}
	video := f.register(t, "up-1")

	require.NoError(t, NewUploadService(f.videos, f.users, provider).DeleteVideo(context.Background(), video.ID.String(), f.owner))
	assert.Empty(t, provider.deleted)
}
