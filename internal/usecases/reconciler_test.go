package usecases

import (
	"context"
	"testing"
	"time"

	"vidhub/internal/domain/repositories"
	consts "vidhub/pkg/constants"
	"vidhub/pkg/signature"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepAppliesLateRegistration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ing := newIngestor(f, nil)

	body := assetReadyBody("up-late", 125)
	res, err := ing.Ingest(ctx, body, signature.Sign(testSecret, body, time.Now()))
	require.NoError(t, err)
	require.Equal(t, OutcomeParked, res.Outcome)

	r := NewReconciler(ing, f.pending, time.Hour, 2)

	report, err := r.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Scanned)
	assert.Equal(t, 1, report.Waiting)

	video := f.register(t, "up-late")
	report, err = r.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Applied)

	got := f.reload(t, video.ID)
	assert.Equal(t, consts.VideoStateReady, got.ProcessingState)
	assert.Equal(t, "02:05", got.Duration)

	left, err := f.pending.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestSweepDropsExpiredAndReplayed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ing := newIngestor(f, nil)
	old := time.Now().Add(-2 * time.Hour)

	f.register(t, "up-done")
	_, err := ing.ApplyReady(ctx, parsedReady(t, "up-done"))
	require.NoError(t, err)

	require.NoError(t, f.pending.Park(ctx, repositories.ParkedEvent{UploadHandle: "up-gone", Data: parsedReady(t, "up-gone"), ParkedAt: old}))
	require.NoError(t, f.pending.Park(ctx, repositories.ParkedEvent{UploadHandle: "up-done", Data: parsedReady(t, "up-done"), ParkedAt: old}))

	report, err := NewReconciler(ing, f.pending, time.Hour, 0).Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 1, report.Expired)
	assert.Equal(t, 1, report.Replayed)

	left, err := f.pending.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestSweepKeepsFailedEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "up-1")
	ing := NewWebhookIngestor(testWebhookConfig(), failingVideos{f.videos}, f.pending, nil)
	require.NoError(t, f.pending.Park(ctx, repositories.ParkedEvent{UploadHandle: "up-1", Data: parsedReady(t, "up-1"), ParkedAt: time.Now()}))

	report, err := NewReconciler(ing, f.pending, time.Hour, 1).Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)

	left, err := f.pending.List(ctx)
	require.NoError(t, err)
	assert.Len(t, left, 1)
}
