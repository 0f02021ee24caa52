package usecases

import (
	"context"
	"testing"
	"time"

	"vidhub/internal/infrastructure/cache"
	"vidhub/pkg/errors"
	"vidhub/pkg/helper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestRecordViewCountsOncePerWindow(t *testing.T) {
	f := newFixture(t)
	video := f.register(t, "up-1")
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	vc := NewViewCounter(f.videos, cache.NewMemoryDedupCache(clock.Now), time.Hour)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		res, err := vc.RecordView(ctx, video.ID.String(), "user-a")
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.ViewCount)
		assert.Equal(t, i == 0, res.Counted)
	}

	clock.Advance(time.Hour + time.Second)
	res, err := vc.RecordView(ctx, video.ID.String(), "user-a")
	require.NoError(t, err)
	assert.True(t, res.Counted)
	assert.Equal(t, int64(2), res.ViewCount)

	// A different viewer has its own window.
	res, err = vc.RecordView(ctx, video.ID.String(), helper.GuestIdentity("203.0.113.9"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.ViewCount)
}

func TestRecordViewWithPresentKeyLeavesCount(t *testing.T) {
	f := newFixture(t)
	video := f.register(t, "up-1")
	dedup := cache.NewMemoryDedupCache(nil)
	ctx := context.Background()

	guest := helper.GuestIdentity("198.51.100.4")
	require.NoError(t, dedup.Mark(ctx, helper.MakeViewKey(guest, video.ID.String()), time.Hour))

	res, err := NewViewCounter(f.videos, dedup, time.Hour).RecordView(ctx, video.ID.String(), guest)
	require.NoError(t, err)
	assert.False(t, res.Counted)
	assert.Equal(t, int64(0), res.ViewCount)
	assert.Equal(t, int64(0), f.reload(t, video.ID).ViewCount)
}

func TestRecordViewErrors(t *testing.T) {
	f := newFixture(t)
	video := f.register(t, "up-1")
	vc := NewViewCounter(f.videos, cache.NewMemoryDedupCache(nil), 0)
	ctx := context.Background()

	_, err := vc.RecordView(ctx, uuid.NewString(), "user-a")
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	_, err = vc.RecordView(ctx, "not-a-uuid", "user-a")
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	_, err = vc.RecordView(ctx, video.ID.String(), "")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = vc.RecordView(ctx, video.ID.String(), helper.GuestIdentity(""))
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestRecordViewCacheFailureStillCounts(t *testing.T) {
	f := newFixture(t)
	video := f.register(t, "up-1")
	vc := NewViewCounter(f.videos, failingCache{}, time.Hour)

	for i := 1; i <= 3; i++ {
		res, err := vc.RecordView(context.Background(), video.ID.String(), "user-a")
		require.NoError(t, err)
		assert.True(t, res.Counted)
		assert.ErrorIs(t, res.CacheErr, errBoom)
		assert.Equal(t, int64(i), res.ViewCount)
	}
}

func TestRecordViewPersistenceFailure(t *testing.T) {
	f := newFixture(t)
	video := f.register(t, "up-1")
	vc := NewViewCounter(failingVideos{f.videos}, cache.NewMemoryDedupCache(nil), time.Hour)

	_, err := vc.RecordView(context.Background(), video.ID.String(), "user-a")
	assert.True(t, errors.Is(err, errors.CodeInternal))
}
