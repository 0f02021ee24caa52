package repositories_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"vidhub/internal/domain/entities"
	"vidhub/internal/domain/repositories"
	infra_repo "vidhub/internal/infrastructure/repositories"
	"vidhub/internal/testutils"
	"vidhub/internal/usecases"
	consts "vidhub/pkg/constants"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepositories(t *testing.T) {
	database := testutils.SetupPostgres(t)
	ctx := context.Background()

	videos := infra_repo.NewVideoRepository(database)
	likes := infra_repo.NewLikeRepository(database)
	users := infra_repo.NewUserRepository(database)
	comments := infra_repo.NewCommentRepository(database)

	owner, err := users.FindOrCreateByEmail(ctx, "Owner@Example.com")
	require.NoError(t, err)
	again, err := users.FindOrCreateByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, again.ID)

	t.Run("ready transition", func(t *testing.T) {
		v := &entities.Video{OwnerID: owner.ID, Title: "a", UploadHandle: "up-1", ProcessingState: consts.VideoStateProcessing}
		require.NoError(t, videos.Create(ctx, v))

		got, err := videos.GetByUploadHandle(ctx, "up-1")
		require.NoError(t, err)
		assert.Equal(t, v.ID, got.ID)

		tr := entities.ReadyTransition{AssetID: "asset-1", PlaybackReference: "https://stream.example/pb.m3u8", ThumbnailReference: "t", Duration: "02:05"}
		changed, err := videos.MarkReady(ctx, "up-1", tr)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = videos.MarkReady(ctx, "up-1", tr)
		require.NoError(t, err)
		assert.False(t, changed)

		got, err = videos.GetByID(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, consts.VideoStateReady, got.ProcessingState)
		assert.Equal(t, "02:05", got.Duration)

		_, err = videos.GetByUploadHandle(ctx, "up-missing")
		assert.ErrorIs(t, err, repositories.ErrVideoNotFound)
	})

	t.Run("ready requires playback", func(t *testing.T) {
		v := &entities.Video{OwnerID: owner.ID, Title: "b", UploadHandle: "up-2", ProcessingState: consts.VideoStateProcessing}
		require.NoError(t, videos.Create(ctx, v))
		_, err := videos.MarkReady(ctx, "up-2", entities.ReadyTransition{AssetID: "x"})
		assert.Error(t, err)
	})

	t.Run("view count and listing", func(t *testing.T) {
		base := time.Now().UTC().Add(-time.Hour)
		var ids []uuid.UUID
		for i := 0; i < 3; i++ {
			v := &entities.Video{OwnerID: owner.ID, Title: "l", UploadHandle: uuid.NewString(), ProcessingState: consts.VideoStateProcessing, CreatedAt: base.Add(time.Duration(i) * time.Second)}
			require.NoError(t, videos.Create(ctx, v))
			ids = append(ids, v.ID)
		}
		require.NoError(t, videos.IncrementViewCount(ctx, ids[0]))
		require.NoError(t, videos.IncrementViewCount(ctx, ids[0]))
		assert.ErrorIs(t, videos.IncrementViewCount(ctx, uuid.New()), repositories.ErrVideoNotFound)

		popular, err := videos.List(ctx, repositories.ListOptions{Take: 1, Popular: true})
		require.NoError(t, err)
		require.Len(t, popular, 1)
		assert.Equal(t, ids[0], popular[0].ID)
		assert.Equal(t, int64(2), popular[0].ViewCount)

		before := base.Add(2 * time.Second)
		older, err := videos.List(ctx, repositories.ListOptions{Take: 10, Before: &before})
		require.NoError(t, err)
		require.Len(t, older, 2)
		assert.Equal(t, ids[1], older[0].ID)

		mine, total, err := videos.ListByOwner(ctx, owner.ID, repositories.ListOptions{Take: 2})
		require.NoError(t, err)
		assert.Len(t, mine, 2)
		assert.GreaterOrEqual(t, total, int64(5))
	})

	t.Run("likes", func(t *testing.T) {
		v := &entities.Video{OwnerID: owner.ID, Title: "k", UploadHandle: uuid.NewString(), ProcessingState: consts.VideoStateProcessing}
		require.NoError(t, videos.Create(ctx, v))
		fan, err := users.FindOrCreateByEmail(ctx, "fan@example.com")
		require.NoError(t, err)

		require.NoError(t, likes.Insert(ctx, &entities.Like{UserID: fan.ID, VideoID: v.ID}))
		err = likes.Insert(ctx, &entities.Like{UserID: fan.ID, VideoID: v.ID})
		assert.ErrorIs(t, err, repositories.ErrDuplicateLike)

		ok, err := likes.Exists(ctx, fan.ID, v.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		n, err := likes.CountByVideo(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		require.NoError(t, videos.Delete(ctx, v.ID))
		n, err = likes.CountByVideo(ctx, v.ID)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.ErrorIs(t, videos.Delete(ctx, v.ID), repositories.ErrVideoNotFound)
	})

	t.Run("comments", func(t *testing.T) {
		v := &entities.Video{OwnerID: owner.ID, Title: "m", UploadHandle: uuid.NewString(), ProcessingState: consts.VideoStateProcessing}
		require.NoError(t, videos.Create(ctx, v))
		fan, err := users.FindOrCreateByEmail(ctx, "commenter@example.com")
		require.NoError(t, err)

		base := time.Now().UTC().Add(-time.Minute)
		for i := 0; i < 3; i++ {
			require.NoError(t, comments.Create(ctx, &entities.Comment{VideoID: v.ID, UserID: fan.ID, Content: "c", CreatedAt: base.Add(time.Duration(i) * time.Second)}))
		}
		err = comments.Create(ctx, &entities.Comment{VideoID: uuid.New(), UserID: fan.ID, Content: "c"})
		assert.ErrorIs(t, err, repositories.ErrVideoNotFound)

		page, total, err := comments.ListByVideo(ctx, v.ID, 0, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, page, 2)
		assert.True(t, page[0].CreatedAt.After(page[1].CreatedAt))
		require.NotNil(t, page[0].User)
		assert.Equal(t, "commenter@example.com", page[0].User.Email)

		require.NoError(t, videos.Delete(ctx, v.ID))
		_, total, err = comments.ListByVideo(ctx, v.ID, 0, 10)
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("concurrent toggles", func(t *testing.T) {
		v := &entities.Video{OwnerID: owner.ID, Title: "c", UploadHandle: uuid.NewString(), ProcessingState: consts.VideoStateProcessing}
		require.NoError(t, videos.Create(ctx, v))
		fan, err := users.FindOrCreateByEmail(ctx, "racer@example.com")
		require.NoError(t, err)

		toggler := usecases.NewLikeToggler(videos, likes)
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := toggler.Toggle(ctx, v.ID.String(), fan.ID)
				if assert.NoError(t, err) {
					assert.LessOrEqual(t, res.LikeCount, int64(1))
				}
			}()
		}
		wg.Wait()

		n, err := likes.CountByVideo(ctx, v.ID)
		require.NoError(t, err)
		assert.LessOrEqual(t, n, int64(1))
	})
}
