package usecases

import (
	"context"
	"sync"
	"testing"

	"vidhub/internal/domain/repositories"
	"vidhub/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleScenario(t *testing.T) {
	f := newFixture(t)
	video := f.register(t, "up-1")
	lt := NewLikeToggler(f.videos, f.likes)
	userA := uuid.New()

	res, err := lt.Toggle(context.Background(), video.ID.String(), userA)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, int64(1), res.LikeCount)

	res, err = lt.Toggle(context.Background(), video.ID.String(), userA)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, int64(0), res.LikeCount)
}

func TestToggleCountsAllUsers(t *testing.T) {
	f := newFixture(t)
	video := f.register(t, "up-1")
	lt := NewLikeToggler(f.videos, f.likes)

	for i := 0; i < 3; i++ {
		res, err := lt.Toggle(context.Background(), video.ID.String(), uuid.New())
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), res.LikeCount)
	}
}

func TestToggleSequentialAlternates(t *testing.T) {
	f := newFixture(t)
	video := f.register(t, "up-1")
	lt := NewLikeToggler(f.videos, f.likes)
	user := uuid.New()

	for i := 0; i < 7; i++ {
		res, err := lt.Toggle(context.Background(), video.ID.String(), user)
		require.NoError(t, err)
		assert.Equal(t, i%2 == 0, res.Liked)
		assert.LessOrEqual(t, res.LikeCount, int64(1))
	}
}

func TestToggleConcurrentSameUser(t *testing.T) {
	f := newFixture(t)
	video := f.register(t, "up-1")
	lt := NewLikeToggler(f.videos, f.likes)
	user := uuid.New()

	const k = 25
	var wg sync.WaitGroup
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := lt.Toggle(context.Background(), video.ID.String(), user)
			assert.NoError(t, err)
			if res != nil {
				assert.LessOrEqual(t, res.LikeCount, int64(1))
			}
		}()
	}
	wg.Wait()

	count, err := f.likes.CountByVideo(context.Background(), video.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, count, int64(1))

	exists, err := f.likes.Exists(context.Background(), user, video.ID)
	require.NoError(t, err)
	assert.Equal(t, exists, count == 1)
}

// blindLikes never observes an existing like, forcing the insert race path.
type blindLikes struct {
	repositories.LikeRepository
}

func (blindLikes) Exists(context.Context, uuid.UUID, uuid.UUID) (bool, error) { return false, nil }

func TestToggleDuplicateInsertReportsLiked(t *testing.T) {
	f := newFixture(t)
	video := f.register(t, "up-1")
	user := uuid.New()

	_, err := NewLikeToggler(f.videos, f.likes).Toggle(context.Background(), video.ID.String(), user)
	require.NoError(t, err)

	res, err := NewLikeToggler(f.videos, blindLikes{f.likes}).Toggle(context.Background(), video.ID.String(), user)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, int64(1), res.LikeCount)
}

func TestToggleErrors(t *testing.T) {
	f := newFixture(t)
	video := f.register(t, "up-1")
	lt := NewLikeToggler(f.videos, f.likes)

	_, err := lt.Toggle(context.Background(), uuid.NewString(), uuid.New())
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	_, err = lt.Toggle(context.Background(), video.ID.String(), uuid.Nil)
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))
}
