package repositories

import (
	"context"
	"errors"
	"time"

	"vidhub/internal/domain/entities"

	"github.com/google/uuid"
)

var (
	// ErrVideoNotFound is returned by lookups that match no row.
	ErrVideoNotFound = errors.New("video not found")
	// ErrDuplicateLike is returned when the (user, video) unique constraint rejects an insert.
	ErrDuplicateLike = errors.New("like already exists")
)

type ListOptions struct {
	Take   int
	Skip   int
	Before *time.Time
	// Popular orders by view count instead of creation time.
	Popular bool
}

type VideoRepository interface {
	Create(ctx context.Context, video *entities.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Video, error)
	GetByUploadHandle(ctx context.Context, handle string) (*entities.Video, error)
	// MarkReady moves videos registered under handle from processing to ready
	// in one conditional write. It reports false when no processing row matched.
	MarkReady(ctx context.Context, handle string, t entities.ReadyTransition) (bool, error)
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, opts ListOptions) ([]*entities.Video, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, opts ListOptions) ([]*entities.Video, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type LikeRepository interface {
	Exists(ctx context.Context, userID, videoID uuid.UUID) (bool, error)
	// Insert returns ErrDuplicateLike when a like for the pair already exists.
	Insert(ctx context.Context, like *entities.Like) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, userID, videoID uuid.UUID) (bool, error)
	CountByVideo(ctx context.Context, videoID uuid.UUID) (int64, error)
}

type CommentRepository interface {
	// Create returns ErrVideoNotFound when the video no longer exists.
	Create(ctx context.Context, comment *entities.Comment) error
	// ListByVideo returns one page of comments, newest first, with authors
	// loaded, plus the total for the video.
	ListByVideo(ctx context.Context, videoID uuid.UUID, skip, take int) ([]*entities.Comment, int64, error)
}

type UserRepository interface {
	FindOrCreateByEmail(ctx context.Context, email string) (*entities.User, error)
}
