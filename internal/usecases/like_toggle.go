package usecases

import (
	"context"
	stderrors "errors"

	"vidhub/internal/domain/dto"
	"vidhub/internal/domain/entities"
	"vidhub/internal/domain/repositories"
	"vidhub/pkg/errors"

	"github.com/google/uuid"
)

type LikeToggler interface {
	Toggle(ctx context.Context, videoID string, userID uuid.UUID) (*dto.LikeToggleResponse, error)
}

type likeToggler struct {
	videos repositories.VideoRepository
	likes  repositories.LikeRepository
}

func NewLikeToggler(videos repositories.VideoRepository, likes repositories.LikeRepository) LikeToggler {
	return &likeToggler{videos: videos, likes: likes}
}

func (s *likeToggler) Toggle(ctx context.Context, videoID string, userID uuid.UUID) (*dto.LikeToggleResponse, error) {
	if userID == uuid.Nil {
		return nil, errors.ErrUnauthorized(nil)
	}
	id, err := uuid.Parse(videoID)
	if err != nil {
		return nil, errors.ErrNotFound(err)
	}
	if _, err := s.videos.GetByID(ctx, id); err != nil {
		return nil, notFoundOrInternal(err)
	}

	exists, err := s.likes.Exists(ctx, userID, id)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}

	liked := !exists
	if exists {
		if _, err := s.likes.Delete(ctx, userID, id); err != nil {
			return nil, errors.ErrInternal(err)
		}
	} else {
		err := s.likes.Insert(ctx, &entities.Like{ID: uuid.New(), UserID: userID, VideoID: id})
		// A concurrent toggle inserted first; report the like it created.
		if err != nil && !stderrors.Is(err, repositories.ErrDuplicateLike) {
			return nil, errors.ErrInternal(err)
		}
	}

	count, err := s.likes.CountByVideo(ctx, id)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	return &dto.LikeToggleResponse{Liked: liked, LikeCount: count}, nil
}
