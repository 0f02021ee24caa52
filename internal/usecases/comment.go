package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"vidhub/internal/domain/dto"
	"vidhub/internal/domain/entities"
	"vidhub/internal/domain/mapper"
	"vidhub/internal/domain/repositories"
	"vidhub/pkg/errors"

	"github.com/google/uuid"
)

const (
	DefaultCommentPageSize = 10
	MaxCommentPageSize     = 100
	maxCommentLen          = 200
)

type CommentService interface {
	// List returns a 1-based page of a video's comments, newest first.
	List(ctx context.Context, videoID string, page, take int) (*dto.CommentPageResponse, error)
	Create(ctx context.Context, videoID string, author *entities.User, content string) (*dto.CommentDTO, error)
}

type commentService struct {
	videos   repositories.VideoRepository
	comments repositories.CommentRepository
}

func NewCommentService(videos repositories.VideoRepository, comments repositories.CommentRepository) CommentService {
	return &commentService{videos: videos, comments: comments}
}

func (s *commentService) List(ctx context.Context, videoID string, page, take int) (*dto.CommentPageResponse, error) {
	id, err := s.videoID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	page = max(page, 1)
	if take == 0 {
		take = DefaultCommentPageSize
	}
	take = min(max(take, 1), MaxCommentPageSize)

	comments, total, err := s.comments.ListByVideo(ctx, id, (page-1)*take, take)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	return &dto.CommentPageResponse{
		TotalCount: total,
		TotalPages: int((total + int64(take) - 1) / int64(take)),
		Page:       page,
		Data:       mapper.CommentsToDTO(comments),
	}, nil
}

func (s *commentService) Create(ctx context.Context, videoID string, author *entities.User, content string) (*dto.CommentDTO, error) {
	if author == nil || author.ID == uuid.Nil {
		return nil, errors.ErrUnauthorized(nil)
	}
	content = strings.TrimSpace(content)
	if content == "" || utf8.RuneCountInString(content) > maxCommentLen {
		return nil, errors.ErrBadRequest(fmt.Errorf("comment must be 1-%d characters", maxCommentLen))
	}
	id, err := s.videoID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	comment := &entities.Comment{
		ID:      uuid.New(),
		VideoID: id,
		UserID:  author.ID,
		Content: content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		if stderrors.Is(err, repositories.ErrVideoNotFound) {
			return nil, errors.ErrNotFound(err)
		}
		return nil, errors.ErrInternal(err)
	}
	comment.User = author
	return mapper.CommentToDTO(comment), nil
}

// videoID resolves the path parameter to an existing video.
func (s *commentService) videoID(ctx context.Context, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.ErrNotFound(err)
	}
	if _, err := s.videos.GetByID(ctx, id); err != nil {
		return uuid.Nil, notFoundOrInternal(err)
	}
	return id, nil
}
