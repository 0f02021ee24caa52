package usecases

import (
	"context"
	"strings"

	"vidhub/internal/domain/dto"
	"vidhub/internal/domain/mapper"
	"vidhub/internal/domain/repositories"
	consts "vidhub/pkg/constants"
	"vidhub/pkg/errors"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type VideoQuery interface {
	Feed(ctx context.Context, req dto.VideoListRequestDTO) (*dto.VideoFeedResponse, error)
	Mine(ctx context.Context, ownerID uuid.UUID, req dto.VideoListRequestDTO) (*dto.MyVideosResponse, error)
	Detail(ctx context.Context, videoID string) (*dto.VideoDTO, error)
}

type videoQuery struct {
	videos repositories.VideoRepository
	likes  repositories.LikeRepository
}

func NewVideoQuery(videos repositories.VideoRepository, likes repositories.LikeRepository) VideoQuery {
	return &videoQuery{videos: videos, likes: likes}
}

func (q *videoQuery) Feed(ctx context.Context, req dto.VideoListRequestDTO) (*dto.VideoFeedResponse, error) {
	opts, err := listOptions(req)
	if err != nil {
		return nil, err
	}
	if !opts.Popular {
		opts.Before = req.LastCursor
	} else {
		opts.Skip = max(req.Skip, 0)
	}

	videos, err := q.videos.List(ctx, opts)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	resp := &dto.VideoFeedResponse{Data: mapper.VideosToDTO(videos)}
	if !opts.Popular && len(videos) == opts.Take {
		last := videos[len(videos)-1].CreatedAt
		resp.NextCursor = &last
	}
	return resp, nil
}

func (q *videoQuery) Mine(ctx context.Context, ownerID uuid.UUID, req dto.VideoListRequestDTO) (*dto.MyVideosResponse, error) {
	if ownerID == uuid.Nil {
		return nil, errors.ErrUnauthorized(nil)
	}
	opts, err := listOptions(req)
	if err != nil {
		return nil, err
	}
	opts.Skip = max(req.Skip, 0)

	videos, total, err := q.videos.ListByOwner(ctx, ownerID, opts)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	return &dto.MyVideosResponse{Total: total, Data: mapper.VideosToDTO(videos)}, nil
}

func (q *videoQuery) Detail(ctx context.Context, videoID string) (*dto.VideoDTO, error) {
	id, err := uuid.Parse(videoID)
	if err != nil {
		return nil, errors.ErrNotFound(err)
	}
	video, err := q.videos.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}
	count, err := q.likes.CountByVideo(ctx, id)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	out := mapper.VideoToDTO(video)
	out.LikeCount = count
	return out, nil
}

func listOptions(req dto.VideoListRequestDTO) (repositories.ListOptions, error) {
	opts := repositories.ListOptions{Take: req.Take}
	if opts.Take <= 0 {
		opts.Take = DefaultPageSize
	}
	if opts.Take > MaxPageSize {
		opts.Take = MaxPageSize
	}
	switch strings.ToLower(req.Order) {
	case "", consts.OrderLatest:
	case consts.OrderPopular:
		opts.Popular = true
	default:
		return opts, errors.ErrBadRequest(nil)
	}
	return opts, nil
}
