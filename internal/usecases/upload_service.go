package usecases

import (
	"context"
	"fmt"
	"strings"

	"vidhub/internal/domain/dto"
	"vidhub/internal/domain/entities"
	"vidhub/internal/domain/repositories"
	"vidhub/pkg/errors"

	"github.com/google/uuid"
)

type UploadService interface {
	// ResolveUser maps a verified identity onto a local user, creating it on first sight.
	ResolveUser(ctx context.Context, id *repositories.Identity) (*entities.User, error)
	CreateDirectUpload(ctx context.Context) (*dto.DirectUpload, error)
	// DeleteVideo revokes the provider asset and removes the video. Only the owner may delete.
	DeleteVideo(ctx context.Context, videoID string, requester uuid.UUID) error
}

type uploadService struct {
	videos   repositories.VideoRepository
	users    repositories.UserRepository
	provider repositories.AssetProvider
}

func NewUploadService(videos repositories.VideoRepository, users repositories.UserRepository, provider repositories.AssetProvider) UploadService {
	return &uploadService{videos: videos, users: users, provider: provider}
}

func (s *uploadService) ResolveUser(ctx context.Context, id *repositories.Identity) (*entities.User, error) {
	if id == nil || strings.TrimSpace(id.Email) == "" {
		return nil, errors.ErrUnauthorized(nil)
	}
	user, err := s.users.FindOrCreateByEmail(ctx, id.Email)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	return user, nil
}

func (s *uploadService) CreateDirectUpload(ctx context.Context) (*dto.DirectUpload, error) {
	up, err := s.provider.CreateDirectUpload(ctx)
	if err != nil {
		return nil, errors.ErrInternal(fmt.Errorf("create direct upload: %w", err))
	}
	return up, nil
}

func (s *uploadService) DeleteVideo(ctx context.Context, videoID string, requester uuid.UUID) error {
	id, err := uuid.Parse(videoID)
	if err != nil {
		return errors.ErrNotFound(err)
	}
	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		return notFoundOrInternal(err)
	}
	if video.OwnerID != requester {
		return errors.ErrForbidden(nil)
	}
	if video.AssetID != "" {
		if err := s.provider.DeleteAsset(ctx, video.AssetID); err != nil {
			return errors.ErrInternal(fmt.Errorf("revoke asset %s: %w", video.AssetID, err))
		}
	}
	if err := s.videos.Delete(ctx, id); err != nil {
		return notFoundOrInternal(err)
	}
	return nil
}
