package usecases

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"vidhub/internal/domain/entities"
	"vidhub/internal/domain/repositories"
	consts "vidhub/pkg/constants"
	"vidhub/pkg/errors"

	"github.com/google/uuid"
)

const (
	maxTitleLen       = 50
	maxDescriptionLen = 300
)

type RegistrationService interface {
	// Register records a freshly uploaded video in the processing state.
	// Retries create additional rows.
	Register(ctx context.Context, ownerID uuid.UUID, uploadHandle, title, description string) (*entities.Video, error)
}

type registrationService struct {
	videos repositories.VideoRepository
}

func NewRegistrationService(videos repositories.VideoRepository) RegistrationService {
	return &registrationService{videos: videos}
}

func (s *registrationService) Register(ctx context.Context, ownerID uuid.UUID, uploadHandle, title, description string) (*entities.Video, error) {
	uploadHandle = strings.TrimSpace(uploadHandle)
	title = strings.TrimSpace(title)

	switch {
	case ownerID == uuid.Nil:
		return nil, errors.ErrUnauthorized(nil)
	case uploadHandle == "":
		return nil, errors.ErrBadRequest(fmt.Errorf("upload handle is required"))
	case title == "" || utf8.RuneCountInString(title) > maxTitleLen:
		return nil, errors.ErrBadRequest(fmt.Errorf("title must be 1-%d characters", maxTitleLen))
	case utf8.RuneCountInString(description) > maxDescriptionLen:
		return nil, errors.ErrBadRequest(fmt.Errorf("description exceeds %d characters", maxDescriptionLen))
	}

	video := &entities.Video{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		Title:           title,
		Description:     description,
		UploadHandle:    uploadHandle,
		ProcessingState: consts.VideoStateProcessing,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		return nil, errors.ErrInternal(err)
	}
	return video, nil
}
