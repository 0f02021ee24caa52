package mapper

import (
	"vidhub/internal/domain/dto"
	"vidhub/internal/domain/entities"
)

func VideoToDTO(v *entities.Video) *dto.VideoDTO {
	return &dto.VideoDTO{
		VideoID:            v.ID.String(),
		OwnerID:            v.OwnerID.String(),
		Title:              v.Title,
		Description:        v.Description,
		ProcessingState:    v.ProcessingState,
		PlaybackReference:  v.PlaybackReference,
		ThumbnailReference: v.ThumbnailReference,
		Duration:           v.Duration,
		ViewCount:          v.ViewCount,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func VideosToDTO(videos []*entities.Video) []*dto.VideoDTO {
	out := make([]*dto.VideoDTO, 0, len(videos))
	for _, v := range videos {
		out = append(out, VideoToDTO(v))
	}
	return out
}

func CommentToDTO(c *entities.Comment) *dto.CommentDTO {
	out := &dto.CommentDTO{
		CommentID: c.ID.String(),
		VideoID:   c.VideoID.String(),
		UserID:    c.UserID.String(),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
	if c.User != nil {
		out.Author = c.User.Email
	}
	return out
}

func CommentsToDTO(comments []*entities.Comment) []*dto.CommentDTO {
	out := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentToDTO(c))
	}
	return out
}
