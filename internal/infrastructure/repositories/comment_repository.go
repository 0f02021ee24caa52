package repositories

import (
	"context"
	"errors"
	"time"

	"vidhub/internal/domain/entities"
	"vidhub/internal/domain/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) repositories.CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entities.Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	now := time.Now().UTC()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	comment.UpdatedAt = now
	err := r.db.WithContext(ctx).Omit("User").Create(comment).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return repositories.ErrVideoNotFound
	}
	return err
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, skip, take int) ([]*entities.Comment, int64, error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&entities.Comment{}).Where("video_id = ?", videoID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []*entities.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("video_id = ?", videoID).
		Order("created_at DESC").
		Offset(skip).
		Limit(take).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}
