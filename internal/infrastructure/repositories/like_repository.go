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

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) repositories.LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Exists(ctx context.Context, userID, videoID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&entities.Like{}).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Count(&n).Error
	return n > 0, err
}

func (r *likeRepository) Insert(ctx context.Context, like *entities.Like) error {
	if like.ID == uuid.Nil {
		like.ID = uuid.New()
	}
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now().UTC()
	}
	err := r.db.WithContext(ctx).Create(like).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repositories.ErrDuplicateLike
	}
	return err
}

func (r *likeRepository) Delete(ctx context.Context, userID, videoID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Delete(&entities.Like{})
	return res.RowsAffected > 0, res.Error
}

func (r *likeRepository) CountByVideo(ctx context.Context, videoID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&entities.Like{}).
		Where("video_id = ?", videoID).
		Count(&n).Error
	return n, err
}
