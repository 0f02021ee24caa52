package repositories

import (
	"context"
	"errors"
	"time"

	"vidhub/internal/domain/entities"
	"vidhub/internal/domain/repositories"
	"vidhub/pkg/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) repositories.VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *entities.Video) error {
	if video.ID == uuid.Nil {
		video.ID = uuid.New()
	}
	now := time.Now().UTC()
	if video.CreatedAt.IsZero() {
		video.CreatedAt = now
	}
	video.UpdatedAt = now
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *videoRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Video, error) {
	var video entities.Video
	if err := r.db.WithContext(ctx).First(&video, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &video, nil
}

func (r *videoRepository) GetByUploadHandle(ctx context.Context, handle string) (*entities.Video, error) {
	var video entities.Video
	err := r.db.WithContext(ctx).
		Where("upload_handle = ?", handle).
		Order("created_at ASC").
		First(&video).Error
	if err != nil {
		return nil, translate(err)
	}
	return &video, nil
}

func (r *videoRepository) MarkReady(ctx context.Context, handle string, t entities.ReadyTransition) (bool, error) {
	// Single conditional UPDATE: replays and concurrent deliveries match zero rows.
	res := r.db.WithContext(ctx).
		Model(&entities.Video{}).
		Where("upload_handle = ? AND processing_state = ?", handle, constants.VideoStateProcessing).
		Updates(map[string]any{
			"processing_state":    constants.VideoStateReady,
			"asset_id":            t.AssetID,
			"playback_reference":  t.PlaybackReference,
			"thumbnail_reference": t.ThumbnailReference,
			"duration":            t.Duration,
			"updated_at":          time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *videoRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Video{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repositories.ErrVideoNotFound
	}
	return nil
}

func (r *videoRepository) List(ctx context.Context, opts repositories.ListOptions) ([]*entities.Video, error) {
	q := r.db.WithContext(ctx).Model(&entities.Video{})
	if opts.Before != nil && !opts.Popular {
		q = q.Where("created_at < ?", *opts.Before)
	}
	var videos []*entities.Video
	if err := q.Order(orderClause(opts)).Offset(opts.Skip).Limit(opts.Take).Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, opts repositories.ListOptions) ([]*entities.Video, int64, error) {
	q := r.db.WithContext(ctx).Model(&entities.Video{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []*entities.Video
	if err := q.Order(orderClause(opts)).Offset(opts.Skip).Limit(opts.Take).Find(&videos).Error; err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (r *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&entities.Video{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repositories.ErrVideoNotFound
	}
	return nil
}

func orderClause(opts repositories.ListOptions) string {
	if opts.Popular {
		return "view_count DESC, created_at DESC"
	}
	return "created_at DESC"
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrVideoNotFound
	}
	return err
}
