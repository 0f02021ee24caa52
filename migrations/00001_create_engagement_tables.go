package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateEngagementTables, downCreateEngagementTables)
}

func upCreateEngagementTables(ctx context.Context, tx *sql.Tx) error {
	createUserTable := `
	CREATE TABLE users (
		id UUID PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	if _, err := tx.ExecContext(ctx, createUserTable); err != nil {
		return fmt.Errorf("could not create users table: %w", err)
	}

	// playback_reference is set exactly when the row is ready.
	createVideoTable := `
	CREATE TABLE videos (
		id UUID PRIMARY KEY,
		owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title VARCHAR(50) NOT NULL,
		description VARCHAR(300) NOT NULL,
		upload_handle VARCHAR(255),
		asset_id VARCHAR(255),
		playback_reference VARCHAR(500),
		thumbnail_reference VARCHAR(500),
		processing_state VARCHAR(20) NOT NULL DEFAULT 'processing',
		view_count BIGINT NOT NULL DEFAULT 0,
		duration VARCHAR(20),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		CONSTRAINT chk_videos_state CHECK (processing_state IN ('processing', 'ready')),
		CONSTRAINT chk_videos_playback CHECK (
			(processing_state = 'ready') = (COALESCE(playback_reference, '') <> '')
		),
		CONSTRAINT chk_videos_view_count CHECK (view_count >= 0)
	);
	CREATE INDEX idx_videos_upload_handle ON videos (upload_handle);
	CREATE INDEX idx_videos_owner_id ON videos (owner_id);
	CREATE INDEX idx_videos_created_at ON videos (created_at DESC);
	`
	if _, err := tx.ExecContext(ctx, createVideoTable); err != nil {
		return fmt.Errorf("could not create videos table: %w", err)
	}

	createLikeTable := `
	CREATE TABLE likes (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		video_id UUID NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		CONSTRAINT uq_likes_user_video UNIQUE (user_id, video_id)
	);
	CREATE INDEX idx_likes_video_id ON likes (video_id);
	`
	if _, err := tx.ExecContext(ctx, createLikeTable); err != nil {
		return fmt.Errorf("could not create likes table: %w", err)
	}

	return nil
}

func downCreateEngagementTables(ctx context.Context, tx *sql.Tx) error {
	dropTables := []string{"likes", "videos", "users"}
	for _, table := range dropTables {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s;", table)); err != nil {
			return fmt.Errorf("could not drop table %s: %w", table, err)
		}
	}
	return nil
}
