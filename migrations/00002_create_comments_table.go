package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateCommentsTable, downCreateCommentsTable)
}

func upCreateCommentsTable(ctx context.Context, tx *sql.Tx) error {
	createCommentTable := `
	CREATE TABLE comments (
		id UUID PRIMARY KEY,
		video_id UUID NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		content VARCHAR(200) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	CREATE INDEX idx_comments_video_created ON comments (video_id, created_at DESC);
	`
	if _, err := tx.ExecContext(ctx, createCommentTable); err != nil {
		return fmt.Errorf("could not create comments table: %w", err)
	}
	return nil
}

func downCreateCommentsTable(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS comments;"); err != nil {
		return fmt.Errorf("could not drop table comments: %w", err)
	}
	return nil
}
