package entities

import (
	"time"

	"github.com/google/uuid"
)

type Video struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID            uuid.UUID `gorm:"type:uuid;not null;index"`
	Title              string    `gorm:"type:varchar(50);not null"`
	Description        string    `gorm:"type:varchar(300);not null"`
	UploadHandle       string    `gorm:"type:varchar(255);index"`
	AssetID            string    `gorm:"type:varchar(255)"`
	PlaybackReference  string    `gorm:"type:varchar(500)"`
	ThumbnailReference string    `gorm:"type:varchar(500)"`
	ProcessingState    string    `gorm:"type:varchar(20);not null"`
	ViewCount          int64     `gorm:"not null;default:0"`
	Duration           string    `gorm:"type:varchar(20)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ReadyTransition carries the fields written when a video leaves processing.
type ReadyTransition struct {
	AssetID            string
	PlaybackReference  string
	ThumbnailReference string
	Duration           string
}
