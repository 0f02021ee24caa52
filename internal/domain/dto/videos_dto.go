package dto

import "time"

type VideoDTO struct {
	VideoID            string    `json:"videoId"`
	OwnerID            string    `json:"ownerId"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	ProcessingState    string    `json:"processingState"`
	PlaybackReference  string    `json:"playbackUrl,omitempty"`
	ThumbnailReference string    `json:"thumbnailUrl,omitempty"`
	Duration           string    `json:"duration,omitempty"`
	ViewCount          int64     `json:"viewCount"`
	LikeCount          int64     `json:"likeCount"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type RegisterVideoRequestDTO struct {
	UploadHandle string `json:"uploadHandle" form:"uploadHandle"`
	Title        string `json:"title" form:"title"`
	Description  string `json:"description" form:"description"`
}

type RegisterVideoResponse struct {
	VideoID         string `json:"videoId"`
	ProcessingState string `json:"processingState"`
}

type VideoListRequestDTO struct {
	Take       int
	Skip       int
	LastCursor *time.Time
	Order      string
}

type VideoFeedResponse struct {
	NextCursor *time.Time  `json:"nextCursor"`
	Data       []*VideoDTO `json:"data"`
}

type MyVideosResponse struct {
	Total int64       `json:"total"`
	Data  []*VideoDTO `json:"data"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
