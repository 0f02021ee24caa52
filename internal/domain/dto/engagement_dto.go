package dto

type ViewCountResponse struct {
	VideoID   string `json:"videoId"`
	ViewCount int64  `json:"viewCount"`
}

type LikeToggleResponse struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}
