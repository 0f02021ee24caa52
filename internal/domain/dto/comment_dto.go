package dto

import "time"

type CreateCommentRequestDTO struct {
	Content string `json:"content" form:"content"`
}

type CommentDTO struct {
	CommentID string    `json:"commentId"`
	VideoID   string    `json:"videoId"`
	UserID    string    `json:"userId"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type CommentPageResponse struct {
	TotalCount int64         `json:"totalCount"`
	TotalPages int           `json:"totalPages"`
	Page       int           `json:"page"`
	Data       []*CommentDTO `json:"data"`
}
