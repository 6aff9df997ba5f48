package dto

import "github.com/google/uuid"

type PostResponse struct {
	ID           uuid.UUID `json:"id"`
	Caption      string    `json:"caption"`
	MediaURL     string    `json:"media_url,omitempty"`
	CreatedAt    string    `json:"created_at"`
	Author       UserInfo  `json:"author"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	LikedByMe    bool      `json:"liked_by_me"`
}

type LikeResponse struct {
	Action    string `json:"action"`
	LikeCount int64  `json:"like_count"`
}

type CommentRequest struct {
	Content string `json:"content" form:"content"`
}

type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	Content   string    `json:"content"`
	CreatedAt string    `json:"created_at"`
	Author    UserInfo  `json:"author"`
}
