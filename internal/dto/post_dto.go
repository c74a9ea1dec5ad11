package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePostInput struct {
	Content    string `json:"content" binding:"required"`
	Visibility string `json:"visibility" binding:"omitempty,oneof=public batch"`
}

type AddCommentInput struct {
	Text string `json:"text" binding:"required"`
}

type AuthorResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PhotoURL    *string   `json:"photo_url"`
	PassingYear int       `json:"passing_year"`
}

type CommentResponse struct {
	ID        uuid.UUID      `json:"id"`
	Text      string         `json:"text"`
	User      AuthorResponse `json:"user"`
	CreatedAt time.Time      `json:"created_at"`
}

// PostResponse mirrors the feed shape: likes are flattened to the liking
// user ids so the client can mark its own like without a second query.
type PostResponse struct {
	ID           uuid.UUID         `json:"id"`
	User         AuthorResponse    `json:"user"`
	Content      string            `json:"content"`
	Visibility   string            `json:"visibility"`
	BatchGroupID *uuid.UUID        `json:"batch_group_id,omitempty"`
	Likes        []string          `json:"likes"`
	Comments     []CommentResponse `json:"comments"`
	CreatedAt    time.Time         `json:"created_at"`
}

type LikeResult struct {
	Likes   int64 `json:"likes"`
	IsLiked bool  `json:"isLiked"`
}
