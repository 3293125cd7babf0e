package api

import "github.com/desichan/desichan/shared/domain"

// Request DTOs

// CreatePostRequest is the "json" field of the multipart form; the optional file goes in "media".
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// Response DTOs

type CreatedResponse struct {
	Id int64 `json:"id"`
}

type PostListResponse struct {
	Posts []*domain.Post `json:"posts"`
}
