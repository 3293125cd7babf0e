package api

import "github.com/desichan/desichan/shared/domain"

// CreateCommentRequest is the "json" field of the multipart form; the optional file goes in "media".
type CreateCommentRequest struct {
	Content  string            `json:"content" validate:"required"`
	ParentId *domain.CommentId `json:"parent_id,omitempty"`
}

// ThreadResponse carries both the nested forest and the flat render order.
type ThreadResponse struct {
	domain.Thread
}

type CommentListResponse struct {
	Comments []*domain.Comment `json:"comments"`
}
