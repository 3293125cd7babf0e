package handler

import (
	"context"

	"github.com/desichan/desichan/backend/internal/service"
	"github.com/desichan/desichan/shared/config"
)

// HealthChecker is anything the readiness probe depends on.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth     service.AuthService
	boards   service.BoardService
	posts    service.PostService
	comments service.CommentService
	reports  service.ReportService
	activity service.UserActivityService
	health   HealthChecker
	cfg      *config.Config
}

func New(
	auth service.AuthService,
	boards service.BoardService,
	posts service.PostService,
	comments service.CommentService,
	reports service.ReportService,
	activity service.UserActivityService,
	health HealthChecker,
	cfg *config.Config,
) *Handler {
	return &Handler{
		auth:     auth,
		boards:   boards,
		posts:    posts,
		comments: comments,
		reports:  reports,
		activity: activity,
		health:   health,
		cfg:      cfg,
	}
}
