package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/desichan/desichan/backend/internal/handler"
	"github.com/desichan/desichan/backend/internal/service"
	"github.com/desichan/desichan/backend/internal/storage/fs"
	"github.com/desichan/desichan/backend/internal/storage/minio"
	"github.com/desichan/desichan/backend/internal/storage/pg"
	"github.com/desichan/desichan/backend/internal/utils"
	"github.com/desichan/desichan/shared/config"
	"github.com/desichan/desichan/shared/jwt"
	"github.com/desichan/desichan/shared/logger"
	mw "github.com/desichan/desichan/shared/middleware"
	rl "github.com/desichan/desichan/shared/middleware/ratelimiter"
)

// RateLimits are shared across requests; Close stops their sweepers.
type RateLimits struct {
	// Auth guards register and login per IP.
	Auth *rl.UserRateLimiter
	// Write guards content creation and reports per user.
	Write *rl.UserRateLimiter
	// Read guards the public read API per IP.
	Read *rl.UserRateLimiter
}

// Dependencies holds everything the router and main need.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
	RateLimits     RateLimits
	// MediaRoot is served under Config.Public.Media.URLPrefix; empty for the minio backend.
	MediaRoot string
}

func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	media, mediaRoot, err := newMediaStore(ctx, cfg)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	auth := service.NewAuth(storage, utils.CredentialsValidator{}, jwtService)
	boards := service.NewBoard(cfg.Public.Boards)
	posts := service.NewPost(storage, utils.PostValidator{}, boards, auth, media, service.PostConfig{
		PostsPerPage: cfg.Public.PostsPerPage,
		SearchLimit:  cfg.Public.SearchLimit,
	})
	comments := service.NewComment(storage, storage, utils.CommentValidator{}, auth, media)
	reports := service.NewReport(storage, utils.ReportValidator{}, storage, storage, auth)
	activity := service.NewUserActivity(storage, cfg.Public.UserActivityLimit)

	h := handler.New(auth, boards, posts, comments, reports, activity, storage, cfg)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: mw.NewAuth(jwtService, auth, cfg.Public.HTTP.SecureCookies),
		RateLimits: RateLimits{
			Auth:  rl.New(1, 5, time.Hour),
			Write: rl.New(1.0/5, 3, time.Hour),
			Read:  rl.New(50, 100, 10*time.Minute),
		},
		MediaRoot: mediaRoot,
	}, nil
}

func newMediaStore(ctx context.Context, cfg *config.Config) (service.MediaStore, string, error) {
	switch cfg.Public.Media.Backend {
	case "fs":
		store, err := fs.New(cfg.Public.Media.Root, cfg.Public.Media.URLPrefix)
		if err != nil {
			return nil, "", err
		}
		logger.Log.Info("using filesystem media store", "root", store.Root())
		return store, store.Root(), nil
	case "minio":
		store, err := minio.New(ctx, cfg.Private.Minio)
		if err != nil {
			return nil, "", err
		}
		logger.Log.Info("using minio media store", "bucket", cfg.Private.Minio.Bucket)
		return store, "", nil
	default:
		return nil, "", fmt.Errorf("unknown media backend %q", cfg.Public.Media.Backend)
	}
}

func (d *Dependencies) Close() {
	d.RateLimits.Auth.Stop()
	d.RateLimits.Write.Stop()
	d.RateLimits.Read.Stop()
	if err := d.Storage.Cleanup(); err != nil {
		logger.Log.Error("failed to close storage", "error", err)
	}
}
