package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/desichan/desichan/backend/internal/setup"
	mw "github.com/desichan/desichan/shared/middleware"
	"github.com/desichan/desichan/shared/middleware/metrics"
)

// New builds the chi router with every route.
// A rate limiter passed to Use counts requests across all routes of that group combined.
func New(deps *setup.Dependencies) http.Handler {
	cfg := deps.Config.Public
	h := deps.Handler
	authMw := deps.AuthMiddleware

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if cfg.HTTP.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.HTTP.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.SecurityHeaders(cfg.HTTP.SecureCookies))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", metrics.Handler())

	if deps.MediaRoot != "" {
		prefix := "/" + strings.Trim(cfg.Media.URLPrefix, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(deps.MediaRoot))))
	}

	authLimit := mw.RateLimit(deps.RateLimits.Auth, mw.GetIP)
	writeLimit := mw.RateLimit(deps.RateLimits.Write, mw.GetUserIDFromContext)
	readLimit := mw.RateLimit(deps.RateLimits.Read, mw.GetIP)

	r.Route("/v1", func(v1 chi.Router) {
		v1.Route("/auth", func(auth chi.Router) {
			auth.With(authLimit).Post("/register", h.Register)
			auth.With(authLimit).Post("/login", h.Login)
			auth.Post("/logout", h.Logout)
		})

		// public reads
		v1.Group(func(public chi.Router) {
			public.Use(authMw.OptionalAuth())
			public.Use(readLimit)
			public.Get("/boards", h.ListBoards)
			public.Get("/boards/{slug}/posts", h.BoardPosts)
			public.Get("/posts/{id}", h.GetPost)
			public.Get("/posts/{id}/comments", h.PostThread)
			public.Get("/users/{id}/posts", h.UserPosts)
			public.Get("/users/{id}/comments", h.UserComments)
			public.Get("/search", h.Search)
		})

		v1.Group(func(loggedIn chi.Router) {
			loggedIn.Use(authMw.NeedAuth())
			loggedIn.Get("/me", h.Me)
			loggedIn.Delete("/posts/{id}", h.DeletePost)
			loggedIn.Delete("/comments/{id}", h.DeleteComment)

			loggedIn.With(writeLimit).Post("/boards/{slug}/posts", h.CreatePost)
			loggedIn.With(writeLimit).Post("/posts/{id}/comments", h.CreateComment)
			loggedIn.With(writeLimit).Post("/reports", h.FileReport)
		})

		v1.Route("/admin", func(admin chi.Router) {
			admin.Use(authMw.AdminOnly())
			admin.Get("/reports", h.Reports)
			admin.Put("/reports/{id}/resolve", h.ResolveReport)
			admin.Get("/posts", h.AllPosts)
			admin.Get("/comments", h.AllComments)
		})
	})

	return r
}
