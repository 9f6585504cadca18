// Package server exposes the review engine over HTTP: the review API, the
// GitHub webhook receiver, health, and the token-protected admin surface.
package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	intapp "github.com/kazushi-tech/specforge/internal/application"
	"github.com/kazushi-tech/specforge/internal/infrastructure/config"
	"github.com/kazushi-tech/specforge/internal/infrastructure/storage"
	"github.com/kazushi-tech/specforge/pkg/application"
)

// Version is reported by the health endpoint.
var Version = "0.1.0"

// Server routes review requests to the orchestrating services.
type Server struct {
	env         config.Env
	allowedAPIs []string
	reviews     *application.ReviewService
	prReviews   *intapp.PRReviewService // nil when GitHub integration is unconfigured
	store       *storage.ReportStore
	audit       *storage.AuditLog
	uiDir       string
	router      chi.Router
}

// New assembles the router. prReviews may be nil; PR endpoints then answer
// 503 instead of panicking on a half-configured deployment.
func New(env config.Env, cfg *config.Config, reviews *application.ReviewService, prReviews *intapp.PRReviewService,
	store *storage.ReportStore, audit *storage.AuditLog, uiDir string) *Server {

	if cfg == nil {
		cfg = config.Default()
	}

	s := &Server{
		env:         env,
		allowedAPIs: cfg.AllowedAPIs,
		reviews:     reviews,
		prReviews:   prReviews,
		store:       store,
		audit:       audit,
		uiDir:       uiDir,
	}

	r := chi.NewRouter()
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/review/run", s.handleReviewRun)

		r.Get("/public/status", s.handlePublicStatus)
		r.Get("/public/reviews/latest", s.handlePublicLatestReview)

		r.Group(func(r chi.Router) {
			r.Use(verifyGithubSignature(env.WebhookSecret, env.Production()))
			r.Post("/webhooks/github", s.handleWebhook)
		})

		r.Group(func(r chi.Router) {
			r.Use(verifyAdminToken(env.AdminToken, env.Production()))
			r.Get("/admin/events", s.handleAdminEvents)
		})
	})

	r.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/index.html", http.StatusFound)
	})
	r.Group(func(r chi.Router) {
		r.Use(verifyAdminToken(env.AdminToken, env.Production()))
		r.Handle("/ui/*", http.StripPrefix("/ui/", http.FileServer(http.Dir(s.uiDir))))
	})

	s.router = r
	return s
}

// Handler returns the assembled router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving HTTP on the configured port.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.env.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute,
	}

	log.Printf("SpecForge review server listening on %s", addr)
	return srv.ListenAndServe()
}
