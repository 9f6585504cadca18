package cli

import (
	"context"
	"fmt"
	"os"

	intapp "github.com/kazushi-tech/specforge/internal/application"
	"github.com/kazushi-tech/specforge/internal/infrastructure/config"
	"github.com/kazushi-tech/specforge/internal/infrastructure/github"
	"github.com/kazushi-tech/specforge/internal/infrastructure/storage"
	"github.com/kazushi-tech/specforge/pkg/application"
)

// Services bundles everything a command needs, wired from the current
// directory and the process environment.
type Services struct {
	Root    string
	Cfg     *config.Config
	Env     config.Env
	Reviews *application.ReviewService
	Store   *storage.ReportStore
	Audit   *storage.AuditLog
}

func loadServicesForCurrentDir() (*Services, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determine working directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	env := config.LoadEnv()

	audit := storage.NewAuditLog(cwd)
	reviews := application.NewReviewService(
		storage.NewFileContentSource(cwd),
		audit,
		env.ReviewProvider,
		env.GeminiAPIKey,
	)
	store := storage.NewReportStore(cwd, cfg.Comment.Marker)

	return &Services{
		Root:    cwd,
		Cfg:     cfg,
		Env:     env,
		Reviews: reviews,
		Store:   store,
		Audit:   audit,
	}, nil
}

// prReviewService builds the GitHub-backed PR flow, or an error when the
// token is missing.
func (s *Services) prReviewService(ctx context.Context) (*intapp.PRReviewService, error) {
	if s.Env.GithubToken == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN is required for PR reviews")
	}
	gh := github.NewClient(ctx, s.Env.GithubToken, s.Env.GithubOwner, s.Env.GithubRepo, s.Cfg.Comment.Marker)
	return intapp.NewPRReviewService(gh, s.Reviews, s.Store, s.Cfg.Comment.Marker), nil
}
