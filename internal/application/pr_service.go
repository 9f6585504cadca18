// Package application coordinates pull-request reviews: fetching changed
// files, reviewing each, aggregating, and publishing the report back to
// GitHub.
package application

import (
	"context"
	"fmt"

	"github.com/kazushi-tech/specforge/internal/infrastructure/github"
	"github.com/kazushi-tech/specforge/internal/infrastructure/storage"
	"github.com/kazushi-tech/specforge/pkg/application"
	"github.com/kazushi-tech/specforge/pkg/domain/review"
	"github.com/kazushi-tech/specforge/pkg/engine"
	"github.com/kazushi-tech/specforge/pkg/report"
)

// PRGateway is the GitHub surface the PR review flow needs.
type PRGateway interface {
	FetchRequirementsFiles(ctx context.Context, prNumber int) ([]github.PRFile, error)
	UpsertReviewComment(ctx context.Context, prNumber int, body string) (*github.CommentResult, error)
	CreateCheckRun(ctx context.Context, opts github.CheckRunOptions) (int64, error)
}

// PRReviewService reviews every changed requirements file of a pull request
// and posts the aggregated report.
type PRReviewService struct {
	gateway PRGateway
	reviews *application.ReviewService
	store   *storage.ReportStore
	marker  string
}

// NewPRReviewService wires the PR review flow.
func NewPRReviewService(gateway PRGateway, reviews *application.ReviewService, store *storage.ReportStore, marker string) *PRReviewService {
	return &PRReviewService{gateway: gateway, reviews: reviews, store: store, marker: marker}
}

// PRReviewOutcome is the full outcome of one PR review pass. Skipped is
// non-empty when the PR had nothing reviewable.
type PRReviewOutcome struct {
	Skipped    string                `json:"skipped,omitempty"`
	Result     *review.Result        `json:"result,omitempty"`
	Report     string                `json:"report,omitempty"`
	Saved      *storage.SavedPaths   `json:"saved,omitempty"`
	Comment    *github.CommentResult `json:"comment,omitempty"`
	CheckRunID int64                 `json:"checkRunId,omitempty"`
}

// ReviewPR runs the whole flow. dryRun renders the report without saving,
// commenting or reporting a check run. A check run is created only when
// headSHA is known (webhook deliveries carry it).
func (s *PRReviewService) ReviewPR(ctx context.Context, prNumber int, headSHA string, dryRun bool) (*PRReviewOutcome, error) {
	files, err := s.gateway.FetchRequirementsFiles(ctx, prNumber)
	if err != nil {
		return nil, fmt.Errorf("fetch PR files: %w", err)
	}
	if len(files) == 0 {
		return &PRReviewOutcome{Skipped: "no requirements files changed"}, nil
	}

	var results []*review.Result
	for _, f := range files {
		if f.Content == "" {
			continue
		}
		result, err := s.reviews.Run(ctx, application.ReviewOptions{
			Source:   review.SourcePR,
			FilePath: f.Filename,
			PRNumber: prNumber,
			Content:  f.Content,
		})
		if err != nil {
			return nil, fmt.Errorf("review %s: %w", f.Filename, err)
		}
		results = append(results, result)
	}
	if len(results) == 0 {
		return &PRReviewOutcome{Skipped: "no reviewable content found"}, nil
	}

	aggregated, err := engine.AggregateResults(results)
	if err != nil {
		return nil, err
	}

	outcome := &PRReviewOutcome{
		Result: aggregated,
		Report: report.GenerateMarkdown(aggregated, s.marker),
	}
	if dryRun {
		return outcome, nil
	}

	saved, err := s.store.Save(aggregated)
	if err != nil {
		return nil, fmt.Errorf("save review result: %w", err)
	}
	outcome.Saved = saved

	comment, err := s.gateway.UpsertReviewComment(ctx, prNumber, outcome.Report)
	if err != nil {
		return nil, fmt.Errorf("post PR comment: %w", err)
	}
	outcome.Comment = comment

	if headSHA != "" {
		checkID, err := s.gateway.CreateCheckRun(ctx, github.CheckRunOptions{
			HeadSHA:    headSHA,
			Result:     aggregated,
			Conclusion: github.DetermineConclusion(aggregated),
		})
		if err != nil {
			return nil, fmt.Errorf("create check run: %w", err)
		}
		outcome.CheckRunID = checkID
	}

	return outcome, nil
}
