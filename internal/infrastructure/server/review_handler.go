package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/kazushi-tech/specforge/pkg/application"
	"github.com/kazushi-tech/specforge/pkg/domain/review"
	"github.com/kazushi-tech/specforge/pkg/report"
)

type reviewRunRequest struct {
	Source   string `json:"source"`
	FilePath string `json:"filePath"`
	PRNumber int    `json:"prNumber"`
	DryRun   bool   `json:"dryRun"`
}

func (s *Server) handleReviewRun(w http.ResponseWriter, r *http.Request) {
	var req reviewRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "invalid json"})
		return
	}

	switch req.Source {
	case "file":
		s.runFileReview(w, r, req)
	case "pr":
		s.runPRReview(w, r, req)
	default:
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": `source must be "file" or "pr"`})
	}
}

func (s *Server) runFileReview(w http.ResponseWriter, r *http.Request, req reviewRunRequest) {
	if req.FilePath == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": `filePath is required when source is "file"`})
		return
	}

	result, err := s.reviews.Run(r.Context(), application.ReviewOptions{
		Source:   review.SourceFile,
		FilePath: req.FilePath,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, application.ErrNoContent) {
			status = http.StatusBadRequest
		}
		render.Status(r, status)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return
	}

	if req.DryRun {
		render.JSON(w, r, map[string]any{
			"reviewId":        result.Metadata.ReviewID,
			"summary":         result.Summary,
			"findings":        result.Findings,
			"markdownPreview": report.GenerateMarkdown(result, ""),
		})
		return
	}

	saved, err := s.store.Save(result)
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return
	}

	render.JSON(w, r, map[string]any{
		"reviewId": result.Metadata.ReviewID,
		"summary":  result.Summary,
		"findings": result.Findings,
		"report":   saved,
	})
}

func (s *Server) runPRReview(w http.ResponseWriter, r *http.Request, req reviewRunRequest) {
	if req.PRNumber == 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": `prNumber is required when source is "pr"`})
		return
	}
	if s.prReviews == nil {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]string{"error": "GitHub integration not configured"})
		return
	}

	outcome, err := s.prReviews.ReviewPR(r.Context(), req.PRNumber, "", req.DryRun)
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return
	}

	if outcome.Skipped != "" {
		render.JSON(w, r, map[string]string{"status": "skipped", "reason": outcome.Skipped})
		return
	}

	if req.DryRun {
		render.JSON(w, r, map[string]any{
			"reviewId":        outcome.Result.Metadata.ReviewID,
			"summary":         outcome.Result.Summary,
			"findings":        outcome.Result.Findings,
			"markdownPreview": outcome.Report,
		})
		return
	}

	render.JSON(w, r, map[string]any{
		"reviewId": outcome.Result.Metadata.ReviewID,
		"summary":  outcome.Result.Summary,
		"findings": outcome.Result.Findings,
		"report":   outcome.Saved,
		"comment":  outcome.Comment,
	})
}
