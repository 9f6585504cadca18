package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/render"
)

type pullRequestEvent struct {
	Action      string `json:"action"`
	PullRequest struct {
		Number int `json:"number"`
		Head   struct {
			SHA string `json:"sha"`
		} `json:"head"`
	} `json:"pull_request"`
}

var reviewableActions = map[string]bool{
	"opened":      true,
	"synchronize": true,
	"reopened":    true,
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	event := r.Header.Get("x-github-event")
	if event != "pull_request" {
		render.JSON(w, r, map[string]string{"status": "ignored", "reason": "unsupported event: " + event})
		return
	}

	var payload pullRequestEvent
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "invalid payload"})
		return
	}

	if !reviewableActions[payload.Action] {
		render.JSON(w, r, map[string]string{"status": "ignored", "reason": "unsupported action: " + payload.Action})
		return
	}
	if payload.PullRequest.Number == 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "missing pull request number"})
		return
	}
	if s.prReviews == nil {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]string{"error": "GitHub integration not configured"})
		return
	}

	outcome, err := s.prReviews.ReviewPR(r.Context(), payload.PullRequest.Number, payload.PullRequest.Head.SHA, false)
	if err != nil {
		log.Printf("webhook: review of PR #%d failed: %v", payload.PullRequest.Number, err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return
	}

	if outcome.Skipped != "" {
		render.JSON(w, r, map[string]string{"status": "skipped", "reason": outcome.Skipped})
		return
	}

	render.JSON(w, r, map[string]any{
		"status":   "processed",
		"reviewId": outcome.Result.Metadata.ReviewID,
		"summary":  outcome.Result.Summary,
		"report":   outcome.Saved,
		"comment":  outcome.Comment,
	})
}
