package server

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// maxPublicReportLength caps the report body served without authentication.
const maxPublicReportLength = 4096

func (s *Server) handlePublicStatus(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"service":          "ok",
		"engine":           "rule-based",
		"allowedApis":      s.allowedAPIs,
		"geminiConfigured": s.env.GeminiAPIKey != "",
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handlePublicLatestReview(w http.ResponseWriter, r *http.Request) {
	latest, err := s.store.LatestPRReport()
	if err != nil || latest == nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{"error": "no review reports found"})
		return
	}

	content := latest.Content
	truncated := false
	if len(content) > maxPublicReportLength {
		content = content[:maxPublicReportLength]
		truncated = true
	}

	render.JSON(w, r, map[string]any{
		"content":      content,
		"truncated":    truncated,
		"source":       latest.Source,
		"lastModified": latest.Modified.UTC().Format(time.RFC3339),
	})
}
