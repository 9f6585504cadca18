package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/render"
)

func (s *Server) handleAdminEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "limit must be between 1 and 500"})
			return
		}
		limit = n
	}

	events, err := s.audit.Recent(limit)
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return
	}

	render.JSON(w, r, map[string]any{"events": events})
}
