package server

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/render"
)

// verifyGithubSignature validates the x-hub-signature-256 HMAC over the raw
// body. With no secret configured, production rejects the delivery and
// development lets it through with a warning. The body is restored for
// downstream handlers.
func verifyGithubSignature(secret string, production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				if production {
					render.Status(r, http.StatusUnauthorized)
					render.JSON(w, r, map[string]string{"error": "Webhook secret not configured"})
					return
				}
				log.Printf("[WARN] GITHUB_WEBHOOK_SECRET not set - skipping verification (dev mode only)")
				next.ServeHTTP(w, r)
				return
			}

			signature := r.Header.Get("x-hub-signature-256")
			if signature == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, map[string]string{"error": "Missing x-hub-signature-256 header"})
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, map[string]string{"error": "unreadable body"})
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			mac := hmac.New(sha256.New, []byte(secret))
			mac.Write(body)
			expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))

			if subtle.ConstantTimeCompare([]byte(signature), []byte(expected)) != 1 {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, map[string]string{"error": "Invalid signature"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// verifyAdminToken gates the admin surface on the x-admin-token header.
// Unset token: 503 in production, warn-and-allow in development.
func verifyAdminToken(token string, production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				if production {
					render.Status(r, http.StatusServiceUnavailable)
					render.JSON(w, r, map[string]string{"error": "Service unavailable"})
					return
				}
				log.Printf("[WARN] ADMIN_UI_TOKEN not set - allowing access (dev mode only)")
				next.ServeHTTP(w, r)
				return
			}

			supplied := r.Header.Get("x-admin-token")
			if supplied == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, map[string]string{"error": "Unauthorized"})
				return
			}

			w.Header().Set("Cache-Control", "no-store")
			next.ServeHTTP(w, r)
		})
	}
}
