package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kazushi-tech/specforge/pkg/domain/review"
)

const testMarker = "<!-- specforge-review -->"

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := NewClientWithHTTP("kazushi-tech", "new-project", testMarker, srv.URL, srv.Client())
	if err != nil {
		t.Fatalf("NewClientWithHTTP: %v", err)
	}
	return c
}

func TestFetchRequirementsFiles(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/kazushi-tech/new-project/pulls/7/files", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"filename": "requirements/a.md", "status": "modified", "additions": 3, "deletions": 1},
			{"filename": "requirements/.gitkeep", "status": "added"},
			{"filename": "src/main.go", "status": "modified"},
			{"filename": "requirements/b.md", "status": "removed"}
		]`)
	})
	mux.HandleFunc("GET /repos/kazushi-tech/new-project/contents/requirements/a.md", func(w http.ResponseWriter, r *http.Request) {
		if ref := r.URL.Query().Get("ref"); ref != "refs/pull/7/head" {
			t.Errorf("ref = %q, want refs/pull/7/head", ref)
		}
		content := base64.StdEncoding.EncodeToString([]byte("## 機能要件\n"))
		fmt.Fprintf(w, `{"type": "file", "encoding": "base64", "content": %q}`, content)
	})

	c := newTestClient(t, mux)

	files, err := c.FetchRequirementsFiles(context.Background(), 7)
	if err != nil {
		t.Fatalf("FetchRequirementsFiles: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("files = %d, want 2 (requirements only, .gitkeep excluded)", len(files))
	}
	if files[0].Filename != "requirements/a.md" || files[0].Content != "## 機能要件\n" {
		t.Errorf("files[0] = %+v", files[0])
	}
	if files[1].Filename != "requirements/b.md" || files[1].Content != "" {
		t.Errorf("removed file must keep empty content, got %+v", files[1])
	}
}

func TestUpsertReviewComment_CreatesWhenNoMarkerFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/kazushi-tech/new-project/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": 1, "body": "unrelated comment"}]`)
	})
	var createdBody string
	mux.HandleFunc("POST /repos/kazushi-tech/new-project/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Body string `json:"body"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatal(err)
		}
		createdBody = payload.Body
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": 99}`)
	})

	c := newTestClient(t, mux)

	got, err := c.UpsertReviewComment(context.Background(), 7, "report body")
	if err != nil {
		t.Fatalf("UpsertReviewComment: %v", err)
	}
	if got.Action != "created" || got.CommentID != 99 {
		t.Errorf("result = %+v", got)
	}
	if createdBody != testMarker+"\nreport body" {
		t.Errorf("body = %q, marker must be prefixed", createdBody)
	}
}

func TestUpsertReviewComment_UpdatesMarkerComment(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/kazushi-tech/new-project/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[
			{"id": 1, "body": "unrelated"},
			{"id": 2, "body": "%s\nold report"}
		]`, testMarker)
	})
	mux.HandleFunc("PATCH /repos/kazushi-tech/new-project/issues/comments/2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": 2}`)
	})

	c := newTestClient(t, mux)

	got, err := c.UpsertReviewComment(context.Background(), 7, testMarker+"\nnew report")
	if err != nil {
		t.Fatalf("UpsertReviewComment: %v", err)
	}
	if got.Action != "updated" || got.CommentID != 2 {
		t.Errorf("result = %+v", got)
	}
}

func TestCreateCheckRun(t *testing.T) {
	mux := http.NewServeMux()
	var payload struct {
		Name       string `json:"name"`
		HeadSHA    string `json:"head_sha"`
		Status     string `json:"status"`
		Conclusion string `json:"conclusion"`
		Output     struct {
			Title   string `json:"title"`
			Summary string `json:"summary"`
		} `json:"output"`
	}
	mux.HandleFunc("POST /repos/kazushi-tech/new-project/check-runs", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatal(err)
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": 1234}`)
	})

	c := newTestClient(t, mux)

	result := &review.Result{
		Summary: review.Summary{
			QualityScore: 7.5,
			BySeverity:   map[review.Severity]int{review.SeverityHigh: 1},
		},
	}
	id, err := c.CreateCheckRun(context.Background(), CheckRunOptions{
		HeadSHA:    "abc123",
		Result:     result,
		Conclusion: DetermineConclusion(result),
	})
	if err != nil {
		t.Fatalf("CreateCheckRun: %v", err)
	}
	if id != 1234 {
		t.Errorf("id = %d, want 1234", id)
	}
	if payload.Name != CheckName || payload.HeadSHA != "abc123" {
		t.Errorf("payload = %+v", payload)
	}
	if payload.Status != "completed" || payload.Conclusion != "neutral" {
		t.Errorf("status/conclusion = %q/%q", payload.Status, payload.Conclusion)
	}
}

func TestDetermineConclusion(t *testing.T) {
	tests := []struct {
		name    string
		summary review.Summary
		want    string
	}{
		{"critical finding", review.Summary{QualityScore: 9, BySeverity: map[review.Severity]int{review.SeverityCritical: 1}}, "failure"},
		{"low score", review.Summary{QualityScore: 4.9, BySeverity: map[review.Severity]int{}}, "failure"},
		{"three high", review.Summary{QualityScore: 5.5, BySeverity: map[review.Severity]int{review.SeverityHigh: 3}}, "failure"},
		{"two high is fine", review.Summary{QualityScore: 7, BySeverity: map[review.Severity]int{review.SeverityHigh: 2}}, "neutral"},
		{"clean result is neutral, never success", review.Summary{QualityScore: 10, BySeverity: map[review.Severity]int{}}, "neutral"},
		{"boundary score 5", review.Summary{QualityScore: 5, BySeverity: map[review.Severity]int{}}, "neutral"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetermineConclusion(&review.Result{Summary: tt.summary})
			if got != tt.want {
				t.Errorf("DetermineConclusion() = %q, want %q", got, tt.want)
			}
		})
	}
}
