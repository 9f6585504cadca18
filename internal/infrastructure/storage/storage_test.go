package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kazushi-tech/specforge/pkg/domain/review"
)

func testResult(prNumber int) *review.Result {
	return &review.Result{
		Metadata: review.Metadata{
			ReviewID:  "rev-20260314092653",
			Timestamp: "2026-03-14T09:26:53Z",
			Source: review.Source{
				Type:     review.SourceFile,
				Path:     "requirements/a.md",
				PRNumber: prNumber,
			},
			RulesApplied: []string{"missing-id"},
		},
		Summary: review.Summary{
			TotalFindings: 1,
			BySeverity:    map[review.Severity]int{review.SeverityHigh: 1},
			QualityScore:  8.5,
		},
		Findings: []review.Finding{
			{ID: "FIND-001", Rule: "missing-id", Severity: review.SeverityHigh,
				Category: review.CategoryConsistency, Message: "要件IDがありません"},
		},
	}
}

func TestReportStore_SaveLocal(t *testing.T) {
	root := t.TempDir()
	store := NewReportStore(root, "<!-- specforge-review -->")

	saved, err := store.Save(testResult(0))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	wantJSON := filepath.Join(root, "reviews", "local", "review-20260314092653.json")
	if saved.JSONPath != wantJSON {
		t.Errorf("JSONPath = %q, want %q", saved.JSONPath, wantJSON)
	}

	data, err := os.ReadFile(saved.JSONPath)
	if err != nil {
		t.Fatalf("read saved JSON: %v", err)
	}
	var round review.Result
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatalf("unmarshal saved JSON: %v", err)
	}
	if round.Metadata.ReviewID != "rev-20260314092653" {
		t.Errorf("ReviewID = %q", round.Metadata.ReviewID)
	}

	md, err := os.ReadFile(saved.MarkdownPath)
	if err != nil {
		t.Fatalf("read saved markdown: %v", err)
	}
	if !strings.HasPrefix(string(md), "<!-- specforge-review -->") {
		t.Error("markdown report must start with the marker")
	}
}

func TestReportStore_SavePRDirectory(t *testing.T) {
	root := t.TempDir()
	store := NewReportStore(root, "<!-- specforge-review -->")

	saved, err := store.Save(testResult(42))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.Contains(saved.JSONPath, filepath.Join("reviews", "pr-42")) {
		t.Errorf("JSONPath = %q, want pr-42 directory", saved.JSONPath)
	}
}

func TestReportStore_LoadLatest(t *testing.T) {
	root := t.TempDir()
	store := NewReportStore(root, "<!-- specforge-review -->")

	if got, err := store.LoadLatest(); err != nil || got != nil {
		t.Fatalf("LoadLatest on empty store = %v, %v", got, err)
	}

	older := testResult(0)
	older.Metadata.ReviewID = "rev-20260314090000"
	older.Metadata.Timestamp = "2026-03-14T09:00:00Z"
	if _, err := store.Save(older); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save(testResult(0)); err != nil {
		t.Fatal(err)
	}

	got, err := store.LoadLatest()
	if err != nil {
		t.Fatalf("LoadLatest: %v", err)
	}
	if got == nil || got.Metadata.ReviewID != "rev-20260314092653" {
		t.Errorf("LoadLatest = %+v, want the newest review", got)
	}
}

func TestReportStore_LatestPRReport(t *testing.T) {
	root := t.TempDir()
	store := NewReportStore(root, "<!-- specforge-review -->")

	if got, err := store.LatestPRReport(); err != nil || got != nil {
		t.Fatalf("LatestPRReport on empty store = %v, %v", got, err)
	}

	// Local reviews are not served publicly.
	if _, err := store.Save(testResult(0)); err != nil {
		t.Fatal(err)
	}
	if got, err := store.LatestPRReport(); err != nil || got != nil {
		t.Fatalf("LatestPRReport with only local reviews = %v, %v", got, err)
	}

	if _, err := store.Save(testResult(42)); err != nil {
		t.Fatal(err)
	}

	got, err := store.LatestPRReport()
	if err != nil {
		t.Fatalf("LatestPRReport: %v", err)
	}
	if got == nil {
		t.Fatal("expected a report")
	}
	if !strings.Contains(got.Content, "<!-- specforge-review -->") {
		t.Error("content missing marker")
	}
	if got.Source != filepath.Join("reviews", "pr-42", "latest-report.md") {
		t.Errorf("source = %q", got.Source)
	}
}

func TestAuditLog_LogAndRecent(t *testing.T) {
	root := t.TempDir()
	log := NewAuditLog(root)

	for _, action := range []string{"review.fallback", "review.completed", "review.completed"} {
		if err := log.Log(action, map[string]any{"reviewId": "rev-x"}); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	events, err := log.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	// Newest last; the trimmed window keeps the tail.
	if events[0].Action != "review.completed" || events[1].Action != "review.completed" {
		t.Errorf("events = %+v", events)
	}
	if events[0].ID == events[1].ID {
		t.Error("event IDs must be unique")
	}
	if events[0].Metadata["reviewId"] != "rev-x" {
		t.Errorf("metadata = %v", events[0].Metadata)
	}
}

func TestAuditLog_RecentWithoutFile(t *testing.T) {
	log := NewAuditLog(t.TempDir())

	events, err := log.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if events != nil {
		t.Errorf("events = %v, want nil before first write", events)
	}
}

func TestAuditLog_SkipsCorruptLines(t *testing.T) {
	root := t.TempDir()
	log := NewAuditLog(root)
	if err := log.Log("review.completed", nil); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(root, ".specforge", "audit.jsonl")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("{not json}\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	events, err := log.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("events = %d, corrupt lines must be skipped", len(events))
	}
}

func TestFileContentSource_Read(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "doc.md"), []byte("## 機能要件\n"), 0600); err != nil {
		t.Fatal(err)
	}

	src := NewFileContentSource(root)

	content, err := src.Read("doc.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if content != "## 機能要件\n" {
		t.Errorf("content = %q", content)
	}

	if _, err := src.Read("missing.md"); err == nil {
		t.Error("expected error for missing file")
	}
}
