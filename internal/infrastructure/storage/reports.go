package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kazushi-tech/specforge/pkg/domain/review"
	"github.com/kazushi-tech/specforge/pkg/report"
)

// ReportStore writes finished review results under <root>/reviews:
// pr-<N>/ for PR reviews, local/ otherwise. Each save produces a
// timestamped JSON file plus latest-report.md.
type ReportStore struct {
	root   string
	marker string
}

// NewReportStore creates a store rooted at the project directory.
func NewReportStore(root, marker string) *ReportStore {
	return &ReportStore{root: root, marker: marker}
}

// SavedPaths locates the files a save produced.
type SavedPaths struct {
	JSONPath     string `json:"jsonPath"`
	MarkdownPath string `json:"markdownPath"`
}

// Save persists the result as JSON and regenerates latest-report.md.
func (s *ReportStore) Save(result *review.Result) (*SavedPaths, error) {
	dir := filepath.Join(s.root, "reviews", "local")
	if pr := result.Metadata.Source.PRNumber; pr > 0 {
		dir = filepath.Join(s.root, "reviews", fmt.Sprintf("pr-%d", pr))
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}

	ts := compactTimestamp(result.Metadata.Timestamp)
	jsonPath := filepath.Join(dir, fmt.Sprintf("review-%s.json", ts))
	mdPath := filepath.Join(dir, "latest-report.md")

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0600); err != nil {
		return nil, fmt.Errorf("write report JSON: %w", err)
	}

	md := report.GenerateMarkdown(result, s.marker)
	if err := os.WriteFile(mdPath, []byte(md), 0600); err != nil {
		return nil, fmt.Errorf("write report markdown: %w", err)
	}

	return &SavedPaths{JSONPath: jsonPath, MarkdownPath: mdPath}, nil
}

// LoadLatest returns the most recently saved result, or nil when no review
// has been saved yet. Timestamped filenames sort lexicographically, so the
// greatest path wins.
func (s *ReportStore) LoadLatest() (*review.Result, error) {
	pattern := filepath.Join(s.root, "reviews", "*", "review-*.json")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("scan reports: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil
	}

	latest := matches[0]
	for _, m := range matches[1:] {
		if filepath.Base(m) > filepath.Base(latest) {
			latest = m
		}
	}

	data, err := os.ReadFile(latest)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", latest, err)
	}
	var result review.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshal report %s: %w", latest, err)
	}
	return &result, nil
}

// LatestReport is the newest rendered markdown report on disk.
type LatestReport struct {
	Content  string
	Source   string // path relative to the store root
	Modified time.Time
}

// LatestPRReport returns the most recently written latest-report.md across
// the pr-* review directories, or nil when none exists.
func (s *ReportStore) LatestPRReport() (*LatestReport, error) {
	matches, err := filepath.Glob(filepath.Join(s.root, "reviews", "pr-*", "latest-report.md"))
	if err != nil {
		return nil, fmt.Errorf("scan reports: %w", err)
	}

	var latest string
	var latestMod time.Time
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = m
			latestMod = info.ModTime()
		}
	}
	if latest == "" {
		return nil, nil
	}

	data, err := os.ReadFile(latest)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", latest, err)
	}
	rel, err := filepath.Rel(s.root, latest)
	if err != nil {
		rel = latest
	}
	return &LatestReport{Content: string(data), Source: rel, Modified: latestMod}, nil
}

// compactTimestamp strips ISO separators down to YYYYMMDDHHMMSS.
func compactTimestamp(iso string) string {
	r := strings.NewReplacer("-", "", ":", "", "T", "")
	compact := r.Replace(iso)
	if len(compact) > 14 {
		compact = compact[:14]
	}
	return compact
}
