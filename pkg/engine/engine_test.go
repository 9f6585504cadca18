package engine

import (
	"regexp"
	"testing"

	"github.com/kazushi-tech/specforge/pkg/domain/review"
)

func findingsOf(severities ...review.Severity) []review.Finding {
	fs := make([]review.Finding, len(severities))
	for i, s := range severities {
		fs[i] = review.Finding{Severity: s}
	}
	return fs
}

func TestCalculateQualityScore(t *testing.T) {
	tests := []struct {
		name     string
		findings []review.Finding
		want     float64
	}{
		{"no findings", nil, 10},
		{"one critical", findingsOf(review.SeverityCritical), 8},
		{"one high", findingsOf(review.SeverityHigh), 8.5},
		{"one medium", findingsOf(review.SeverityMedium), 9.5},
		{"one low", findingsOf(review.SeverityLow), 9.8},
		{"mixed", findingsOf(review.SeverityCritical, review.SeverityHigh, review.SeverityMedium), 6},
		{"floors at zero", findingsOf(
			review.SeverityCritical, review.SeverityCritical, review.SeverityCritical,
			review.SeverityCritical, review.SeverityCritical, review.SeverityCritical,
		), 0},
		{"rounds to one decimal", findingsOf(
			review.SeverityLow, review.SeverityLow, review.SeverityLow,
		), 9.3}, // 10 - 0.75 = 9.25 -> 9.3
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateQualityScore(tt.findings); got != tt.want {
				t.Errorf("CalculateQualityScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAssignFindingIDs(t *testing.T) {
	findings := findingsOf(review.SeverityLow, review.SeverityHigh, review.SeverityCritical)

	numbered := AssignFindingIDs(findings)
	want := []string{"FIND-001", "FIND-002", "FIND-003"}
	for i, id := range want {
		if numbered[i].ID != id {
			t.Errorf("numbered[%d].ID = %q, want %q", i, numbered[i].ID, id)
		}
	}
	// Input slice must stay untouched.
	for i, f := range findings {
		if f.ID != "" {
			t.Errorf("input findings[%d] was mutated: %q", i, f.ID)
		}
	}
}

func TestCountBySeverity_AllKeysPresent(t *testing.T) {
	counts := CountBySeverity(findingsOf(review.SeverityHigh, review.SeverityHigh))

	if len(counts) != 4 {
		t.Errorf("counts should always carry all four severities, got %v", counts)
	}
	if counts[review.SeverityHigh] != 2 {
		t.Errorf("high = %d, want 2", counts[review.SeverityHigh])
	}
	if counts[review.SeverityCritical] != 0 || counts[review.SeverityMedium] != 0 || counts[review.SeverityLow] != 0 {
		t.Errorf("unused severities must be zero, got %v", counts)
	}
}

func TestRunRuleBasedReview(t *testing.T) {
	outcome := RunRuleBasedReview(`
## 機能要件

### ログイン機能

- 適切に処理する
`)

	if len(outcome.Findings) == 0 {
		t.Fatal("expected findings from a sparse document")
	}

	idRe := regexp.MustCompile(`^FIND-\d{3}$`)
	for i, f := range outcome.Findings {
		if !idRe.MatchString(f.ID) {
			t.Errorf("findings[%d].ID = %q, want FIND-NNN", i, f.ID)
		}
	}

	wantApplied := []string{"missing-id", "missing-acceptance", "ambiguous-word", "missing-nfr"}
	if len(outcome.RulesApplied) != len(wantApplied) {
		t.Fatalf("RulesApplied = %v, want %v", outcome.RulesApplied, wantApplied)
	}
	for i, id := range wantApplied {
		if outcome.RulesApplied[i] != id {
			t.Errorf("RulesApplied[%d] = %q, want %q", i, outcome.RulesApplied[i], id)
		}
	}
}

func TestRunRuleBasedReview_CleanDocumentStillListsRules(t *testing.T) {
	outcome := RunRuleBasedReview(sampleDoc + `
### NFR-003: 可用性

- **受入条件**:
  - [ ] 稼働率99.9%であること

監視とログ、個人情報保護について別紙参照。
`)

	if len(outcome.RulesApplied) != 4 {
		t.Errorf("RulesApplied = %v, want all four rules", outcome.RulesApplied)
	}
}
