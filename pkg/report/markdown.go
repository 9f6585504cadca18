// Package report renders review results as human-readable markdown.
package report

import (
	"fmt"
	"strings"

	"github.com/kazushi-tech/specforge/pkg/domain/review"
)

// DefaultMarker keys PR comments so repeated reviews update in place instead
// of stacking.
const DefaultMarker = "<!-- specforge-review -->"

// GenerateMarkdown formats a review result as the PR comment / saved report
// body. The marker is emitted as the first line.
func GenerateMarkdown(result *review.Result, marker string) string {
	if marker == "" {
		marker = DefaultMarker
	}

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("%s", marker)
	line("## SpecForge Requirements Review")
	line("")
	line("> Reviewed: %s | ReviewID: %s", result.Metadata.Timestamp, result.Metadata.ReviewID)
	line("")

	if len(result.FileResults) > 1 {
		line("### Files Reviewed")
		line("")
		line("| File | Findings | Score |")
		line("|------|----------|-------|")
		for _, f := range result.FileResults {
			line("| `%s` | %d | %s/10 |", f.Path, f.FindingCount, formatScore(f.QualityScore))
		}
		line("")
	}

	fileCountNote := ""
	if result.Summary.FileCount > 1 {
		fileCountNote = fmt.Sprintf("（%d ファイルを集約）", result.Summary.FileCount)
	}
	line("### Quality Score")
	line("")
	line("**総合スコア: %s / 10**%s", formatScore(result.Summary.QualityScore), fileCountNote)
	line("")
	line("| Severity | Count |")
	line("|----------|-------|")
	for _, sev := range review.Severities {
		line("| %s | %d |", sev, result.Summary.BySeverity[sev])
	}
	line("")

	for _, sev := range review.Severities {
		var group []review.Finding
		for _, f := range result.Findings {
			if f.Severity == sev {
				group = append(group, f)
			}
		}
		if len(group) == 0 {
			continue
		}

		line("### %s (%d)", titleCase(string(sev)), len(group))
		line("")

		for _, f := range group {
			target := ""
			if f.Target != "" {
				target = fmt.Sprintf(" (%s)", f.Target)
			}
			lineRef := ""
			if f.Line > 0 {
				lineRef = fmt.Sprintf(" [行%d]", f.Line)
			}
			line("- **%s**%s%s: %s", f.ID, target, lineRef, f.Message)
			line("  - %s", f.Suggestion)
		}
		line("")
	}

	line("---")
	line("> %s 項目は提案のみです。人間による承認が必要です。", review.AIProposalPrefix)
	b.WriteString("> AIはこのPRをAPPROVEしません。")

	return b.String()
}

// formatScore prints a score without a trailing .0 so whole numbers read as
// "10" rather than "10.0".
func formatScore(score float64) string {
	s := fmt.Sprintf("%.1f", score)
	return strings.TrimSuffix(s, ".0")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
