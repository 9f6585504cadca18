package github

import (
	"context"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v69/github"

	"github.com/kazushi-tech/specforge/pkg/domain/review"
)

// CheckName is the check run reported on reviewed pull requests.
const CheckName = "specforge-review-check"

// DetermineConclusion maps a review result to a check conclusion. The
// review never concludes success: a clean result is neutral because human
// approval stays mandatory.
func DetermineConclusion(result *review.Result) string {
	summary := result.Summary
	switch {
	case summary.BySeverity[review.SeverityCritical] > 0:
		return "failure"
	case summary.QualityScore < 5:
		return "failure"
	case summary.BySeverity[review.SeverityHigh] >= 3:
		return "failure"
	default:
		return "neutral"
	}
}

// CheckRunOptions configure one reported check run.
type CheckRunOptions struct {
	HeadSHA    string
	Result     *review.Result // nil when reporting without a review
	Conclusion string
	Title      string
}

// CreateCheckRun reports the review outcome via the Checks API and returns
// the check run ID.
func (c *Client) CreateCheckRun(ctx context.Context, opts CheckRunOptions) (int64, error) {
	summary := opts.Title
	title := opts.Title
	var text *string

	if opts.Result != nil {
		summary = checkSummary(opts.Result)
		title = fmt.Sprintf("Review %s: Score %.1f/10", opts.Conclusion, opts.Result.Summary.QualityScore)
		text = gh.Ptr(checkDetails(opts.Result))
	} else {
		if summary == "" {
			summary = "No review performed"
		}
		if title == "" {
			title = "Review " + opts.Conclusion
		}
	}

	check, _, err := c.api.Checks.CreateCheckRun(ctx, c.owner, c.repo, gh.CreateCheckRunOptions{
		Name:       CheckName,
		HeadSHA:    opts.HeadSHA,
		Status:     gh.Ptr("completed"),
		Conclusion: gh.Ptr(opts.Conclusion),
		Output: &gh.CheckRunOutput{
			Title:   gh.Ptr(title),
			Summary: gh.Ptr(summary),
			Text:    text,
		},
	})
	if err != nil {
		return 0, err
	}
	return check.GetID(), nil
}

func checkSummary(result *review.Result) string {
	fileCount := result.Summary.FileCount
	if fileCount == 0 {
		fileCount = 1
	}

	lines := []string{
		fmt.Sprintf("**Quality Score**: %.1f/10", result.Summary.QualityScore),
		fmt.Sprintf("**Total Findings**: %d", result.Summary.TotalFindings),
		fmt.Sprintf("**Files Reviewed**: %d", fileCount),
		"",
		"| Severity | Count |",
		"|----------|-------|",
	}
	for _, sev := range review.Severities {
		lines = append(lines, fmt.Sprintf("| %s | %d |", titleCase(string(sev)), result.Summary.BySeverity[sev]))
	}
	return strings.Join(lines, "\n")
}

const maxDetailFindings = 20

func checkDetails(result *review.Result) string {
	var lines []string

	if len(result.FileResults) > 1 {
		lines = append(lines, "## Files Reviewed", "")
		for _, f := range result.FileResults {
			lines = append(lines, fmt.Sprintf("- `%s`: %d findings (score: %.1f/10)", f.Path, f.FindingCount, f.QualityScore))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "## Findings", "")
	top := result.Findings
	if len(top) > maxDetailFindings {
		top = top[:maxDetailFindings]
	}
	for _, f := range top {
		target := ""
		if f.Target != "" {
			target = fmt.Sprintf(" (%s)", f.Target)
		}
		lines = append(lines, fmt.Sprintf("- **%s**: %s%s", strings.ToUpper(string(f.Severity)), f.Message, target))
		lines = append(lines, fmt.Sprintf("  - %s", f.Suggestion))
	}

	if rest := len(result.Findings) - maxDetailFindings; rest > 0 {
		lines = append(lines, fmt.Sprintf("\n... and %d more findings (see PR comment for full details)", rest))
	}

	return strings.Join(lines, "\n")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
