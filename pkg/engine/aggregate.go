package engine

import (
	"errors"

	"github.com/kazushi-tech/specforge/pkg/domain/review"
)

// ErrNoResults is returned when aggregation receives an empty input.
var ErrNoResults = errors.New("no review results to aggregate")

// AggregateResults merges per-file review results into one combined result.
// A single result is returned unchanged. For two or more, findings are
// concatenated in input order and renumbered, the score and tallies are
// recomputed over the merged set, and per-file summaries keep each input's
// own pre-merge numbers.
func AggregateResults(results []*review.Result) (*review.Result, error) {
	if len(results) == 0 {
		return nil, ErrNoResults
	}
	if len(results) == 1 {
		return results[0], nil
	}

	var merged []review.Finding
	var paths []string
	fileResults := make([]review.FileSummary, 0, len(results))

	for _, r := range results {
		merged = append(merged, r.Findings...)

		path := r.Metadata.Source.Path
		if path != "" {
			paths = append(paths, path)
		} else {
			path = "unknown"
		}

		fileResults = append(fileResults, review.FileSummary{
			Path:         path,
			FindingCount: len(r.Findings),
			QualityScore: r.Summary.QualityScore,
			BySeverity:   r.Summary.BySeverity,
		})
	}

	merged = AssignFindingIDs(merged)
	first := results[0]

	return &review.Result{
		Metadata: review.Metadata{
			ReviewID:  first.Metadata.ReviewID,
			Timestamp: first.Metadata.Timestamp,
			Source: review.Source{
				Type:     review.SourcePR,
				Paths:    paths,
				PRNumber: first.Metadata.Source.PRNumber,
			},
			RulesApplied:   first.Metadata.RulesApplied,
			ReviewProvider: first.Metadata.ReviewProvider,
		},
		Summary: review.Summary{
			TotalFindings: len(merged),
			BySeverity:    CountBySeverity(merged),
			QualityScore:  CalculateQualityScore(merged),
			FileCount:     len(results),
		},
		Findings:    merged,
		FileResults: fileResults,
	}, nil
}
