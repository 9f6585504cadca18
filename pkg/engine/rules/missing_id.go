package rules

import (
	"fmt"
	"regexp"

	"github.com/kazushi-tech/specforge/pkg/domain/review"
)

var (
	requirementIDRe = regexp.MustCompile(`^(FR|NFR)-\d{3}`)
	// Sections that describe context rather than requirements. Matched by
	// substring; synonym titles are intentionally not excluded.
	nonRequirementSectionRe = regexp.MustCompile(`プロジェクト概要|ユーザーロール|目次|概要`)
)

// MissingID flags requirement blocks that lack an FR-XXX / NFR-XXX ID.
type MissingID struct{}

func (r *MissingID) ID() string   { return "missing-id" }
func (r *MissingID) Name() string { return "要件ID未記載検出" }

func (r *MissingID) Run(doc *review.ParsedDocument) []review.Finding {
	var findings []review.Finding

	for _, req := range doc.Requirements {
		if nonRequirementSectionRe.MatchString(req.Section) {
			continue
		}

		if req.ID == "" || !requirementIDRe.MatchString(req.ID) {
			findings = append(findings, review.Finding{
				Rule:       r.ID(),
				Severity:   review.SeverityHigh,
				Category:   review.CategoryConsistency,
				Target:     req.Title,
				Message:    fmt.Sprintf("要件「%s」に要件ID（FR-XXX / NFR-XXX）が記載されていません", req.Title),
				Suggestion: fmt.Sprintf("%s 要件IDを付与してください（例: FR-XXX: %s）", review.AIProposalPrefix, req.Title),
				Line:       req.LineStart,
			})
		}
	}

	return findings
}
