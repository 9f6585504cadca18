package rules

import (
	"fmt"

	"github.com/kazushi-tech/specforge/pkg/domain/review"
)

// MissingAcceptance flags requirements with a valid ID but no acceptance
// criteria. Functional requirements derive severity from priority; NFRs are
// always high because they frequently omit the priority field.
type MissingAcceptance struct{}

func (r *MissingAcceptance) ID() string   { return "missing-acceptance" }
func (r *MissingAcceptance) Name() string { return "受入条件欠落検出" }

func (r *MissingAcceptance) Run(doc *review.ParsedDocument) []review.Finding {
	var findings []review.Finding

	for _, req := range doc.Requirements {
		if req.ID == "" {
			continue
		}

		if req.IsFunctional() && len(req.AcceptanceCriteria) == 0 {
			findings = append(findings, review.Finding{
				Rule:       r.ID(),
				Severity:   severityForPriority(req.Priority),
				Category:   review.CategoryTestability,
				Target:     req.ID,
				Message:    fmt.Sprintf("%s「%s」に受入条件が定義されていません", req.ID, req.Title),
				Suggestion: review.AIProposalPrefix + " テスト可能な受入条件を追加してください（例: 「〜できること」形式で具体的な条件を列挙）",
				Line:       req.LineStart,
			})
		}

		if req.IsNonFunctional() && len(req.AcceptanceCriteria) == 0 {
			// NFRs may carry metrics in prose without checklist formatting.
			findings = append(findings, review.Finding{
				Rule:       r.ID(),
				Severity:   review.SeverityHigh,
				Category:   review.CategoryTestability,
				Target:     req.ID,
				Message:    fmt.Sprintf("%s「%s」に受入条件（チェックリスト形式）が定義されていません", req.ID, req.Title),
				Suggestion: review.AIProposalPrefix + " 非機能要件にもテスト可能な受入条件を追加してください（例: 「レスポンスタイム2秒以内であること」）",
				Line:       req.LineStart,
			})
		}
	}

	return findings
}

func severityForPriority(priority string) review.Severity {
	switch priority {
	case "must":
		return review.SeverityCritical
	case "should":
		return review.SeverityHigh
	case "could":
		return review.SeverityMedium
	default:
		return review.SeverityHigh
	}
}
