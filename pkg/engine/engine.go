package engine

import (
	"fmt"
	"math"

	"github.com/kazushi-tech/specforge/pkg/domain/review"
	"github.com/kazushi-tech/specforge/pkg/engine/rules"
)

// severityWeights are the score penalties per finding.
var severityWeights = map[review.Severity]float64{
	review.SeverityCritical: 2,
	review.SeverityHigh:     1.5,
	review.SeverityMedium:   0.5,
	review.SeverityLow:      0.25,
}

// RuleBasedOutcome is the raw output of a rule-based run, before the
// orchestrator wraps it into a full result.
type RuleBasedOutcome struct {
	Findings     []review.Finding
	RulesApplied []string
}

// RunRuleBasedReview parses the content, runs all rules in fixed order and
// assigns sequential FIND-NNN IDs in concatenation order. RulesApplied always
// lists every rule, whether or not it produced findings.
func RunRuleBasedReview(content string) RuleBasedOutcome {
	doc := Parse(content)
	ruleSet := rules.Default()

	findings := AssignFindingIDs(rules.RunAll(doc, ruleSet))

	applied := make([]string, 0, len(ruleSet))
	for _, r := range ruleSet {
		applied = append(applied, r.ID())
	}

	return RuleBasedOutcome{Findings: findings, RulesApplied: applied}
}

// AssignFindingIDs numbers findings FIND-001, FIND-002, ... in slice order.
func AssignFindingIDs(findings []review.Finding) []review.Finding {
	numbered := make([]review.Finding, len(findings))
	for i, f := range findings {
		f.ID = fmt.Sprintf("FIND-%03d", i+1)
		numbered[i] = f
	}
	return numbered
}

// CountBySeverity tallies findings per severity. All four severities are
// always present in the map, zero-valued when unused.
func CountBySeverity(findings []review.Finding) map[review.Severity]int {
	counts := map[review.Severity]int{
		review.SeverityCritical: 0,
		review.SeverityHigh:     0,
		review.SeverityMedium:   0,
		review.SeverityLow:      0,
	}
	for _, f := range findings {
		counts[f.Severity]++
	}
	return counts
}

// CalculateQualityScore subtracts weighted severity penalties from 10,
// floors at 0 and rounds to one decimal.
func CalculateQualityScore(findings []review.Finding) float64 {
	penalty := 0.0
	for _, f := range findings {
		penalty += severityWeights[f.Severity]
	}
	score := math.Round((10-penalty)*10) / 10
	if score < 0 {
		return 0
	}
	return score
}
