// Package rules holds the fixed set of review rule evaluators. The set is
// closed at build time; rule order is a visible contract because finding IDs
// are assigned in concatenation order.
package rules

import (
	"github.com/kazushi-tech/specforge/pkg/domain/review"
)

// Default returns the rules in their fixed execution order.
func Default() []review.Rule {
	return []review.Rule{
		&MissingID{},
		&MissingAcceptance{},
		&AmbiguousWord{},
		&MissingNfr{},
	}
}

// RunAll evaluates every rule against the document and concatenates the
// findings in rule order.
func RunAll(doc *review.ParsedDocument, ruleSet []review.Rule) []review.Finding {
	var all []review.Finding
	for _, r := range ruleSet {
		all = append(all, r.Run(doc)...)
	}
	return all
}
