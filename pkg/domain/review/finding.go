package review

// Severity grades how serious a finding is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities lists all severities from most to least severe. Report
// rendering and tallies iterate in this order.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// Valid reports whether s is one of the four known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Category classifies what quality aspect a finding targets.
type Category string

const (
	CategoryCompleteness Category = "completeness"
	CategoryClarity      Category = "clarity"
	CategoryConsistency  Category = "consistency"
	CategoryTestability  Category = "testability"
)

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryCompleteness, CategoryClarity, CategoryConsistency, CategoryTestability:
		return true
	}
	return false
}

// AIProposalPrefix marks every suggestion as machine-generated. Suggestions
// carry it regardless of which provider produced them.
const AIProposalPrefix = "[AI提案]"

// Finding is one reported issue about a requirement or document. Rule
// evaluators emit findings with an empty ID; the engine assigns FIND-NNN
// IDs in emission order after collecting from all rules.
type Finding struct {
	ID         string   `json:"id"`
	Rule       string   `json:"rule"`
	Severity   Severity `json:"severity"`
	Category   Category `json:"category"`
	Target     string   `json:"target,omitempty"` // requirement ID or title
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion"`
	Line       int      `json:"line,omitempty"` // 1-based source line
}
