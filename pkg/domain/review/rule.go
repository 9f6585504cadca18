package review

// Rule is one stateless quality check over a parsed document. Evaluators
// emit findings with an empty ID; ordering across rules is a fixed contract
// because finding IDs are assigned in concatenation order.
type Rule interface {
	ID() string
	Name() string
	Run(doc *ParsedDocument) []Finding
}
