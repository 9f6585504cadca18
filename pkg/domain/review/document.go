package review

// ParsedRequirement is one requirement block extracted from a markdown
// document. A block starts at a level-3 heading and ends at the next
// heading or end of document. Immutable after parsing.
type ParsedRequirement struct {
	ID                 string   `json:"id,omitempty"` // FR-NNN / NFR-NNN, empty when the heading carries none
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Priority           string   `json:"priority,omitempty"` // must / should / could / wont
	AcceptanceCriteria []string `json:"acceptanceCriteria"`
	Section            string   `json:"section"` // enclosing level-2 heading
	LineStart          int      `json:"lineStart"`
	LineEnd            int      `json:"lineEnd"`
}

// IsFunctional reports whether the requirement carries a functional (FR) ID.
func (r *ParsedRequirement) IsFunctional() bool {
	return len(r.ID) > 3 && r.ID[:3] == "FR-"
}

// IsNonFunctional reports whether the requirement carries an NFR ID.
func (r *ParsedRequirement) IsNonFunctional() bool {
	return len(r.ID) > 4 && r.ID[:4] == "NFR-"
}

// ContainsLine reports whether the 1-based line number falls inside the
// requirement's source range.
func (r *ParsedRequirement) ContainsLine(line int) bool {
	return line >= r.LineStart && line <= r.LineEnd
}

// ParsedDocument is the structured view of a requirements markdown file.
// The boolean section flags are lower-bound detections: a section the
// parser did not recognize stays false, but a flag is never set without a
// matching heading or keyword.
type ParsedDocument struct {
	ProjectName  string
	Sections     []string // level-2 headings in document order
	Requirements []ParsedRequirement
	RawContent   string
	Lines        []string // raw source lines for 1-based line lookups

	HasSecuritySection     bool
	HasNfrSection          bool
	HasPerformanceSection  bool
	HasAvailabilitySection bool
}

// RequirementAt returns the first requirement whose line range contains the
// given 1-based line number, or nil when the line is outside every block.
func (d *ParsedDocument) RequirementAt(line int) *ParsedRequirement {
	for i := range d.Requirements {
		if d.Requirements[i].ContainsLine(line) {
			return &d.Requirements[i]
		}
	}
	return nil
}
