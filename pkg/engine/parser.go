// Package engine contains the document parser, the rule-based review engine
// and the multi-file aggregator.
package engine

import (
	"regexp"
	"strings"

	"github.com/kazushi-tech/specforge/pkg/domain/review"
)

var (
	requirementIDRe = regexp.MustCompile(`^(FR|NFR)-\d{3}`)
	headingRe       = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	priorityRe      = regexp.MustCompile(`(?i)\*\*優先度\*\*:\s*(must|should|could|wont)`)
	acceptanceRe    = regexp.MustCompile(`(?i)受入条件|受け入れ条件|Acceptance Criteria`)
	projectNameRe   = regexp.MustCompile(`\*\*プロジェクト名\*\*`)
	labelValueRe    = regexp.MustCompile(`:\s*(.+)`)
	criteriaItemRe  = regexp.MustCompile(`^\s*-\s*\[[ x]\]\s*(.+)`)
	boldLabelRe     = regexp.MustCompile(`^\s*-\s*\*\*`)
	nfrSectionRe    = regexp.MustCompile(`非機能`)
	securityRe      = regexp.MustCompile(`セキュリティ|security`)
	performanceRe   = regexp.MustCompile(`パフォーマンス|performance`)
	availabilityRe  = regexp.MustCompile(`可用性|availability`)
)

// Parse turns raw requirements markdown into a structured document. It never
// fails: malformed input yields a sparser document, not an error.
func Parse(content string) *review.ParsedDocument {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	doc := &review.ParsedDocument{
		Sections:     []string{},
		Requirements: []review.ParsedRequirement{},
		RawContent:   content,
		Lines:        lines,
	}

	var currentH2 string
	var current *review.ParsedRequirement
	var descriptionLines []string
	inAcceptance := false

	// flush closes the open requirement, fixing its description and end line.
	flush := func(lineEnd int) {
		if current == nil {
			return
		}
		current.Description = strings.TrimSpace(strings.Join(descriptionLines, "\n"))
		current.LineEnd = lineEnd
		doc.Requirements = append(doc.Requirements, *current)
		current = nil
		descriptionLines = nil
		inAcceptance = false
	}

	for i, line := range lines {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			level := len(m[1])
			title := strings.TrimSpace(m[2])

			flush(i) // 1-based line before this heading

			if level == 2 {
				currentH2 = title
				doc.Sections = append(doc.Sections, title)
				if nfrSectionRe.MatchString(title) {
					doc.HasNfrSection = true
				}
			}

			if level == 3 {
				lower := strings.ToLower(title)
				if securityRe.MatchString(lower) {
					doc.HasSecuritySection = true
				}
				if performanceRe.MatchString(lower) {
					doc.HasPerformanceSection = true
				}
				if availabilityRe.MatchString(lower) {
					doc.HasAvailabilitySection = true
				}

				id := requirementIDRe.FindString(title)
				stripped := strings.TrimSpace(strings.TrimLeft(requirementIDRe.ReplaceAllString(title, ""), ": \t"))
				if stripped == "" {
					stripped = title
				}
				current = &review.ParsedRequirement{
					ID:                 id,
					Title:              stripped,
					AcceptanceCriteria: []string{},
					Section:            currentH2,
					LineStart:          i + 1,
					LineEnd:            i + 1,
				}
				inAcceptance = false
				descriptionLines = nil
			}

			continue
		}

		// Project name label can appear anywhere; last occurrence wins.
		if projectNameRe.MatchString(line) {
			if m := labelValueRe.FindStringSubmatch(line); m != nil {
				doc.ProjectName = strings.TrimSpace(m[1])
			}
		}

		if current == nil {
			continue
		}

		if m := priorityRe.FindStringSubmatch(line); m != nil {
			current.Priority = strings.ToLower(m[1])
		}

		if acceptanceRe.MatchString(line) {
			inAcceptance = true
			continue
		}

		if inAcceptance {
			if m := criteriaItemRe.FindStringSubmatch(line); m != nil {
				current.AcceptanceCriteria = append(current.AcceptanceCriteria, strings.TrimSpace(m[1]))
			} else if strings.TrimSpace(line) == "" || boldLabelRe.MatchString(line) {
				inAcceptance = false
				descriptionLines = append(descriptionLines, line)
			}
		} else {
			descriptionLines = append(descriptionLines, line)
		}
	}

	flush(len(lines))

	return doc
}
