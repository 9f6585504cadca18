package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/kazushi-tech/specforge/pkg/domain/review"
)

// ReviewRequest carries the document to be reviewed by the model.
type ReviewRequest struct {
	Content  string
	FilePath string
}

// ReviewOutcome is the sanitized model output in the same finding shape the
// rule engine produces.
type ReviewOutcome struct {
	Findings []review.Finding
	Summary  string
}

const findingSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["message"],
    "properties": {
      "rule": { "type": "string" },
      "severity": { "type": "string" },
      "category": { "type": "string" },
      "target": { "type": "string" },
      "message": { "type": "string" },
      "suggestion": { "type": "string" },
      "line": { "type": "number" }
    }
  }
}`

var findingSchemaLoader = gojsonschema.NewStringLoader(findingSchemaJSON)

// Review sends the document to Gemini and decodes the response into
// findings. Model output is untrusted: each array element passes through
// decode-with-defaults, never direct field trust.
func Review(ctx context.Context, client *Client, req ReviewRequest) (*ReviewOutcome, error) {
	prompt := BuildReviewPrompt(req.Content, req.FilePath)

	text, err := client.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	raw, err := extractJSONArray(text)
	if err != nil {
		return nil, err
	}

	findings := make([]review.Finding, 0, len(raw))
	for i, item := range raw {
		findings = append(findings, sanitizeFinding(item, i))
	}

	return &ReviewOutcome{
		Findings: findings,
		Summary:  fmt.Sprintf("Gemini reviewed and found %d issue(s)", len(findings)),
	}, nil
}

// extractJSONArray locates the first-to-last bracket span in the response
// and parses it as a JSON array of objects.
func extractJSONArray(text string) ([]map[string]any, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return nil, &Error{Message: "no JSON array found in Gemini response", Category: CategoryInvalidResponse}
	}
	payload := text[start : end+1]

	// Schema validation is advisory: decode-with-defaults below tolerates
	// non-conforming elements.
	if result, err := gojsonschema.Validate(findingSchemaLoader, gojsonschema.NewStringLoader(payload)); err != nil {
		log.Printf("[gemini] schema validation error: %v", err)
	} else if !result.Valid() {
		for _, desc := range result.Errors() {
			log.Printf("[gemini] schema issue: %s", desc)
		}
	}

	var parsed []map[string]any
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to parse Gemini JSON: %v", err), Category: CategoryInvalidResponse}
	}
	return parsed, nil
}

// sanitizeFinding coerces one untrusted array element into a well-formed
// finding: unknown severity becomes medium, unknown category completeness,
// and the suggestion gains the AI proposal marker exactly once.
func sanitizeFinding(raw map[string]any, index int) review.Finding {
	severity := review.SeverityMedium
	if s, ok := raw["severity"].(string); ok && review.Severity(s).Valid() {
		severity = review.Severity(s)
	}

	category := review.CategoryCompleteness
	if c, ok := raw["category"].(string); ok && review.Category(c).Valid() {
		category = review.Category(c)
	}

	rule := "ai-review"
	if r, ok := raw["rule"].(string); ok {
		rule = r
	}

	message := "AI review finding"
	if m, ok := raw["message"].(string); ok {
		message = m
	}

	suggestion, _ := raw["suggestion"].(string)
	if !strings.HasPrefix(suggestion, review.AIProposalPrefix) {
		suggestion = review.AIProposalPrefix + " " + suggestion
	}

	target, _ := raw["target"].(string)

	line := 0
	if l, ok := raw["line"].(float64); ok {
		line = int(l)
	}

	return review.Finding{
		ID:         fmt.Sprintf("AI-%03d", index+1),
		Rule:       rule,
		Severity:   severity,
		Category:   category,
		Target:     target,
		Message:    message,
		Suggestion: suggestion,
		Line:       line,
	}
}
