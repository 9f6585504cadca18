// Package application wires the review engine, the AI reviewer and the
// provider policy into the single review entry point.
package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/kazushi-tech/specforge/pkg/ai"
	"github.com/kazushi-tech/specforge/pkg/domain/review"
	"github.com/kazushi-tech/specforge/pkg/engine"
)

// ErrNoContent is returned when a review is requested without content or a
// file path.
var ErrNoContent = errors.New("either filePath or content must be provided")

// ContentSource reads document text for file-sourced reviews.
type ContentSource interface {
	Read(path string) (string, error)
}

// AuditLogger records review lifecycle events.
type AuditLogger interface {
	Log(action string, metadata map[string]any) error
}

// ReviewOptions describe one review request.
type ReviewOptions struct {
	Source   review.SourceType
	FilePath string
	PRNumber int
	Content  string // directly supplied markdown, skips the content source
}

type aiReviewFunc func(ctx context.Context, client *ai.Client, req ai.ReviewRequest) (*ai.ReviewOutcome, error)

// ReviewService runs reviews end to end: content loading, provider
// resolution, AI call with degrade-on-failure, result assembly. AI failures
// never escape this service; they surface only in provider metadata.
type ReviewService struct {
	source          ContentSource
	audit           AuditLogger
	providerSetting string
	geminiAPIKey    string

	aiReview aiReviewFunc
	now      func() time.Time
}

// NewReviewService constructs the orchestrator. The provider setting and API
// key are read once at process start and passed in; the service never
// consults ambient environment state.
func NewReviewService(source ContentSource, audit AuditLogger, providerSetting, geminiAPIKey string) *ReviewService {
	return &ReviewService{
		source:          source,
		audit:           audit,
		providerSetting: providerSetting,
		geminiAPIKey:    geminiAPIKey,
		aiReview:        ai.Review,
		now:             time.Now,
	}
}

// Run executes one review and always returns a completed result unless the
// request itself is structurally invalid.
func (s *ReviewService) Run(ctx context.Context, opts ReviewOptions) (*review.Result, error) {
	content := opts.Content
	if content == "" {
		if opts.FilePath == "" {
			return nil, ErrNoContent
		}
		read, err := s.source.Read(opts.FilePath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", opts.FilePath, err)
		}
		content = read
	}

	now := s.now().UTC()
	reviewID := "rev-" + now.Format("20060102150405")

	flow, err := review.NewFlowMachine(reviewID)
	if err != nil {
		return nil, err
	}

	resolution := ResolveProvider(s.providerSetting, s.geminiAPIKey != "")
	meta := review.ProviderMetadata{
		ConfiguredProvider: resolution.Configured,
		EffectiveProvider:  resolution.Effective,
	}

	var findings []review.Finding
	var rulesApplied []string

	if resolution.Effective == review.ProviderGemini {
		_ = flow.Transition(review.EventUseAI)

		outcome, aiErr := s.aiReview(ctx, ai.NewClient(s.geminiAPIKey), ai.ReviewRequest{
			Content:  content,
			FilePath: opts.FilePath,
		})
		if aiErr != nil {
			reason := fallbackReason(aiErr)
			log.Printf("[review] AI review failed, falling back to rule-based: %s", reason)

			meta.FallbackUsed = true
			meta.FallbackReason = reason
			meta.EffectiveProvider = review.ProviderRuleBased
			_ = flow.Transition(review.EventDegrade)

			s.logAudit("review.fallback", map[string]any{"reviewId": reviewID, "reason": reason})

			ruleOutcome := engine.RunRuleBasedReview(content)
			findings = ruleOutcome.Findings
			rulesApplied = ruleOutcome.RulesApplied
		} else {
			findings = engine.AssignFindingIDs(outcome.Findings)
			rulesApplied = []string{"ai-review"}
		}
	} else {
		_ = flow.Transition(review.EventUseRules)
		ruleOutcome := engine.RunRuleBasedReview(content)
		findings = ruleOutcome.Findings
		rulesApplied = ruleOutcome.RulesApplied
	}

	_ = flow.Transition(review.EventFinish)

	result := &review.Result{
		Metadata: review.Metadata{
			ReviewID:  reviewID,
			Timestamp: now.Format(time.RFC3339),
			Source: review.Source{
				Type:     opts.Source,
				Path:     opts.FilePath,
				PRNumber: opts.PRNumber,
			},
			RulesApplied:   rulesApplied,
			ReviewProvider: &meta,
		},
		Summary: review.Summary{
			TotalFindings: len(findings),
			BySeverity:    engine.CountBySeverity(findings),
			QualityScore:  engine.CalculateQualityScore(findings),
		},
		Findings: findings,
	}

	s.logAudit("review.completed", map[string]any{
		"reviewId":     reviewID,
		"provider":     string(meta.EffectiveProvider),
		"findings":     len(findings),
		"qualityScore": result.Summary.QualityScore,
	})

	return result, nil
}

func (s *ReviewService) logAudit(action string, metadata map[string]any) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Log(action, metadata); err != nil {
		log.Printf("[review] audit log failed: %v", err)
	}
}

// fallbackReason renders a failure as "<category>: <message>" for provider
// metadata.
func fallbackReason(err error) string {
	var aiErr *ai.Error
	if errors.As(err, &aiErr) {
		return fmt.Sprintf("%s: %s", aiErr.Category, aiErr.Message)
	}
	return fmt.Sprintf("unknown: %s", err.Error())
}
