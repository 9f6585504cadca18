package rules

import (
	"fmt"
	"regexp"

	"github.com/kazushi-tech/specforge/pkg/domain/review"
)

type nfrCheck struct {
	name       string
	present    func(doc *review.ParsedDocument) bool
	severity   review.Severity
	suggestion string
}

var (
	monitoringRe    = regexp.MustCompile(`(?i)監視|ログ|モニタリング|logging|monitoring`)
	dataRetentionRe = regexp.MustCompile(`(?i)データ保持|個人情報保護|プライバシー|GDPR|data retention|privacy`)
)

// Document-wide coverage checks, evaluated in declared order. Each absent
// item yields exactly one document-level finding.
var nfrChecks = []nfrCheck{
	{
		name:       "セキュリティ要件",
		present:    func(doc *review.ParsedDocument) bool { return doc.HasSecuritySection },
		severity:   review.SeverityHigh,
		suggestion: "認証・認可・暗号化・脆弱性対策等のセキュリティ要件を追加してください",
	},
	{
		name:       "パフォーマンス要件",
		present:    func(doc *review.ParsedDocument) bool { return doc.HasPerformanceSection },
		severity:   review.SeverityHigh,
		suggestion: "応答時間・スループット・同時接続数等のパフォーマンス要件を追加してください",
	},
	{
		name:       "可用性要件",
		present:    func(doc *review.ParsedDocument) bool { return doc.HasAvailabilitySection },
		severity:   review.SeverityMedium,
		suggestion: "稼働率目標・バックアップ・障害復旧（RTO/RPO）等の可用性要件を追加してください",
	},
	{
		name:       "非機能要件セクション",
		present:    func(doc *review.ParsedDocument) bool { return doc.HasNfrSection },
		severity:   review.SeverityHigh,
		suggestion: "非機能要件セクションを追加してください（パフォーマンス、セキュリティ、可用性、運用等）",
	},
	{
		name:       "監視・ログ要件",
		present:    func(doc *review.ParsedDocument) bool { return monitoringRe.MatchString(doc.RawContent) },
		severity:   review.SeverityMedium,
		suggestion: "監視・ログ・アラート等の運用要件を追加してください",
	},
	{
		name:       "データ保持・プライバシー要件",
		present:    func(doc *review.ParsedDocument) bool { return dataRetentionRe.MatchString(doc.RawContent) },
		severity:   review.SeverityMedium,
		suggestion: "データ保持期間・個人情報保護・プライバシーポリシー等の要件を追加してください",
	},
}

// MissingNfr warns when security or other non-functional coverage is absent
// from the whole document.
type MissingNfr struct{}

func (r *MissingNfr) ID() string   { return "missing-nfr" }
func (r *MissingNfr) Name() string { return "セキュリティ・非機能要件欠落警告" }

func (r *MissingNfr) Run(doc *review.ParsedDocument) []review.Finding {
	var findings []review.Finding

	for _, check := range nfrChecks {
		if check.present(doc) {
			continue
		}
		findings = append(findings, review.Finding{
			Rule:       r.ID(),
			Severity:   check.severity,
			Category:   review.CategoryCompleteness,
			Message:    fmt.Sprintf("%sが定義されていません", check.name),
			Suggestion: review.AIProposalPrefix + " " + check.suggestion,
		})
	}

	return findings
}
