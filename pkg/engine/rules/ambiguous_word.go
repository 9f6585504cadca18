package rules

import (
	"fmt"
	"regexp"

	"github.com/kazushi-tech/specforge/pkg/domain/review"
)

type ambiguousPattern struct {
	re         *regexp.Regexp
	word       string
	suggestion string
}

// Vague qualifiers that make requirements untestable, paired with the
// concrete replacement style to suggest. One finding per pattern per line;
// repeated occurrences of the same pattern inside a line are not counted
// separately.
var ambiguousPatterns = []ambiguousPattern{
	{regexp.MustCompile(`適切[なに]`), "適切に/適切な", "具体的な基準値を記載してください（例: HTTPステータスコード+日本語メッセージ）"},
	{regexp.MustCompile(`できるだけ`), "できるだけ", "具体的な目標値に置き換えてください（例: 95%以上）"},
	{regexp.MustCompile(`迅速に`), "迅速に", "応答時間を数値で定義してください（例: 3秒以内）"},
	{regexp.MustCompile(`なるべく`), "なるべく", "目標値を明記してください（例: 99.9%以上）"},
	{regexp.MustCompile(`十分[なに]`), "十分に/十分な", "定量的な基準を明記してください（例: 最低100件以上）"},
	{regexp.MustCompile(`必要に応じて`), "必要に応じて", "発動条件を明示的に記述してください（例: ユーザー数が1000を超えた場合）"},
	{regexp.MustCompile(`速やかに`), "速やかに", "時間制約を数値で定義してください（例: 1時間以内）"},
	{regexp.MustCompile(`柔軟[なに]`), "柔軟に/柔軟な", "具体的な変更パターンを列挙してください"},
	{regexp.MustCompile(`高速[なに]`), "高速に/高速な", "具体的な性能値を定義してください（例: 200ms以内）"},
	{regexp.MustCompile(`大量[のに]`), "大量の/大量に", "具体的な数量を定義してください（例: 10万件以上）"},
}

// AmbiguousWord scans every raw line for vague phrasing.
type AmbiguousWord struct{}

func (r *AmbiguousWord) ID() string   { return "ambiguous-word" }
func (r *AmbiguousWord) Name() string { return "曖昧語検出" }

func (r *AmbiguousWord) Run(doc *review.ParsedDocument) []review.Finding {
	var findings []review.Finding

	for i, line := range doc.Lines {
		lineNo := i + 1

		for _, ap := range ambiguousPatterns {
			if !ap.re.MatchString(line) {
				continue
			}

			var target string
			if owner := doc.RequirementAt(lineNo); owner != nil {
				target = owner.ID
			}

			findings = append(findings, review.Finding{
				Rule:       r.ID(),
				Severity:   review.SeverityMedium,
				Category:   review.CategoryClarity,
				Target:     target,
				Message:    fmt.Sprintf("曖昧な表現「%s」が使用されています（行 %d）", ap.word, lineNo),
				Suggestion: review.AIProposalPrefix + " " + ap.suggestion,
				Line:       lineNo,
			})
		}
	}

	return findings
}
