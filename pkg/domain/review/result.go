package review

// Provider identifies the finding-generation strategy in effect.
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderRuleBased Provider = "rule-based"
)

// SourceType distinguishes single-file reviews from pull-request reviews.
type SourceType string

const (
	SourceFile SourceType = "file"
	SourcePR   SourceType = "pr"
)

// Source describes what a review looked at.
type Source struct {
	Type     SourceType `json:"type"`
	Path     string     `json:"path,omitempty"`
	Paths    []string   `json:"paths,omitempty"` // aggregated multi-file reviews only
	PRNumber int        `json:"prNumber,omitempty"`
}

// ProviderMetadata records which provider was requested and which actually
// ran. FallbackUsed is true only for runtime degradation: the AI provider
// was effective at entry and failed at call time.
type ProviderMetadata struct {
	ConfiguredProvider Provider `json:"configuredProvider"`
	EffectiveProvider  Provider `json:"effectiveProvider"`
	FallbackUsed       bool     `json:"fallbackUsed"`
	FallbackReason     string   `json:"fallbackReason,omitempty"`
}

// Metadata carries review identity and provenance.
type Metadata struct {
	ReviewID       string            `json:"reviewId"`
	Timestamp      string            `json:"timestamp"` // ISO-8601
	Source         Source            `json:"source"`
	RulesApplied   []string          `json:"rulesApplied"`
	ReviewProvider *ProviderMetadata `json:"reviewProvider,omitempty"`
}

// Summary aggregates finding counts and the quality score.
type Summary struct {
	TotalFindings int              `json:"totalFindings"`
	BySeverity    map[Severity]int `json:"bySeverity"`
	QualityScore  float64          `json:"qualityScore"` // 0-10, one decimal
	FileCount     int              `json:"fileCount,omitempty"`
}

// FileSummary is the pre-merge summary of one file inside an aggregated
// result. Score and tallies are the file's own, never recomputed.
type FileSummary struct {
	Path         string           `json:"path"`
	FindingCount int              `json:"findingCount"`
	QualityScore float64          `json:"qualityScore"`
	BySeverity   map[Severity]int `json:"bySeverity"`
}

// Result is a completed review: metadata, summary and the ordered findings.
// FileResults is populated only when two or more per-file results were
// aggregated.
type Result struct {
	Metadata    Metadata      `json:"metadata"`
	Summary     Summary       `json:"summary"`
	Findings    []Finding     `json:"findings"`
	FileResults []FileSummary `json:"fileResults,omitempty"`
}
