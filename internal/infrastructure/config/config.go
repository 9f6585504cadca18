// Package config loads the .specforge YAML configuration and the process
// environment. Both are read once at startup and passed explicitly into the
// services that need them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const configFile = ".specforge/config.yml"

// Config is the repository-level review configuration.
type Config struct {
	ReviewPaths []string         `yaml:"review_paths"`
	AllowedAPIs []string         `yaml:"allowed_apis"`
	Comment     CommentConfig    `yaml:"comment"`
	Guardrails  GuardrailsConfig `yaml:"guardrails"`
	Labels      LabelsConfig     `yaml:"labels"`
}

// CommentConfig controls PR comment behavior.
type CommentConfig struct {
	Marker         string `yaml:"marker"`
	UpdateExisting bool   `yaml:"update_existing"`
}

// GuardrailsConfig encodes the review-never-approves policy.
type GuardrailsConfig struct {
	AICanApprove         bool   `yaml:"ai_can_approve"`
	AIReviewMode         string `yaml:"ai_review_mode"`
	RequireAIProposalTag bool   `yaml:"require_ai_proposal_tag"`
	AIProposalPrefix     string `yaml:"ai_proposal_prefix"`
	RequireHumanApproval bool   `yaml:"require_human_approval"`
}

// LabelsConfig names the repository labels the workflow relies on.
type LabelsConfig struct {
	Approval string `yaml:"approval"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		ReviewPaths: []string{"requirements/**/*.md"},
		AllowedAPIs: []string{"github", "google-gemini-flash"},
		Comment: CommentConfig{
			Marker:         "<!-- specforge-review -->",
			UpdateExisting: true,
		},
		Guardrails: GuardrailsConfig{
			AICanApprove:         false,
			AIReviewMode:         "COMMENT",
			RequireAIProposalTag: true,
			AIProposalPrefix:     "[AI提案]",
			RequireHumanApproval: true,
		},
		Labels: LabelsConfig{Approval: "requirements-approved"},
	}
}

// Load reads .specforge/config.yml under root. A missing file yields the
// defaults; a malformed file is an error.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(configFile)))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if len(cfg.ReviewPaths) == 0 {
		cfg.ReviewPaths = Default().ReviewPaths
	}
	if len(cfg.AllowedAPIs) == 0 {
		cfg.AllowedAPIs = Default().AllowedAPIs
	}
	if cfg.Comment.Marker == "" {
		cfg.Comment.Marker = Default().Comment.Marker
	}
	if cfg.Guardrails.AIProposalPrefix == "" {
		cfg.Guardrails.AIProposalPrefix = Default().Guardrails.AIProposalPrefix
	}

	return cfg, nil
}

// Env is the immutable process environment snapshot.
type Env struct {
	GithubToken   string
	GithubOwner   string
	GithubRepo    string
	WebhookSecret string
	AdminToken    string
	GeminiAPIKey  string
	// ReviewProvider is the raw provider setting: auto, gemini or
	// rule-based. Anything else normalizes to auto at resolution time.
	ReviewProvider string
	Port           int
	Environment    string
}

// LoadEnv reads the environment once. Call it from main and pass the
// snapshot down.
func LoadEnv() Env {
	port := 3000
	if p := os.Getenv("PORT"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			port = n
		}
	}

	return Env{
		GithubToken:    os.Getenv("GITHUB_TOKEN"),
		GithubOwner:    envOr("GITHUB_OWNER", "kazushi-tech"),
		GithubRepo:     envOr("GITHUB_REPO", "new-project"),
		WebhookSecret:  os.Getenv("GITHUB_WEBHOOK_SECRET"),
		AdminToken:     os.Getenv("ADMIN_UI_TOKEN"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		ReviewProvider: envOr("REVIEW_PROVIDER", "auto"),
		Port:           port,
		Environment:    envOr("SPECFORGE_ENV", "development"),
	}
}

// Production reports whether the process runs with production guardrails
// (unset secrets become hard failures instead of warnings).
func (e Env) Production() bool {
	return e.Environment == "production"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
