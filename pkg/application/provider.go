package application

import "github.com/kazushi-tech/specforge/pkg/domain/review"

// ProviderResolution is the outcome of configuration-time provider
// selection. Configured differing from Effective means the AI provider was
// requested but is unavailable; runtime call failures are tracked separately
// via ProviderMetadata.FallbackUsed.
type ProviderResolution struct {
	Configured       review.Provider
	Effective        review.Provider
	GeminiConfigured bool
}

// ResolveProvider decides which provider to use from the raw setting
// (auto / gemini / rule-based; anything else normalizes to auto) and API key
// presence.
func ResolveProvider(raw string, apiKeyPresent bool) ProviderResolution {
	setting := raw
	switch setting {
	case "gemini", "rule-based", "auto":
	default:
		setting = "auto"
	}

	res := ProviderResolution{GeminiConfigured: apiKeyPresent}

	if setting == "auto" {
		if apiKeyPresent {
			res.Configured = review.ProviderGemini
		} else {
			res.Configured = review.ProviderRuleBased
		}
	} else {
		res.Configured = review.Provider(setting)
	}

	res.Effective = res.Configured
	if res.Configured == review.ProviderGemini && !apiKeyPresent {
		res.Effective = review.ProviderRuleBased
	}

	return res
}
