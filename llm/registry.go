// Provider Registry - static catalog of supported providers.
//
// The registry carries per-provider identity, the known model list, the
// API key format, and the endpoint the adapter talks to. It is consulted
// by the config layer for validation and exposed over the API so the UI
// can populate its provider picker.

package llm

import "regexp"

// ProviderInfo describes one supported provider.
type ProviderInfo struct {
	Type         ProviderType `json:"-"`
	ID           string       `json:"id"`
	DisplayName  string       `json:"name"`
	Endpoint     string       `json:"endpoint"`
	APIKeyEnv    string       `json:"api_key_env"`
	DefaultModel string       `json:"default_model"`
	Models       []string     `json:"models"`

	keyPattern *regexp.Regexp
}

// Registry is the static provider catalog, in display order.
// The custom provider accepts any non-empty key and has no fixed
// endpoint or model list.
var Registry = []ProviderInfo{
	{
		Type:         ProviderAnthropic,
		ID:           "anthropic",
		DisplayName:  "Anthropic",
		Endpoint:     "https://api.anthropic.com/v1/messages",
		APIKeyEnv:    "ANTHROPIC_API_KEY",
		DefaultModel: "claude-sonnet-4-20250514",
		Models: []string{
			"claude-opus-4-5-20251101",
			"claude-sonnet-4-20250514",
			"claude-haiku-4-20250514",
		},
		keyPattern: regexp.MustCompile(`^sk-ant-[A-Za-z0-9_-]{20,}$`),
	},
	{
		Type:         ProviderOpenAI,
		ID:           "openai",
		DisplayName:  "OpenAI",
		Endpoint:     "https://api.openai.com/v1/chat/completions",
		APIKeyEnv:    "OPENAI_API_KEY",
		DefaultModel: "gpt-4o",
		Models: []string{
			"gpt-5.2",
			"gpt-5",
			"gpt-4o",
			"gpt-4o-mini",
			"o3-mini",
		},
		keyPattern: regexp.MustCompile(`^sk-[A-Za-z0-9_-]{20,}$`),
	},
	{
		Type:         ProviderGemini,
		ID:           "gemini",
		DisplayName:  "Google Gemini",
		Endpoint:     "https://generativelanguage.googleapis.com/v1beta",
		APIKeyEnv:    "GEMINI_API_KEY",
		DefaultModel: "gemini-2.5-flash",
		Models: []string{
			"gemini-3-pro",
			"gemini-3-flash",
			"gemini-2.5-flash",
			"gemini-2.0-flash",
		},
		keyPattern: regexp.MustCompile(`^[A-Za-z0-9_-]{20,}$`),
	},
	{
		Type:         ProviderCustom,
		ID:           "custom",
		DisplayName:  "Custom endpoint",
		APIKeyEnv:    "CUSTOM_API_KEY",
		DefaultModel: "",
		keyPattern:   regexp.MustCompile(`^.+$`),
	},
}

// Info returns the registry entry for a provider type.
func Info(t ProviderType) (ProviderInfo, bool) {
	for _, info := range Registry {
		if info.Type == t {
			return info, true
		}
	}
	return ProviderInfo{}, false
}

// DefaultModel returns the default model for this provider.
func (p ProviderType) DefaultModel() string {
	info, ok := Info(p)
	if !ok {
		return ""
	}
	return info.DefaultModel
}

// ValidateKey reports whether key matches the provider's expected format.
// This is a shape check only; the key is proven valid by the first call.
func ValidateKey(t ProviderType, key string) bool {
	info, ok := Info(t)
	if !ok || key == "" {
		return false
	}
	return info.keyPattern.MatchString(key)
}
