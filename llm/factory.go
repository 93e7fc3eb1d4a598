// LLM Provider Factory - constructs providers from a validated configuration.
//
// Quick Start:
//
//	provider, err := llm.New(llm.Options{
//	    Type:   llm.ProviderAnthropic,
//	    APIKey: os.Getenv("ANTHROPIC_API_KEY"),
//	})
//
//	// OpenAI-compatible custom endpoint
//	provider, err := llm.New(llm.Options{
//	    Type:    llm.ProviderCustom,
//	    APIKey:  key,
//	    Model:   "llama-3.1-70b",
//	    BaseURL: "https://llm.internal/v1",
//	})

package llm

import (
	"fmt"
	"strings"
)

// ProviderType represents supported LLM providers.
type ProviderType int

const (
	// ProviderAnthropic is the Anthropic provider (Claude models).
	ProviderAnthropic ProviderType = iota
	// ProviderOpenAI is the OpenAI provider (GPT models).
	ProviderOpenAI
	// ProviderGemini is the Google Gemini provider.
	ProviderGemini
	// ProviderCustom is any OpenAI-compatible endpoint with a custom base URL.
	ProviderCustom
)

// String returns the string representation of the provider type.
func (p ProviderType) String() string {
	switch p {
	case ProviderAnthropic:
		return "anthropic"
	case ProviderOpenAI:
		return "openai"
	case ProviderGemini:
		return "gemini"
	case ProviderCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// ParseProviderType parses a provider from string (case-insensitive).
func ParseProviderType(s string) (ProviderType, error) {
	switch strings.ToLower(s) {
	case "anthropic", "claude":
		return ProviderAnthropic, nil
	case "openai", "gpt":
		return ProviderOpenAI, nil
	case "gemini", "google":
		return ProviderGemini, nil
	case "custom":
		return ProviderCustom, nil
	default:
		return 0, fmt.Errorf("unknown provider: %s", s)
	}
}

// Options configures provider construction.
type Options struct {
	Type        ProviderType
	APIKey      string
	Model       string            // empty means the registry default
	BaseURL     string            // required for ProviderCustom
	Headers     map[string]string // extra headers, ProviderCustom only
	MaxTokens   uint32            // 0 means 4096
	Temperature *float32          // nil means 0.7
}

// New builds a provider from options. Configuration errors (missing API
// key, missing base URL for a custom endpoint) are reported here, before
// any client is constructed or any network call is possible.
func New(opts Options) (Provider, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("%s: API key not set", opts.Type)
	}
	if opts.Type == ProviderCustom && opts.BaseURL == "" {
		return nil, fmt.Errorf("custom: base URL not set")
	}

	model := opts.Model
	if model == "" {
		model = opts.Type.DefaultModel()
	}

	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	temperature := float32(0.7) // default
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}

	switch opts.Type {
	case ProviderAnthropic:
		return NewAnthropicProvider(opts.APIKey, model, maxTokens, temperature), nil
	case ProviderOpenAI:
		return NewOpenAIProvider(opts.APIKey, model, maxTokens, temperature), nil
	case ProviderGemini:
		return NewGeminiProvider(opts.APIKey, model, maxTokens, temperature), nil
	case ProviderCustom:
		return NewCustomProvider(opts.APIKey, model, opts.BaseURL, opts.Headers, maxTokens, temperature), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %v", opts.Type)
	}
}
