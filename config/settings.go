// Package config provides application settings loaded from environment variables.
//
// Settings are created via New() which handles:
// - Environment variable parsing with validation
// - Default value application
// - Provider-specific API key lookup via the registry

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/codepane/codepane/llm"
)

// Settings holds all application configuration. Settings live only in
// memory; there is no on-disk representation.
type Settings struct {
	Provider    llm.ProviderType
	APIKey      string
	Model       string
	BaseURL     string            // custom provider only
	Headers     map[string]string // custom provider only
	MaxTokens   uint32
	Temperature float32
	Addr        string
}

// New creates settings from environment variables for the given provider
// name (empty means CODEPANE_PROVIDER, falling back to anthropic).
func New(providerName string) (Settings, error) {
	if providerName == "" {
		providerName = os.Getenv("CODEPANE_PROVIDER")
	}
	if providerName == "" {
		providerName = "anthropic"
	}

	providerType, err := llm.ParseProviderType(providerName)
	if err != nil {
		return Settings{}, err
	}

	info, ok := llm.Info(providerType)
	if !ok {
		return Settings{}, fmt.Errorf("no registry entry for provider %q", providerName)
	}

	maxTokens, err := getEnvUint32("LLM_MAX_TOKENS", 4096)
	if err != nil {
		return Settings{}, err
	}

	temperature, err := getEnvFloat32("LLM_TEMPERATURE", 0.7)
	if err != nil {
		return Settings{}, err
	}

	model := os.Getenv("CODEPANE_MODEL")
	if model == "" {
		model = info.DefaultModel
	}

	addr := os.Getenv("CODEPANE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Settings{
		Provider:    providerType,
		APIKey:      os.Getenv(info.APIKeyEnv),
		Model:       model,
		BaseURL:     os.Getenv("CUSTOM_BASE_URL"),
		Headers:     parseHeaders(os.Getenv("CUSTOM_HEADERS")),
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Addr:        addr,
	}, nil
}

// Validate reports configuration errors that must block a send before
// dispatch: a missing or malformed API key, or a custom endpoint with no
// base URL.
func (s Settings) Validate() error {
	info, ok := llm.Info(s.Provider)
	if !ok {
		return fmt.Errorf("unknown provider: %v", s.Provider)
	}
	if s.APIKey == "" {
		return fmt.Errorf("%s: API key not set (%s)", s.Provider, info.APIKeyEnv)
	}
	if !llm.ValidateKey(s.Provider, s.APIKey) {
		return fmt.Errorf("%s: API key does not match the expected format", s.Provider)
	}
	if s.Provider == llm.ProviderCustom {
		if s.BaseURL == "" {
			return fmt.Errorf("custom: base URL not set (CUSTOM_BASE_URL)")
		}
		if s.Model == "" {
			return fmt.Errorf("custom: model not set (CODEPANE_MODEL)")
		}
	}
	return nil
}

// ProviderOptions converts settings into provider construction options.
func (s Settings) ProviderOptions() llm.Options {
	temperature := s.Temperature
	return llm.Options{
		Type:        s.Provider,
		APIKey:      s.APIKey,
		Model:       s.Model,
		BaseURL:     s.BaseURL,
		Headers:     s.Headers,
		MaxTokens:   s.MaxTokens,
		Temperature: &temperature,
	}
}

// parseHeaders parses comma-separated "Name=value" pairs from a single
// env var. Malformed pairs are skipped.
func parseHeaders(raw string) map[string]string {
	if raw == "" {
		return nil
	}
	headers := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if !ok || name == "" {
			continue
		}
		headers[name] = value
	}
	if len(headers) == 0 {
		return nil
	}
	return headers
}

// Environment variable helpers with proper error handling

func getEnvUint32(key string, defaultVal uint32) (uint32, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	i, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q: %w", key, val, err)
	}
	return uint32(i), nil
}

func getEnvFloat32(key string, defaultVal float32) (float32, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q: %w", key, val, err)
	}
	return float32(f), nil
}
