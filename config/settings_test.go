package config

import (
	"testing"

	"github.com/codepane/codepane/llm"
)

// pinEnv clears the settings-related variables so ambient configuration
// cannot flip assertions about defaults.
func pinEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CODEPANE_PROVIDER", "CODEPANE_MODEL", "CODEPANE_ADDR",
		"LLM_MAX_TOKENS", "LLM_TEMPERATURE",
		"CUSTOM_BASE_URL", "CUSTOM_HEADERS",
	} {
		t.Setenv(key, "")
	}
}

func TestNewValidProvider(t *testing.T) {
	pinEnv(t)
	settings, err := New("openai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.Provider != llm.ProviderOpenAI {
		t.Errorf("expected openai, got %v", settings.Provider)
	}
	if settings.Model != llm.ProviderOpenAI.DefaultModel() {
		t.Errorf("expected the registry default model, got %q", settings.Model)
	}
	if settings.Addr != ":8080" {
		t.Errorf("expected default listen address :8080, got %q", settings.Addr)
	}
}

func TestNewWithAlias(t *testing.T) {
	pinEnv(t)
	settings, err := New("claude")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.Provider != llm.ProviderAnthropic {
		t.Errorf("expected anthropic (normalized from 'claude'), got %v", settings.Provider)
	}
}

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New("unknown_provider"); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewWithInvalidEnvVar(t *testing.T) {
	pinEnv(t)
	t.Setenv("LLM_MAX_TOKENS", "not-a-number")

	if _, err := New("openai"); err == nil {
		t.Error("expected error for invalid LLM_MAX_TOKENS")
	}
}

func TestValidateMissingKey(t *testing.T) {
	settings := Settings{Provider: llm.ProviderAnthropic}
	if err := settings.Validate(); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestValidateMalformedKey(t *testing.T) {
	settings := Settings{Provider: llm.ProviderAnthropic, APIKey: "not-an-anthropic-key"}
	if err := settings.Validate(); err == nil {
		t.Error("expected error for malformed API key")
	}
}

func TestValidateCustomRequiresBaseURL(t *testing.T) {
	settings := Settings{Provider: llm.ProviderCustom, APIKey: "anything", Model: "m"}
	if err := settings.Validate(); err == nil {
		t.Error("expected error for custom provider without base URL")
	}
	settings.BaseURL = "https://llm.internal/v1"
	if err := settings.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateOK(t *testing.T) {
	settings := Settings{
		Provider: llm.ProviderAnthropic,
		APIKey:   "sk-ant-REDACTED",
		Model:    "claude-sonnet-4-20250514",
	}
	if err := settings.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseHeaders(t *testing.T) {
	headers := parseHeaders("X-Org=acme, X-Tier=gold,broken")
	if len(headers) != 2 {
		t.Fatalf("expected 2 headers, got %d", len(headers))
	}
	if headers["X-Org"] != "acme" || headers["X-Tier"] != "gold" {
		t.Errorf("unexpected headers: %v", headers)
	}
	if parseHeaders("") != nil {
		t.Error("expected nil headers for empty input")
	}
}
