package llm

import (
	"context"
	"errors"
	"testing"
)

func TestNewMissingAPIKey(t *testing.T) {
	for _, typ := range []ProviderType{ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderCustom} {
		_, err := New(Options{Type: typ})
		if err == nil {
			t.Errorf("%s: expected error for missing API key", typ)
		}
	}
}

func TestNewCustomMissingBaseURL(t *testing.T) {
	_, err := New(Options{Type: ProviderCustom, APIKey: "anything"})
	if err == nil {
		t.Error("expected error for custom provider without base URL")
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	provider, err := New(Options{Type: ProviderOpenAI, APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.Model() != ProviderOpenAI.DefaultModel() {
		t.Errorf("expected default model %q, got %q", ProviderOpenAI.DefaultModel(), provider.Model())
	}
	if provider.Name() != "openai" {
		t.Errorf("expected name 'openai', got %q", provider.Name())
	}
}

func TestUninitializedProviderFailsWithoutNetwork(t *testing.T) {
	// Constructors with an empty key must produce a provider that fails
	// immediately rather than attempting a request.
	providers := []Provider{
		NewAnthropicProvider("", "m", 100, 0.7),
		NewOpenAIProvider("", "m", 100, 0.7),
		NewGeminiProvider("", "m", 100, 0.7),
		NewCustomProvider("", "m", "", nil, 100, 0.7),
	}
	for _, p := range providers {
		_, err := p.Chat(context.Background(), []ChatMessage{UserMessage("hi")})
		if !errors.Is(err, ErrNotInitialized) {
			t.Errorf("%s: expected ErrNotInitialized, got %v", p.Name(), err)
		}
	}
}

func TestParseProviderType(t *testing.T) {
	cases := map[string]ProviderType{
		"anthropic": ProviderAnthropic,
		"Claude":    ProviderAnthropic,
		"openai":    ProviderOpenAI,
		"gpt":       ProviderOpenAI,
		"gemini":    ProviderGemini,
		"google":    ProviderGemini,
		"custom":    ProviderCustom,
	}
	for input, want := range cases {
		got, err := ParseProviderType(input)
		if err != nil {
			t.Errorf("ParseProviderType(%q): unexpected error: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseProviderType(%q) = %v, want %v", input, got, want)
		}
	}

	if _, err := ParseProviderType("mystery"); err == nil {
		t.Error("expected error for unknown provider string")
	}
}

func TestProviderTypeString(t *testing.T) {
	if ProviderAnthropic.String() != "anthropic" || ProviderCustom.String() != "custom" {
		t.Error("unexpected String() output")
	}
}
