// Custom Provider implementation using go-openai library.
//
// Information Hiding:
// - Targets any OpenAI-compatible API with a caller-supplied base URL
// - Optional extra headers applied to every request via a wrapping transport

package llm

import (
	"context"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// CustomProvider implements the Provider interface for self-hosted or
// third-party endpoints that speak the OpenAI chat completion wire format.
type CustomProvider struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewCustomProvider creates a provider for an OpenAI-compatible endpoint.
// baseURL must point at the endpoint's API root (e.g. "https://host/v1").
// headers, if non-nil, are added to every outbound request.
func NewCustomProvider(apiKey, model, baseURL string, headers map[string]string, maxTokens uint32, temperature float32) *CustomProvider {
	if apiKey == "" || baseURL == "" {
		return &CustomProvider{model: model}
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	if len(headers) > 0 {
		config.HTTPClient = &http.Client{
			Transport: &headerTransport{headers: headers},
		}
	}

	return &CustomProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		maxTokens:   int(maxTokens),
		temperature: temperature,
	}
}

// Name returns the provider name.
func (p *CustomProvider) Name() string {
	return "custom"
}

// Model returns the current model.
func (p *CustomProvider) Model() string {
	return p.model
}

// Chat sends a chat completion request.
func (p *CustomProvider) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	if p.client == nil {
		return "", ErrNotInitialized
	}

	req := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    convertToOpenAIMessages(messages),
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from custom endpoint")
	}
	return resp.Choices[0].Message.Content, nil
}

// headerTransport adds fixed headers to every request.
// go-openai has no per-request header hook, so headers ride on the transport.
type headerTransport struct {
	headers map[string]string
	base    http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	clone := req.Clone(req.Context())
	for k, v := range t.headers {
		clone.Header.Set(k, v)
	}
	return base.RoundTrip(clone)
}

// Verify CustomProvider implements Provider
var _ Provider = (*CustomProvider)(nil)
