// Package llm provides LLM provider abstractions.
//
// Each provider implementation hides:
// - API client initialization and authentication
// - Request/response format conversion
// - Provider-specific error handling

package llm

import (
	"context"
	"errors"
)

// ErrNotInitialized is returned when a provider is used before its
// client could be constructed (typically a missing or empty API key).
var ErrNotInitialized = errors.New("llm: client not initialized")

// Provider defines the abstract interface for LLM providers.
// Implementations hide provider-specific wire formats while exposing
// a consistent interface for chat completions.
//
// Chat issues exactly one outbound request per call. There is no retry,
// no backoff, and no streaming; the full conversation is resent as
// context on every call since providers keep no server-side state.
type Provider interface {
	// Name returns the provider name (for logging/debugging).
	Name() string

	// Model returns the current model being used.
	Model() string

	// Chat sends a chat completion request and returns the assistant text.
	Chat(ctx context.Context, messages []ChatMessage) (string, error)
}
