// Send pipeline: validate, dispatch to the provider, extract code,
// append. The conversation is never left half-updated; the pending flag
// is cleared in a final deferred step regardless of outcome.

package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/codepane/codepane/codeblock"
	"github.com/codepane/codepane/llm"
	"github.com/codepane/codepane/preview"
)

// systemInstruction is injected ahead of every conversation sent to a
// provider. Providers keep no server-side state, so it rides on every call.
const systemInstruction = `You are an expert web developer. When asked to produce code, respond with complete, modern, responsive code. Wrap every piece of code in a fenced block tagged with its language, for example:

` + "```html" + `
...
` + "```" + `

Use separate html, css and js blocks so they can be previewed together. Keep any explanation outside the fences.`

// ErrBusy is returned when a send is attempted while another is pending.
// At most one outstanding provider request is meaningful at a time.
var ErrBusy = errors.New("chat: a request is already pending")

// ErrNoProvider is returned when no provider has been configured.
// This is a configuration error: it blocks the send before dispatch and
// never produces a synthetic assistant message.
var ErrNoProvider = errors.New("chat: no provider configured")

// ErrEmptyPrompt is returned for a blank user prompt.
var ErrEmptyPrompt = errors.New("chat: empty prompt")

// ErrCleared is returned when the conversation was cleared while a
// reply was in flight. The stale reply is discarded; appending it would
// orphan an assistant message in the fresh conversation.
var ErrCleared = errors.New("chat: conversation cleared while awaiting reply")

// EventKind discriminates conversation events pushed to observers.
type EventKind string

const (
	// EventTyping signals the pending flag flipping.
	EventTyping EventKind = "typing"
	// EventMessage signals a newly appended message.
	EventMessage EventKind = "message"
	// EventClear signals a wholesale conversation reset.
	EventClear EventKind = "clear"
)

// Event is a conversation state change, for UI push channels.
type Event struct {
	Kind    EventKind `json:"kind"`
	Typing  bool      `json:"typing,omitempty"`
	Message *Message  `json:"message,omitempty"`
}

// Service coordinates the conversation store and the active provider.
// All state transitions go through named operations; there are no direct
// field writes from the outside.
type Service struct {
	mu         sync.Mutex
	provider   llm.Provider
	store      *Store
	pending    bool
	generation uint64 // bumped by Clear; stale in-flight replies are dropped
	notify     func(Event)
}

// NewService creates a chat service. provider may be nil until the first
// configuration arrives; sends fail with ErrNoProvider until then.
func NewService(provider llm.Provider) *Service {
	return &Service{
		provider: provider,
		store:    NewStore(),
	}
}

// OnEvent registers a single observer for conversation events.
// The callback must not call back into the service.
func (s *Service) OnEvent(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify = fn
}

// SetProvider swaps the active provider. Exactly one provider client is
// live at a time; the previous one is dropped.
func (s *Service) SetProvider(provider llm.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provider = provider
}

// Provider returns the active provider, or nil.
func (s *Service) Provider() llm.Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provider
}

// Pending reports whether a send is in flight.
func (s *Service) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Messages returns the conversation in order.
func (s *Service) Messages() []Message {
	return s.store.Messages()
}

// Clear resets the conversation. Clearing is always legal; if a send is
// in flight, its reply is discarded when it arrives.
func (s *Service) Clear() {
	s.mu.Lock()
	s.generation++
	s.store.Clear()
	s.mu.Unlock()
	s.emit(Event{Kind: EventClear})
}

// Send runs one prompt through the pipeline and returns the assistant
// message. Configuration errors (no provider) and a pending send are
// returned as errors before anything is appended. Provider failures are
// converted into a synthetic assistant message carrying a user-visible
// error string, so the conversation stays consistent and browsable.
func (s *Service) Send(ctx context.Context, prompt string) (Message, error) {
	if prompt == "" {
		return Message{}, ErrEmptyPrompt
	}

	s.mu.Lock()
	if s.provider == nil {
		s.mu.Unlock()
		return Message{}, ErrNoProvider
	}
	if s.pending {
		s.mu.Unlock()
		return Message{}, ErrBusy
	}
	s.pending = true
	provider := s.provider
	generation := s.generation
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.pending = false
		s.mu.Unlock()
		s.emit(Event{Kind: EventTyping, Typing: false})
	}()

	userMsg := NewUserMessage(prompt)
	s.store.Append(userMsg)
	s.emit(Event{Kind: EventMessage, Message: &userMsg})
	s.emit(Event{Kind: EventTyping, Typing: true})

	reply, err := provider.Chat(ctx, s.history())

	var assistantMsg Message
	if err != nil {
		assistantMsg = NewAssistantMessage(fmt.Sprintf("Sorry, something went wrong talking to %s: %v", provider.Name(), err))
	} else {
		assistantMsg = NewAssistantMessage(reply)
	}

	// Holding the lock across the generation check and the append keeps
	// Clear from slipping in between them.
	s.mu.Lock()
	if s.generation != generation {
		s.mu.Unlock()
		return Message{}, ErrCleared
	}
	s.store.Append(assistantMsg)
	s.mu.Unlock()
	s.emit(Event{Kind: EventMessage, Message: &assistantMsg})

	return assistantMsg, nil
}

// history converts the stored conversation into provider messages, with
// the fixed system instruction in front.
func (s *Service) history() []llm.ChatMessage {
	messages := s.store.Messages()
	result := make([]llm.ChatMessage, 0, len(messages)+1)
	result = append(result, llm.SystemMessage(systemInstruction))
	for _, msg := range messages {
		result = append(result, llm.ChatMessage{Role: string(msg.Role), Content: msg.Content})
	}
	return result
}

// Preview composes the combined preview document from the latest
// assistant reply. Only html/css/js tagged blocks participate; other
// blocks stay individual-display only.
func (s *Service) Preview() (string, bool) {
	msg, ok := s.store.LastAssistant()
	if !ok {
		return "", false
	}
	buckets := codeblock.Bucketize(msg.CodeBlocks)
	if buckets.IsEmpty() {
		return "", false
	}
	doc := preview.Compose(preview.Buckets{
		HTML: buckets.HTML,
		CSS:  buckets.CSS,
		JS:   buckets.JS,
	})
	return doc, true
}

func (s *Service) emit(ev Event) {
	s.mu.Lock()
	fn := s.notify
	s.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
}
