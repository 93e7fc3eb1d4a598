// In-memory conversation store.
//
// Information Hiding:
// - Slice storage hidden from users
// - Thread-safe access via RWMutex hidden behind methods
// - Append-only except for wholesale clear; no edits, no reordering

package chat

import (
	"sync"

	"github.com/codepane/codepane/codeblock"
)

// Store holds the ordered conversation. The only legal operations are
// Append (always) and Clear (resets to empty); existing entries are
// never mutated, deleted individually, or reordered.
type Store struct {
	mu       sync.RWMutex
	messages []Message
}

// NewStore creates an empty conversation store.
func NewStore() *Store {
	return &Store{}
}

// Append adds a message to the end of the conversation.
func (s *Store) Append(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// Clear resets the conversation to empty.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

// Messages returns a copy of the conversation in append order. Code
// block slices are copied too, so callers cannot reach stored state.
func (s *Store) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]Message, len(s.messages))
	for i, msg := range s.messages {
		copied[i] = cloneMessage(msg)
	}
	return copied
}

func cloneMessage(msg Message) Message {
	if len(msg.CodeBlocks) > 0 {
		blocks := make([]codeblock.CodeBlock, len(msg.CodeBlocks))
		copy(blocks, msg.CodeBlocks)
		msg.CodeBlocks = blocks
	}
	return msg
}

// Len returns the number of messages.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// LastAssistant returns the most recent assistant message, if any.
func (s *Store) LastAssistant() (Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Role == RoleAssistant {
			return cloneMessage(s.messages[i]), true
		}
	}
	return Message{}, false
}
