// Package chat holds the conversation state and the send pipeline.
package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/codepane/codepane/codeblock"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one conversation entry. Messages are immutable once
// appended; only assistant messages carry code blocks.
type Message struct {
	ID         string                `json:"id"`
	Role       Role                  `json:"role"`
	Content    string                `json:"content"`
	Timestamp  time.Time             `json:"timestamp"`
	CodeBlocks []codeblock.CodeBlock `json:"code_blocks,omitempty"`
}

// NewUserMessage creates a user message. User messages never carry
// code blocks.
func NewUserMessage(content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewAssistantMessage creates an assistant message with code blocks
// extracted from content.
func NewAssistantMessage(content string) Message {
	return Message{
		ID:         uuid.NewString(),
		Role:       RoleAssistant,
		Content:    content,
		Timestamp:  time.Now(),
		CodeBlocks: codeblock.Blocks(content),
	}
}
