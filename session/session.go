// Package session manages the bounded conversation history for the chat
// loop. The history keeps messages in insertion order and evicts the oldest
// entries once the total content size passes a configured character ceiling.
package session

import (
	"github.com/tomgosling57/mcp-client/core/protocol"
)

// History holds an ordered, character-bounded sequence of conversation
// messages. Implementations must be safe for concurrent use.
type History interface {
	// ID returns the unique session identifier.
	ID() string
	// AddMessage appends a role-tagged message, then restores the size
	// bound by evicting the oldest messages. Oversized input is truncated,
	// never rejected.
	AddMessage(role protocol.Role, content string)
	// Messages returns a defensive copy of the conversation history.
	Messages() []protocol.Message
	// ContextString renders the history as "role: content" lines joined by
	// single newlines, suitable for an LLM context window. Empty history
	// yields the empty string.
	ContextString() string
	// Len reports the number of retained messages.
	Len() int
	// Chars reports the total content length of all retained messages.
	Chars() int
	// Clear resets the conversation history.
	Clear()
}
