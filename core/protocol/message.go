// Package protocol defines the conversation message types shared by the
// history buffer, the chat loop, and the LLM bindings.
package protocol

// Role identifies the sender of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single role-tagged conversation entry. Content is arbitrary
// text; a message is immutable once recorded except for the history buffer's
// single-oversized-message truncation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewMessage creates a Message with the given role and content.
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

// Render formats the message as "role: content", the line format used when
// composing an LLM context string.
func (m Message) Render() string {
	return string(m.Role) + ": " + m.Content
}
