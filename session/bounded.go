package session

import (
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/tomgosling57/mcp-client/core/protocol"
)

type boundedHistory struct {
	id       string
	maxChars int
	messages []protocol.Message
	chars    int
	mu       sync.RWMutex
}

// NewBoundedHistory creates a History that retains at most maxChars
// characters of message content. The history is assigned a unique UUIDv7
// identifier.
func NewBoundedHistory(maxChars int) History {
	return &boundedHistory{
		id:       uuid.Must(uuid.NewV7()).String(),
		maxChars: maxChars,
	}
}

func (h *boundedHistory) ID() string {
	return h.id
}

// AddMessage appends the message, then evicts oldest-first while the total
// exceeds the ceiling and more than one message remains. A sole surviving
// message longer than the ceiling is truncated to at most maxChars without
// splitting a UTF-8 sequence, so an add never empties the history and
// never fails.
func (h *boundedHistory) AddMessage(role protocol.Role, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.messages = append(h.messages, protocol.NewMessage(role, content))
	h.chars += len(content)

	for h.chars > h.maxChars && len(h.messages) > 1 {
		h.chars -= len(h.messages[0].Content)
		h.messages = h.messages[1:]
	}

	if h.chars > h.maxChars && len(h.messages) == 1 {
		remaining := h.messages[0].Content
		cut := h.maxChars
		// Back off to a rune boundary so the context string stays valid
		// UTF-8.
		for cut > 0 && !utf8.RuneStart(remaining[cut]) {
			cut--
		}
		h.messages[0].Content = remaining[:cut]
		h.chars = cut
	}
}

func (h *boundedHistory) Messages() []protocol.Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.messages)
}

func (h *boundedHistory) ContextString() string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var b strings.Builder
	for i, msg := range h.messages {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(msg.Render())
	}
	return b.String()
}

func (h *boundedHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.messages)
}

func (h *boundedHistory) Chars() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.chars
}

func (h *boundedHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
	h.chars = 0
}
