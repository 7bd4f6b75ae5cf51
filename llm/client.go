// Package llm binds the chat loop to language-model backends.
package llm

import "context"

// Client sends one formatted context string to a language model and returns
// the reply text.
//
// Implementations never propagate transport or API faults to the caller:
// every failure is rendered as a human-readable reply (for example prefixed
// "API Error:" or "Error:") so the chat loop can display it inline as the
// assistant's answer.
type Client interface {
	SendMessage(ctx context.Context, message string) string
}
