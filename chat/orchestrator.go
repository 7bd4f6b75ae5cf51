// Package chat drives the interactive conversation loop: it binds the
// bounded history to an LLM client and processes one turn at a time.
package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tomgosling57/mcp-client/core/protocol"
	"github.com/tomgosling57/mcp-client/llm"
	"github.com/tomgosling57/mcp-client/session"
)

// exitKeywords end the interactive loop, matched case-insensitively.
var exitKeywords = map[string]struct{}{
	"exit": {},
	"quit": {},
}

// Option configures an Orchestrator after construction.
type Option func(*Orchestrator)

// WithInput overrides the input stream (default os.Stdin).
func WithInput(r io.Reader) Option {
	return func(o *Orchestrator) { o.in = r }
}

// WithOutput overrides the output stream (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(o *Orchestrator) { o.out = w }
}

// Orchestrator processes chat turns against an LLM client, recording both
// sides of the conversation in the history. One turn completes fully before
// the next begins; the history is owned by a single orchestrator and never
// shared.
type Orchestrator struct {
	history session.History
	client  llm.Client
	in      io.Reader
	out     io.Writer
}

// New creates an Orchestrator over the given history and LLM client.
func New(history session.History, client llm.Client, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		history: history,
		client:  client,
		in:      os.Stdin,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ProcessMessage runs a single turn: the user text and the assistant reply
// are both recorded in the history and the reply is returned. The client
// encodes its own failures as reply text, so no error path exists here.
func (o *Orchestrator) ProcessMessage(ctx context.Context, userText string) string {
	o.history.AddMessage(protocol.RoleUser, userText)
	reply := o.client.SendMessage(ctx, o.history.ContextString())
	o.history.AddMessage(protocol.RoleAssistant, reply)
	return reply
}

// Run reads user input line by line until an exit keyword, end of input, or
// context cancellation. Blank input reprompts without consuming a turn.
// Cancellation (typically an interrupt) takes the same exit path as an
// explicit exit keyword.
func (o *Orchestrator) Run(ctx context.Context) error {
	fmt.Fprintln(o.out, "Chat session started. Type 'exit' or 'quit' to end.")

	// Input is read on a separate goroutine so a blocked read cannot hold
	// the loop past a cancelled context.
	lines := make(chan string)
	scanner := bufio.NewScanner(o.in)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(o.out, "You: ")

		select {
		case <-ctx.Done():
			fmt.Fprintln(o.out, "\nExiting chat...")
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(o.out, "\nExiting chat...")
				return scanner.Err()
			}

			input := strings.TrimSpace(line)
			if input == "" {
				continue
			}
			if _, exit := exitKeywords[strings.ToLower(input)]; exit {
				fmt.Fprintln(o.out, "Exiting chat...")
				return nil
			}

			reply := o.ProcessMessage(ctx, input)
			fmt.Fprintf(o.out, "Assistant: %s\n", reply)
		}
	}
}
