// Package mcp implements the newline-delimited JSON channel used to
// exchange tool calls and results with a tool server over its stdio
// streams. One record per line in each direction; no batching, no
// multiplexing.
package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// ToolCall is an outgoing tool invocation record.
type ToolCall struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// ToolResult is an incoming tool result record. IsError marks a failed
// invocation whose Content describes the failure.
type ToolResult struct {
	ID      string          `json:"id,omitempty"`
	Content json.RawMessage `json:"content"`
	IsError bool            `json:"is_error,omitempty"`
}

// Codec frames tool calls and results over a server's stdio streams.
// Not safe for concurrent use; each server connection gets its own Codec.
type Codec struct {
	w *bufio.Writer
	r *bufio.Reader
}

// NewCodec creates a Codec reading results from r and writing calls to w.
func NewCodec(r io.Reader, w io.Writer) *Codec {
	return &Codec{
		w: bufio.NewWriter(w),
		r: bufio.NewReader(r),
	}
}

// WriteToolCall writes one call as a single JSON line and flushes
// immediately.
func (c *Codec) WriteToolCall(call ToolCall) error {
	data, err := json.Marshal(call)
	if err != nil {
		return fmt.Errorf("encoding tool call %q: %w", call.Name, err)
	}

	if _, err := c.w.Write(data); err != nil {
		return fmt.Errorf("writing tool call %q: %w", call.Name, err)
	}
	if err := c.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing tool call %q: %w", call.Name, err)
	}
	return c.w.Flush()
}

// ReadToolResult reads one line and decodes it as a result record. Returns
// io.EOF once the stream ends cleanly.
func (c *Codec) ReadToolResult() (ToolResult, error) {
	line, err := c.r.ReadBytes('\n')
	if len(line) == 0 && err != nil {
		return ToolResult{}, err
	}

	var result ToolResult
	if err := json.Unmarshal(line, &result); err != nil {
		return ToolResult{}, fmt.Errorf("decoding tool result: %w", err)
	}
	return result, nil
}
