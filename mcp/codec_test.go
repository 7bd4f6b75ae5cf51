package mcp_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/tomgosling57/mcp-client/mcp"
)

func TestCodec_WriteToolCall(t *testing.T) {
	var out bytes.Buffer
	c := mcp.NewCodec(strings.NewReader(""), &out)

	call := mcp.ToolCall{
		ID:        "call_1",
		Name:      "read_file",
		Arguments: json.RawMessage(`{"path":"main.go"}`),
	}
	if err := c.WriteToolCall(call); err != nil {
		t.Fatalf("WriteToolCall failed: %v", err)
	}

	written := out.String()
	if !strings.HasSuffix(written, "\n") {
		t.Errorf("record must be newline-terminated, got %q", written)
	}
	if strings.Count(written, "\n") != 1 {
		t.Errorf("exactly one line per record, got %q", written)
	}

	var decoded mcp.ToolCall
	if err := json.Unmarshal([]byte(written), &decoded); err != nil {
		t.Fatalf("written record is not valid JSON: %v", err)
	}
	if decoded.Name != "read_file" || decoded.ID != "call_1" {
		t.Errorf("got %+v, want original call", decoded)
	}
}

func TestCodec_WriteToolCall_FlushesEachRecord(t *testing.T) {
	var out bytes.Buffer
	c := mcp.NewCodec(strings.NewReader(""), &out)

	// The buffered writer must not hold the record back.
	if err := c.WriteToolCall(mcp.ToolCall{Name: "datetime"}); err != nil {
		t.Fatalf("WriteToolCall failed: %v", err)
	}
	if out.Len() == 0 {
		t.Error("record was buffered instead of flushed")
	}
}

func TestCodec_ReadToolResult(t *testing.T) {
	in := `{"id":"call_1","content":{"text":"ok"}}` + "\n" +
		`{"id":"call_2","content":"boom","is_error":true}` + "\n"
	c := mcp.NewCodec(strings.NewReader(in), io.Discard)

	first, err := c.ReadToolResult()
	if err != nil {
		t.Fatalf("first ReadToolResult failed: %v", err)
	}
	if first.ID != "call_1" || first.IsError {
		t.Errorf("got %+v, want call_1 success", first)
	}

	second, err := c.ReadToolResult()
	if err != nil {
		t.Fatalf("second ReadToolResult failed: %v", err)
	}
	if second.ID != "call_2" || !second.IsError {
		t.Errorf("got %+v, want call_2 error result", second)
	}

	if _, err := c.ReadToolResult(); !errors.Is(err, io.EOF) {
		t.Errorf("got %v at end of stream, want io.EOF", err)
	}
}

func TestCodec_ReadToolResult_Malformed(t *testing.T) {
	c := mcp.NewCodec(strings.NewReader("not json\n"), io.Discard)

	if _, err := c.ReadToolResult(); err == nil {
		t.Error("expected decode error for malformed record")
	}
}
