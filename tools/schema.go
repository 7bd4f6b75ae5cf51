// Package tools manages tool schemas and validates tool call payloads
// against them before they cross the tool-call channel.
package tools

// Kind enumerates the JSON value kinds a declared field may hold.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
)

// Field declares one property of a tool's input or output document.
type Field struct {
	Kind        Kind   `json:"kind"`
	Required    bool   `json:"required,omitempty"`
	Description string `json:"description,omitempty"`
}

// Definition declares the shape of a JSON object document as a set of named
// fields. Fields not declared here are allowed and ignored.
type Definition map[string]Field

// Schema describes a tool: its name, purpose, and the shape of its input
// and output documents.
type Schema struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Input       Definition `json:"input,omitempty"`
	Output      Definition `json:"output,omitempty"`
}
