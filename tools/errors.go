package tools

import "errors"

// Sentinel errors for the tools registry and payload validation.
var (
	ErrNotFound      = errors.New("tool not found")
	ErrAlreadyExists = errors.New("tool already registered")
	ErrEmptyName     = errors.New("tool name is empty")
	ErrInvalidInput  = errors.New("invalid tool input")
	ErrInvalidOutput = errors.New("invalid tool output")
)
