// Package logging configures the process-wide logger: a rotating log file
// mirrored to stderr, with optional JSON formatting. This is the only
// process-wide state in the program; everything else takes its logger or
// sink as a dependency.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultDir         = "logs"
	defaultFilename    = "chatbot.log"
	defaultLLMFilename = "llm.log"
	defaultMaxSizeMB   = 1
	defaultMaxBackups  = 5
)

// Options holds logging configuration.
type Options struct {
	// Dir is the log directory, created if missing.
	Dir string `json:"dir,omitempty"`
	// Level is the minimum level emitted.
	Level slog.Level `json:"level,omitempty"`
	// JSON switches the handler to JSON output.
	JSON bool `json:"json,omitempty"`
	// MaxSizeMB is the file size threshold for rotation.
	MaxSizeMB int `json:"max_size_mb,omitempty"`
	// MaxBackups is the number of rotated files kept.
	MaxBackups int `json:"max_backups,omitempty"`
	// LLMLog routes LLM interaction records to a dedicated rotating
	// llm.log file instead of the main log.
	LLMLog bool `json:"llm_log,omitempty"`
}

func (o *Options) defaults() {
	if o.Dir == "" {
		o.Dir = defaultDir
	}
	if o.MaxSizeMB <= 0 {
		o.MaxSizeMB = defaultMaxSizeMB
	}
	if o.MaxBackups <= 0 {
		o.MaxBackups = defaultMaxBackups
	}
}

// llmLogger is the dedicated LLM interaction logger, set by Configure when
// Options.LLMLog is enabled.
var llmLogger *slog.Logger

// Configure builds the process logger and installs it as the slog default.
// Log lines go to a rotating file under Dir and to stderr. With LLMLog
// enabled, a second rotating llm.log sink is created for the logger
// returned by LLM.
func Configure(opts Options) (*slog.Logger, error) {
	opts.defaults()

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	logger := slog.New(newHandler(opts, defaultFilename))
	slog.SetDefault(logger)

	llmLogger = nil
	if opts.LLMLog {
		llmLogger = slog.New(newHandler(opts, defaultLLMFilename))
	}

	return logger, nil
}

// LLM returns the logger for LLM interaction records: the dedicated llm.log
// logger when one was configured, the process default otherwise.
func LLM() *slog.Logger {
	if llmLogger != nil {
		return llmLogger
	}
	return slog.Default()
}

func newHandler(opts Options, filename string) slog.Handler {
	file := &lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, filename),
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}

	out := io.MultiWriter(file, os.Stderr)
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	if opts.JSON {
		return slog.NewJSONHandler(out, handlerOpts)
	}
	return slog.NewTextHandler(out, handlerOpts)
}
