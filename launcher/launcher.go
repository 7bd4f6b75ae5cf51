// Package launcher starts tool-provider subprocesses from server
// configuration and drains their output into the log. Child output must be
// drained continuously — pipes have bounded buffers and an unread pipe can
// deadlock the child — so each stream gets its own forwarding goroutine.
package launcher

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
)

// Option configures a Supervisor after construction.
type Option func(*Supervisor)

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Supervisor) { s.logger = logger }
}

// Supervisor launches tool-provider subprocesses. Each Launch call is
// independent and returns its own handle; the supervisor keeps no registry
// of running processes, applies no restart policy, and runs no health
// checks.
type Supervisor struct {
	workspacePath string
	logger        *slog.Logger
}

// New creates a Supervisor that resolves the workspace placeholder to
// workspacePath.
func New(workspacePath string, opts ...Option) *Supervisor {
	s := &Supervisor{
		workspacePath: workspacePath,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadServers reads and parses a server configuration file. Comments and
// trailing commas are tolerated. A missing file and a malformed document
// are both logged and returned to the caller, never recovered internally.
func (s *Supervisor) LoadServers(path string) ([]ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Error("server config not readable", "path", path, "error", err)
		return nil, fmt.Errorf("reading server config: %w", err)
	}

	var file serversFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
		s.logger.Error("server config malformed", "path", path, "error", err)
		return nil, fmt.Errorf("parsing server config %s: %w", path, err)
	}

	return file.Servers, nil
}

// Launch validates cfg, resolves the workspace placeholder in every command
// and argument element, and spawns the server with both output streams
// drained by forwarders (stdout to the info sink, stderr to the error
// sink). Configuration and spawn failures are logged and returned without
// a retry; a configuration failure performs no spawn.
func (s *Supervisor) Launch(cfg ServerConfig) (*Process, error) {
	if len(cfg.Command) == 0 {
		s.logger.Error("invalid server config", "server", cfg.Name, "error", ErrMissingCommand)
		return nil, fmt.Errorf("server %q: %w", cfg.Name, ErrMissingCommand)
	}
	if cfg.Args == nil {
		s.logger.Error("invalid server config", "server", cfg.Name, "error", ErrMissingArgs)
		return nil, fmt.Errorf("server %q: %w", cfg.Name, ErrMissingArgs)
	}

	invocation := slices.Concat(s.resolveWorkspace(cfg.Command), s.resolveWorkspace(cfg.Args))

	cmd := exec.Command(invocation[0], invocation[1:]...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("server %q: creating stdout pipe: %w", cfg.Name, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		stdout.Close()
		return nil, fmt.Errorf("server %q: creating stderr pipe: %w", cfg.Name, err)
	}

	if err := cmd.Start(); err != nil {
		s.logger.Error("failed to launch server", "server", cfg.Name, "error", err)
		return nil, fmt.Errorf("starting server %q: %w", cfg.Name, err)
	}

	logger := s.logger.With("server", cfg.Name)
	p := &Process{
		name: cfg.Name,
		cmd:  cmd,
		stdout: NewStreamForwarder(stdout, func(line string) {
			logger.Info(line)
		}),
		stderr: NewStreamForwarder(stderr, func(line string) {
			logger.Error(line)
		}),
	}

	s.logger.Info("launched server", "server", cfg.Name, "pid", p.Pid())
	return p, nil
}

// resolveWorkspace replaces the workspace placeholder in every element,
// including mid-string occurrences.
func (s *Supervisor) resolveWorkspace(parts []string) []string {
	resolved := make([]string, len(parts))
	for i, part := range parts {
		resolved[i] = strings.ReplaceAll(part, WorkspacePlaceholder, s.workspacePath)
	}
	return resolved
}

// Process is a launched tool server: the child process handle plus the two
// forwarders draining its output streams. Owned by the caller that launched
// it.
type Process struct {
	name   string
	cmd    *exec.Cmd
	stdout *StreamForwarder
	stderr *StreamForwarder
}

// Name returns the server name from the launch configuration.
func (p *Process) Name() string {
	return p.name
}

// Pid returns the child's process ID.
func (p *Process) Pid() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Signal delivers sig to the child.
func (p *Process) Signal(sig os.Signal) error {
	if p.cmd.Process == nil {
		return fmt.Errorf("server %q: process not started", p.name)
	}
	return p.cmd.Process.Signal(sig)
}

// Wait blocks until the child exits and its exit status is collected.
func (p *Process) Wait() error {
	return p.cmd.Wait()
}

// Stop halts both output forwarders, closing their streams to unblock any
// pending reads. It does not signal the child. Idempotent.
func (p *Process) Stop() {
	p.stdout.Stop()
	p.stderr.Stop()
}
