package launcher_test

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/tomgosling57/mcp-client/launcher"
)

// captureHandler records emitted log lines per level.
type captureHandler struct {
	mu      sync.Mutex
	records []capturedRecord
}

type capturedRecord struct {
	level   slog.Level
	message string
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, capturedRecord{level: r.Level, message: r.Message})
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

func (h *captureHandler) messages(level slog.Level) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for _, r := range h.records {
		if r.level == level {
			out = append(out, r.message)
		}
	}
	return out
}

func (h *captureHandler) contains(level slog.Level, message string) bool {
	for _, m := range h.messages(level) {
		if m == message {
			return true
		}
	}
	return false
}

func newCaptureSupervisor(workspace string) (*launcher.Supervisor, *captureHandler) {
	h := &captureHandler{}
	return launcher.New(workspace, launcher.WithLogger(slog.New(h))), h
}

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test spawns unix shell utilities")
	}
}

// eventually polls cond until it holds or the deadline passes.
func eventually(t *testing.T, cond func() bool, message string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(message)
}

func TestLoadServers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "servers.json")
	content := `{
		// local filesystem tool server
		"servers": [
			{
				"name": "files",
				"type": "stdio",
				"command": ["python", "-m", "files_server"],
				"args": ["--root", "${workspaceFolder}/data"],
			},
		],
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing servers file: %v", err)
	}

	s, _ := newCaptureSupervisor("/ws")
	servers, err := s.LoadServers(path)
	if err != nil {
		t.Fatalf("LoadServers failed: %v", err)
	}

	if len(servers) != 1 {
		t.Fatalf("got %d servers, want 1", len(servers))
	}
	got := servers[0]
	if got.Name != "files" || got.Type != launcher.TypeStdio {
		t.Errorf("got server %+v, want files/stdio", got)
	}
	if len(got.Command) != 3 || len(got.Args) != 2 {
		t.Errorf("got command %q args %q", got.Command, got.Args)
	}
}

func TestLoadServers_MissingFile(t *testing.T) {
	s, h := newCaptureSupervisor("/ws")

	_, err := s.LoadServers(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v, want wrapped fs.ErrNotExist", err)
	}
	if len(h.messages(slog.LevelError)) == 0 {
		t.Error("missing file should be logged before being returned")
	}
}

func TestLoadServers_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "servers.json")
	if err := os.WriteFile(path, []byte(`{"servers": [}`), 0o600); err != nil {
		t.Fatalf("writing servers file: %v", err)
	}

	s, h := newCaptureSupervisor("/ws")
	if _, err := s.LoadServers(path); err == nil {
		t.Error("expected parse error for malformed document")
	}
	if len(h.messages(slog.LevelError)) == 0 {
		t.Error("malformed document should be logged before being returned")
	}
}

func TestLaunch_MissingCommand(t *testing.T) {
	s, _ := newCaptureSupervisor("/ws")

	_, err := s.Launch(launcher.ServerConfig{Name: "broken", Type: launcher.TypeStdio, Args: []string{}})
	if !errors.Is(err, launcher.ErrMissingCommand) {
		t.Errorf("got %v, want ErrMissingCommand", err)
	}
}

func TestLaunch_MissingArgs(t *testing.T) {
	s, _ := newCaptureSupervisor("/ws")

	_, err := s.Launch(launcher.ServerConfig{Name: "broken", Type: launcher.TypeStdio, Command: []string{"echo"}})
	if !errors.Is(err, launcher.ErrMissingArgs) {
		t.Errorf("got %v, want ErrMissingArgs", err)
	}
}

func TestLaunch_SpawnError(t *testing.T) {
	s, h := newCaptureSupervisor("/ws")

	_, err := s.Launch(launcher.ServerConfig{
		Name:    "ghost",
		Type:    launcher.TypeStdio,
		Command: []string{"definitely-not-a-real-binary-4521"},
		Args:    []string{},
	})
	if err == nil {
		t.Fatal("expected spawn error for missing executable")
	}
	if !h.contains(slog.LevelError, "failed to launch server") {
		t.Error("spawn error should be logged before being returned")
	}
}

func TestLaunch_ForwardsStdoutWithResolvedWorkspace(t *testing.T) {
	requireUnix(t)
	s, h := newCaptureSupervisor("/srv/ws")

	p, err := s.Launch(launcher.ServerConfig{
		Name:    "echoer",
		Type:    launcher.TypeStdio,
		Command: []string{"echo"},
		Args:    []string{"root is ${workspaceFolder}/data"},
	})
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	defer p.Stop()

	eventually(t, func() bool {
		return h.contains(slog.LevelInfo, "root is /srv/ws/data")
	}, "stdout line with resolved workspace was not forwarded to the info sink")

	p.Stop()
	if err := p.Wait(); err != nil {
		t.Errorf("Wait failed: %v", err)
	}
}

func TestLaunch_ForwardsStderrToErrorSink(t *testing.T) {
	requireUnix(t)
	s, h := newCaptureSupervisor("/ws")

	p, err := s.Launch(launcher.ServerConfig{
		Name:    "complainer",
		Type:    launcher.TypeStdio,
		Command: []string{"sh", "-c"},
		Args:    []string{"echo oops >&2"},
	})
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	defer p.Stop()

	eventually(t, func() bool {
		return h.contains(slog.LevelError, "oops")
	}, "stderr line was not forwarded to the error sink")

	p.Stop()
	if err := p.Wait(); err != nil {
		t.Errorf("Wait failed: %v", err)
	}
}

func TestProcess_StopIdempotent(t *testing.T) {
	requireUnix(t)
	s, _ := newCaptureSupervisor("/ws")

	p, err := s.Launch(launcher.ServerConfig{
		Name:    "sleeper",
		Type:    launcher.TypeStdio,
		Command: []string{"sleep"},
		Args:    []string{"30"},
	})
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}

	// Stop only halts the forwarders; the child must be signalled
	// separately.
	p.Stop()
	p.Stop()

	if err := p.Signal(os.Kill); err != nil {
		t.Fatalf("Signal failed: %v", err)
	}
	_ = p.Wait()
}
