package chat_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tomgosling57/mcp-client/chat"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfig_MergesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		// history stays small for this profile
		"history": {"max_chars": 500},
	}`)

	cfg, err := chat.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.History.MaxChars != 500 {
		t.Errorf("got MaxChars %d, want 500", cfg.History.MaxChars)
	}
	if cfg.LLM.Model != "gemini-2.5-flash" {
		t.Errorf("got model %q, want default", cfg.LLM.Model)
	}
	if cfg.LLM.MaxOutputTokens != 1024 {
		t.Errorf("got MaxOutputTokens %d, want default 1024", cfg.LLM.MaxOutputTokens)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := chat.LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := writeConfig(t, `{"llm": [}`)
	if _, err := chat.LoadConfig(path); err == nil {
		t.Error("expected parse error for malformed config")
	}
}
