package chat

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/tomgosling57/mcp-client/llm"
	"github.com/tomgosling57/mcp-client/session"
)

// Config holds initialization parameters for the chat session. Each section
// delegates to that subsystem's config-driven constructor.
type Config struct {
	LLM     llm.Config     `json:"llm"`
	History session.Config `json:"history"`
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		LLM:     llm.DefaultConfig(),
		History: session.DefaultConfig(),
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.LLM.Merge(&source.LLM)
	c.History.Merge(&source.History)
}

// LoadConfig reads a JSON config file, merges it with defaults, and returns
// the resulting Config. Comments and trailing commas are tolerated.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
