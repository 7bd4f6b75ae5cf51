package llm

const (
	defaultModel           = "gemini-2.5-flash"
	defaultSystemPrompt    = "You are a helpful assistant."
	defaultMaxOutputTokens = 1024
)

// Config holds LLM client initialization parameters.
type Config struct {
	// Model is the backend model identifier.
	Model string `json:"model,omitempty"`
	// SystemInstruction is the system prompt supplied with every request.
	SystemInstruction string `json:"system_instruction,omitempty"`
	// MaxOutputTokens caps the generated reply length.
	MaxOutputTokens int `json:"max_output_tokens,omitempty"`
	// BaseURL overrides the API endpoint. Used by tests.
	BaseURL string `json:"base_url,omitempty"`
}

// DefaultConfig returns the default LLM configuration.
func DefaultConfig() Config {
	return Config{
		Model:             defaultModel,
		SystemInstruction: defaultSystemPrompt,
		MaxOutputTokens:   defaultMaxOutputTokens,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Model != "" {
		c.Model = source.Model
	}
	if source.SystemInstruction != "" {
		c.SystemInstruction = source.SystemInstruction
	}
	if source.MaxOutputTokens > 0 {
		c.MaxOutputTokens = source.MaxOutputTokens
	}
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}
}
