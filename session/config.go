package session

// DefaultMaxChars is the history ceiling used when no limit is configured.
const DefaultMaxChars = 2000

// Config holds history initialization parameters.
type Config struct {
	// MaxChars is the maximum total content length retained in the history.
	MaxChars int `json:"max_chars,omitempty"`
}

// DefaultConfig returns the default history configuration.
func DefaultConfig() Config {
	return Config{MaxChars: DefaultMaxChars}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.MaxChars > 0 {
		c.MaxChars = source.MaxChars
	}
}

// New creates a History from configuration.
func New(cfg *Config) (History, error) {
	maxChars := cfg.MaxChars
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return NewBoundedHistory(maxChars), nil
}
