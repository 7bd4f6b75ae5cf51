package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	apiKeyEnv      = "GEMINI_API_KEY"

	defaultRequestTimeout = 60 * time.Second
)

// ErrMissingAPIKey is returned by NewGemini when no API key is available.
var ErrMissingAPIKey = errors.New(apiKeyEnv + " environment variable not set")

// GeminiOption configures a Gemini client after config-driven initialization.
type GeminiOption func(*Gemini)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) GeminiOption {
	return func(g *Gemini) { g.http = client }
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) GeminiOption {
	return func(g *Gemini) { g.logger = logger }
}

// Gemini is a Client backed by the Gemini generateContent REST endpoint.
type Gemini struct {
	cfg    Config
	apiKey string
	http   *http.Client
	logger *slog.Logger
}

// NewGemini creates a Gemini client from configuration. The API key is read
// from the GEMINI_API_KEY environment variable; a missing key is a
// configuration error.
func NewGemini(cfg *Config, opts ...GeminiOption) (*Gemini, error) {
	merged := DefaultConfig()
	merged.Merge(cfg)

	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	g := &Gemini{
		cfg:    merged,
		apiKey: apiKey,
		http:   &http.Client{Timeout: defaultRequestTimeout},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generateRequest struct {
	Contents          []geminiContent   `json:"contents"`
	SystemInstruction *geminiContent    `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// SendMessage sends the context string to the model and returns the reply.
// Faults never escape as errors: transport failures, non-2xx statuses, and
// malformed response bodies all come back as descriptive reply text.
func (g *Gemini) SendMessage(ctx context.Context, message string) string {
	g.logger.Debug("llm request", "model", g.cfg.Model, "chars", len(message))

	body, err := json.Marshal(g.buildRequest(message))
	if err != nil {
		g.logger.Error("llm request encoding failed", "error", err)
		return fmt.Sprintf("Error: %v", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL(), g.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		g.logger.Error("llm request creation failed", "error", err)
		return fmt.Sprintf("Error: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.http.Do(req)
	if err != nil {
		g.logger.Error("llm request failed", "error", err)
		return fmt.Sprintf("Error: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		g.logger.Error("llm response read failed", "error", err)
		return fmt.Sprintf("Error: %v", err)
	}

	var parsed generateResponse
	if jsonErr := json.Unmarshal(data, &parsed); jsonErr != nil && resp.StatusCode == http.StatusOK {
		g.logger.Error("llm response decoding failed", "error", jsonErr)
		return "Invalid response structure"
	}

	if resp.StatusCode != http.StatusOK {
		detail := resp.Status
		if parsed.Error != nil && parsed.Error.Message != "" {
			detail = parsed.Error.Message
		}
		g.logger.Error("llm api error", "status", resp.StatusCode, "detail", detail)
		return fmt.Sprintf("API Error: %s", detail)
	}

	reply := extractText(&parsed)
	if reply == "" {
		g.logger.Error("llm returned no text", "model", g.cfg.Model)
		return "No response received"
	}

	g.logger.Debug("llm response", "model", g.cfg.Model, "chars", len(reply))
	return reply
}

func (g *Gemini) buildRequest(message string) generateRequest {
	req := generateRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: message}}},
		},
	}
	if g.cfg.SystemInstruction != "" {
		req.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: g.cfg.SystemInstruction}},
		}
	}
	if g.cfg.MaxOutputTokens > 0 {
		req.GenerationConfig = &generationConfig{MaxOutputTokens: g.cfg.MaxOutputTokens}
	}
	return req
}

func (g *Gemini) baseURL() string {
	if g.cfg.BaseURL != "" {
		return g.cfg.BaseURL
	}
	return defaultBaseURL
}

func extractText(resp *generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		text += part.Text
	}
	return text
}
