package llm

import (
	"context"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/model"
)

// Provider defines the interface for upstream completion providers.
// Extraction and verification both speak through it with a system+user
// prompt pair and expect the raw text back - JSON parsing belongs to
// the calling service, not the transport.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a system+user prompt pair and returns the raw model output
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest is the input for a single completion call
type CompletionRequest struct {
	// System is the system prompt
	System string

	// User is the user prompt
	User string

	// Model overrides the configured model for this call (optional)
	Model string

	// Temperature for the completion. Extraction and verification pin this to 0.
	Temperature float32

	// MaxTokens limits the response length (0 = provider default)
	MaxTokens int
}

// CompletionResponse is the raw model output
type CompletionResponse struct {
	// Text is the trimmed completion text
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds provider configuration
type Config struct {
	// Provider name: "groq", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for Groq/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, test servers)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider: "groq",
		Model:    "llama-3.1-70b-versatile",
		Timeout:  30,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig, hc model.HTTPConfig) Config {
	return Config{
		Provider:   mc.Provider,
		Model:      mc.Model,
		APIKey:     mc.APIKey,
		BaseURL:    mc.BaseURL,
		Timeout:    mc.Timeout,
		HTTPProxy:  hc.HTTPProxy,
		HTTPSProxy: hc.HTTPSProxy,
		NoProxy:    hc.NoProxy,
	}
}
