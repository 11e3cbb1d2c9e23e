package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/fault"
)

// groqEndpoint is Groq's OpenAI-compatible chat-completions base URL
const groqEndpoint = "https://api.groq.com/openai/v1"

// GroqProvider implements the Provider interface against Groq's
// OpenAI-compatible API via the go-openai client. Pointing BaseURL at
// api.openai.com (or any compatible server) works the same way.
type GroqProvider struct {
	client *openai.Client
	config Config
}

// NewGroqProvider creates a new Groq provider
func NewGroqProvider(config Config) (*GroqProvider, error) {
	if config.APIKey == "" {
		return nil, fault.New(fault.KindMissingCredential, "missing Groq API key")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	} else {
		clientConfig.BaseURL = groqEndpoint
	}

	return &GroqProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *GroqProvider) Name() string {
	return "groq"
}

// IsAvailable checks if the provider is properly configured
func (p *GroqProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Groq API check failed: %v\n", err)
		return false
	}
	return true
}

// Complete sends a single chat completion request and returns the raw text
func (p *GroqProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.config.Model
	}
	if model == "" {
		model = "llama-3.1-70b-versatile"
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// go-openai marks Temperature omitempty, so a literal 0 would be
	// dropped from the request body and the server would fall back to its
	// default. Substitute the smallest non-zero float so temperature 0
	// actually reaches the wire.
	temperature := req.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: temperature,
		MaxTokens:   req.MaxTokens,
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, fault.Wrap(fault.KindUpstreamUnavailable,
				fmt.Sprintf("Groq error: %d", apiErr.HTTPStatusCode), err)
		}
		return nil, fault.Wrap(fault.KindUpstreamUnavailable, "Groq request failed", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fault.New(fault.KindUpstreamParse, "Groq response missing content")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, fault.New(fault.KindUpstreamParse, "Groq response missing content")
	}

	return &CompletionResponse{
		Text:       text,
		Model:      resp.Model,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}
