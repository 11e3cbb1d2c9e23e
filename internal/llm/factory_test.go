package llm

import (
	"strings"
	"testing"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		wantName string
		wantErr  bool
	}{
		{
			name:     "groq",
			config:   Config{Provider: "groq", APIKey: "test-key"},
			wantName: "groq",
		},
		{
			name:     "openai alias",
			config:   Config{Provider: "openai", APIKey: "test-key"},
			wantName: "groq",
		},
		{
			name:     "anthropic",
			config:   Config{Provider: "anthropic", APIKey: "test-key"},
			wantName: "anthropic",
		},
		{
			name:     "claude alias",
			config:   Config{Provider: "Claude", APIKey: "test-key"},
			wantName: "anthropic",
		},
		{
			name:     "ollama needs no key",
			config:   Config{Provider: "ollama"},
			wantName: "ollama",
		},
		{
			name:    "unknown provider",
			config:  Config{Provider: "bard"},
			wantErr: true,
		},
		{
			name:    "groq without key",
			config:  Config{Provider: "groq"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider failed: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Expected provider %q, got %q", tt.wantName, p.Name())
			}
		})
	}
}

func TestNewProvider_UnknownErrorMessage(t *testing.T) {
	_, err := NewProvider(Config{Provider: "bard"})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), "unknown LLM provider") {
		t.Errorf("Unexpected error message: %v", err)
	}
}
