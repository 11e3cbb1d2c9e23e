package model

import "time"

// Config is the complete application configuration.
// It is built once at startup (flags > env > file > defaults) and passed
// by reference into service constructors - nothing reads the environment
// at call time.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	LLM         LLMConfig         `yaml:"llm"`
	Search      SearchConfig      `yaml:"search"`
	Ingest      IngestConfig      `yaml:"ingest"`
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// ServerConfig configures the HTTP API server
type ServerConfig struct {
	Addr           string        `yaml:"addr"`             // Listen address
	BaseURL        string        `yaml:"base_url"`         // Base URL for internal route-to-route calls
	RequestTimeout time.Duration `yaml:"request_timeout"`  // Per-request execution ceiling
}

// LLMConfig configures the upstream completion provider
type LLMConfig struct {
	Provider string `yaml:"provider"` // groq, anthropic, ollama
	Model    string `yaml:"model"`    // Model identifier
	APIKey   string `yaml:"api_key"`  // API key (prefer env)
	BaseURL  string `yaml:"base_url"` // Custom endpoint override
	Timeout  int    `yaml:"timeout"`  // Seconds
}

// SearchConfig configures the upstream web-search provider and the URL crawler
type SearchConfig struct {
	APIKey     string  `yaml:"api_key"`     // Search API key
	BaseURL    string  `yaml:"base_url"`    // Search endpoint override
	MaxResults int     `yaml:"max_results"` // Max sources per claim
	RatePerSec float64 `yaml:"rate_per_sec"` // Per-domain crawl rate
	RateBurst  int     `yaml:"rate_burst"`
}

// IngestConfig configures document ingestion
type IngestConfig struct {
	MaxFileBytes int64 `yaml:"max_file_bytes"` // Authoritative upload size limit
	PreviewChars int   `yaml:"preview_chars"`  // Extracted-text preview length
}

// HTTPConfig configures outbound HTTP behavior
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy"`
}

// CacheConfig configures the layered search/crawl cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`        // Disk cache directory
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig bounds the concurrent paths
type ConcurrencyConfig struct {
	ValidationWorkers int `yaml:"validation_workers"` // Source URL HEAD checks
	BatchWorkers      int `yaml:"batch_workers"`      // Batch document checks
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			BaseURL:        "http://localhost:8080",
			RequestTimeout: 60 * time.Second,
		},
		LLM: LLMConfig{
			Provider: "groq",
			Model:    "llama-3.1-70b-versatile",
			Timeout:  30,
		},
		Search: SearchConfig{
			BaseURL:    "https://api.exa.ai",
			MaxResults: 5,
			RatePerSec: 1,
			RateBurst:  3,
		},
		Ingest: IngestConfig{
			MaxFileBytes: 5 * 1024 * 1024,
			PreviewChars: 1000,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "FactCheck/0.1 (+https://github.com/Gbollysearch7/exa-hallucination-detector)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			ValidationWorkers: 10,
			BatchWorkers:      4,
		},
	}
}
