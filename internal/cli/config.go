package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/model"
)

// loadConfig builds the runtime configuration: defaults, then config
// file and FACTCHECK_* environment overrides, then API keys from the
// conventional env variables. Secrets never come from the config file
// alone; GROQ_API_KEY / ANTHROPIC_API_KEY / EXA_API_KEY take effect
// whenever the corresponding key is unset.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if v := viper.GetString("server.addr"); v != "" {
		cfg.Server.Addr = v
	}
	if v := viper.GetString("server.base_url"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := viper.GetDuration("server.request_timeout"); v > 0 {
		cfg.Server.RequestTimeout = v
	}
	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetString("llm.base_url"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := viper.GetString("search.base_url"); v != "" {
		cfg.Search.BaseURL = v
	}
	if v := viper.GetInt("search.max_results"); v > 0 {
		cfg.Search.MaxResults = v
	}
	if v := viper.GetInt64("ingest.max_file_bytes"); v > 0 {
		cfg.Ingest.MaxFileBytes = v
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetDuration("http.timeout"); v > 0 {
		cfg.HTTP.Timeout = v
	}

	// Get API keys from environment
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		default:
			cfg.LLM.APIKey = os.Getenv("GROQ_API_KEY")
		}
	}
	if cfg.Search.APIKey == "" {
		cfg.Search.APIKey = os.Getenv("EXA_API_KEY")
	}

	return cfg, nil
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

// configShowCmd renders the effective configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Redact secrets before rendering
		if cfg.LLM.APIKey != "" {
			cfg.LLM.APIKey = "***"
		}
		if cfg.Search.APIKey != "" {
			cfg.Search.APIKey = "***"
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("render config: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

// configInitCmd writes a starter config file
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file to ~/.factcheck/config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("find home directory: %w", err)
		}

		dir := filepath.Join(home, ".factcheck")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}

		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}

		out, err := yaml.Marshal(model.DefaultConfig())
		if err != nil {
			return fmt.Errorf("render config: %w", err)
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}

		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
