package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/cognitia/internal/model"
)

// bindEnv maps COGNITIA_* environment variables onto config keys, so
// COGNITIA_LLM_PROVIDER overrides llm.provider and so on.
func bindEnv() {
	viper.SetEnvPrefix("COGNITIA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// loadConfig builds the effective configuration: defaults, then the
// config file, then environment overrides on top.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if file := viper.ConfigFileUsed(); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", file, err)
		}
	}

	applyEnv(cfg)
	cfg.Output.Verbose = verbose
	return cfg, nil
}

// applyEnv overlays COGNITIA_* variables on the file values, then fills
// provider credentials from the vendors' own variables when still empty.
func applyEnv(cfg *model.Config) {
	overlayString(&cfg.Data.PapersDir, "data.papers_dir")
	overlayString(&cfg.Data.TranscriptsDir, "data.transcripts_dir")
	overlayString(&cfg.Data.ProcessedDir, "data.processed_dir")
	overlayString(&cfg.Index.Path, "index.path")
	overlayString(&cfg.Index.Collection, "index.collection")
	overlayInt(&cfg.Index.TopK, "index.top_k")
	overlayString(&cfg.Embedding.Provider, "embedding.provider")
	overlayString(&cfg.Embedding.Model, "embedding.model")
	overlayString(&cfg.Embedding.APIKey, "embedding.api_key")
	overlayString(&cfg.Embedding.BaseURL, "embedding.base_url")
	overlayString(&cfg.LLM.Provider, "llm.provider")
	overlayString(&cfg.LLM.Model, "llm.model")
	overlayString(&cfg.LLM.APIKey, "llm.api_key")
	overlayString(&cfg.LLM.BaseURL, "llm.base_url")
	overlayString(&cfg.Synthesis.Mode, "synthesis.mode")
	overlayInt(&cfg.Synthesis.MapWorkers, "synthesis.map_workers")
	overlayString(&cfg.Server.Host, "server.host")
	overlayInt(&cfg.Server.Port, "server.port")

	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}

	if cfg.Embedding.APIKey == "" && cfg.Embedding.Provider == "openai" {
		cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if base := os.Getenv("OLLAMA_BASE_URL"); base != "" {
		if cfg.LLM.Provider == "ollama" && cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = base
		}
		if cfg.Embedding.Provider == "ollama" && cfg.Embedding.BaseURL == "" {
			cfg.Embedding.BaseURL = base
		}
	}
}

func overlayString(dst *string, key string) {
	if v := viper.GetString(key); v != "" {
		*dst = v
	}
}

func overlayInt(dst *int, key string) {
	if v := viper.GetInt(key); v != 0 {
		*dst = v
	}
}

// newLogger builds the CLI logger honoring the verbose flag.
func newLogger(cfg *model.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if cfg.Output.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}
