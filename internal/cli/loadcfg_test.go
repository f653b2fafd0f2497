package cli

import (
	"testing"

	"github.com/ppiankov/cognitia/internal/model"
)

func TestApplyEnvOverlaysPrefixedVariables(t *testing.T) {
	bindEnv()
	t.Setenv("COGNITIA_LLM_PROVIDER", "anthropic")
	t.Setenv("COGNITIA_LLM_MODEL", "claude-sonnet-4-5")
	t.Setenv("COGNITIA_SERVER_PORT", "9001")
	t.Setenv("COGNITIA_INDEX_TOP_K", "5")

	cfg := model.DefaultConfig()
	applyEnv(cfg)

	if cfg.LLM.Provider != "anthropic" {
		t.Errorf("LLM.Provider = %q, want anthropic", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "claude-sonnet-4-5" {
		t.Errorf("LLM.Model = %q", cfg.LLM.Model)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("Server.Port = %d, want 9001", cfg.Server.Port)
	}
	if cfg.Index.TopK != 5 {
		t.Errorf("Index.TopK = %d, want 5", cfg.Index.TopK)
	}
}

func TestApplyEnvLeavesDefaultsWhenUnset(t *testing.T) {
	bindEnv()

	cfg := model.DefaultConfig()
	applyEnv(cfg)

	want := model.DefaultConfig()
	if cfg.LLM.Provider != want.LLM.Provider || cfg.Server.Port != want.Server.Port {
		t.Errorf("defaults changed without environment overrides: %+v", cfg.LLM)
	}
}

func TestApplyEnvFillsProviderCredentials(t *testing.T) {
	bindEnv()
	t.Setenv("COGNITIA_LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "vendor-key")

	cfg := model.DefaultConfig()
	applyEnv(cfg)

	if cfg.LLM.APIKey != "vendor-key" {
		t.Errorf("LLM.APIKey = %q, want the vendor variable applied", cfg.LLM.APIKey)
	}
}
