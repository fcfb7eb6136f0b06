package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "fitcoach" {
		t.Fatalf("name = %q", cfg.Name)
	}
	if !cfg.Engine.ToolFirst {
		t.Fatal("tool_first should default to true")
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
llm:
  model: test-model
  timeout: 5s
store:
  base_url: http://records.local
engine:
  tool_first: false
profile:
  name: An
  weight_kg: 62.5
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Model != "test-model" {
		t.Fatalf("model = %q", cfg.LLM.Model)
	}
	if cfg.LLMTimeout() != 5*time.Second {
		t.Fatalf("timeout = %v", cfg.LLMTimeout())
	}
	if cfg.Store.BaseURL != "http://records.local" {
		t.Fatalf("store url = %q", cfg.Store.BaseURL)
	}
	if cfg.Engine.ToolFirst {
		t.Fatal("tool_first should be false")
	}
	if cfg.Profile.WeightKg != 62.5 {
		t.Fatalf("weight = %v", cfg.Profile.WeightKg)
	}
}

func TestEnvOverridesWin(t *testing.T) {
	t.Setenv("FITCOACH_API_KEY", "env-key")
	t.Setenv("FITCOACH_STORE_URL", "http://env.store")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.APIKey != "env-key" {
		t.Fatalf("api key = %q", cfg.LLM.APIKey)
	}
	if cfg.Store.BaseURL != "http://env.store" {
		t.Fatalf("store url = %q", cfg.Store.BaseURL)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := DefaultConfig()
	cfg.Profile.Name = "Binh"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Profile.Name != "Binh" {
		t.Fatalf("profile name = %q", loaded.Profile.Name)
	}
}

func TestBadTimeoutFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.Timeout = "soon"
	if cfg.StoreTimeout() != 10*time.Second {
		t.Fatalf("timeout = %v", cfg.StoreTimeout())
	}
}
