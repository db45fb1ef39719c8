package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) (path string) {
	t.Helper()
	path = filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(path, []byte(content), 0600)
	if err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"gemini_api_key": "file-key",
		"models": {"generation": "gemini-2.5-pro"},
		"defaults": {"output_dir": "/tmp/out"}
	}`)
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.GeminiAPIKey != "file-key" {
		t.Errorf("Expected file-key, got %q", cfg.GeminiAPIKey)
	}

	if cfg.GetGenerationModel() != "gemini-2.5-pro" {
		t.Errorf("Unexpected model: %q", cfg.GetGenerationModel())
	}

	if cfg.Defaults.OutputDir != "/tmp/out" {
		t.Errorf("Unexpected output dir: %q", cfg.Defaults.OutputDir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, `{"gemini_api_key": "file-key", "defaults": {}}`)
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.GeminiAPIKey != "env-key" {
		t.Errorf("Expected env override, got %q", cfg.GeminiAPIKey)
	}

	if cfg.Defaults.OutputDir != "./drafts" {
		t.Errorf("Expected default output dir, got %q", cfg.Defaults.OutputDir)
	}
}

func TestLoadMissingFileWithEnvKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-only-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Expected env-only setup to load, got: %v", err)
	}

	if cfg.GeminiAPIKey != "env-only-key" {
		t.Errorf("Expected env key, got %q", cfg.GeminiAPIKey)
	}
}

func TestLoadMissingFileWithoutEnvKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("Expected error for missing config")
	}

	if !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLoadMissingAPIKey(t *testing.T) {
	path := writeConfig(t, `{"defaults": {"output_dir": "./drafts"}}`)
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected validation error without an API key")
	}

	if !strings.Contains(err.Error(), "gemini_api_key is required") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected parse error")
	}

	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestGetGenerationModelDefault(t *testing.T) {
	cfg := Config{}
	if cfg.GetGenerationModel() != "gemini-2.5-flash" {
		t.Errorf("Unexpected default model: %q", cfg.GetGenerationModel())
	}
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read created config: %v", err)
	}

	if !strings.Contains(string(data), "your-api-key") {
		t.Error("Expected placeholder API key in default config")
	}

	err = InitConfig(path)
	if err == nil {
		t.Fatal("Expected error when config already exists")
	}
}
