package config

import (
	"strings"
	"testing"
)

// fakeBackend is an in-memory ConfigBackend for tests.
type fakeBackend struct {
	strings map[string]string
	ints    map[string]int
}

func (f *fakeBackend) GetString(key string) (string, bool, error) {
	v, ok := f.strings[key]
	return v, ok, nil
}

func (f *fakeBackend) GetInt(key string) (int, bool, error) {
	v, ok := f.ints[key]
	return v, ok, nil
}

func (f *fakeBackend) SetString(key, val string) error {
	f.strings[key] = val
	return nil
}

func (f *fakeBackend) SetInt(key string, val int) error {
	f.ints[key] = val
	return nil
}

func (f *fakeBackend) Delete(key string) error {
	delete(f.strings, key)
	delete(f.ints, key)
	return nil
}

func emptyBackend() *fakeBackend {
	return &fakeBackend{strings: map[string]string{}, ints: map[string]int{}}
}

func clearEnvOverrides(t *testing.T) {
	t.Helper()
	for _, s := range specs {
		if s.env != "" {
			t.Setenv(s.env, "")
		}
	}
}

func TestDefaults(t *testing.T) {
	clearEnvOverrides(t)

	cfg, err := loadWith(emptyBackend())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 4000 {
		t.Errorf("Server.Port = %d, want 4000", cfg.Server.Port)
	}
	if cfg.Server.MCPPort != 4001 {
		t.Errorf("Server.MCPPort = %d, want 4001", cfg.Server.MCPPort)
	}
	if cfg.Server.APIToken != "" {
		t.Errorf("Server.APIToken = %q, want empty", cfg.Server.APIToken)
	}
	if cfg.Engine.Backend != "bedrock" {
		t.Errorf("Engine.Backend = %q, want bedrock", cfg.Engine.Backend)
	}
	if cfg.Engine.BedrockModel != "anthropic.claude-3-sonnet-20240229-v1:0" {
		t.Errorf("Engine.BedrockModel = %q", cfg.Engine.BedrockModel)
	}
	if cfg.Engine.AWSRegion != "us-east-1" {
		t.Errorf("Engine.AWSRegion = %q, want us-east-1", cfg.Engine.AWSRegion)
	}
	if cfg.Engine.OllamaBaseURL != "http://localhost:11434" {
		t.Errorf("Engine.OllamaBaseURL = %q", cfg.Engine.OllamaBaseURL)
	}
	if cfg.Engine.OllamaModel != "mistral-nemo" {
		t.Errorf("Engine.OllamaModel = %q, want mistral-nemo", cfg.Engine.OllamaModel)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("Storage.Backend = %q, want sqlite", cfg.Storage.Backend)
	}
	if cfg.Storage.MemoryCap != 128 {
		t.Errorf("Storage.MemoryCap = %d, want 128", cfg.Storage.MemoryCap)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestBackendValues(t *testing.T) {
	clearEnvOverrides(t)

	b := emptyBackend()
	b.ints["server.port"] = 5000
	b.ints["server.mcp_port"] = 5001
	b.strings["engine.backend"] = "ollama"
	b.strings["engine.ollama_model"] = "phi3.5"
	b.strings["storage.backend"] = "memory"
	b.ints["storage.memory_cap"] = 16
	b.strings["log.level"] = "debug"

	cfg, err := loadWith(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Server.MCPPort != 5001 {
		t.Errorf("Server.MCPPort = %d, want 5001", cfg.Server.MCPPort)
	}
	if cfg.Engine.Backend != "ollama" {
		t.Errorf("Engine.Backend = %q, want ollama", cfg.Engine.Backend)
	}
	if cfg.Engine.OllamaModel != "phi3.5" {
		t.Errorf("Engine.OllamaModel = %q, want phi3.5", cfg.Engine.OllamaModel)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("Storage.Backend = %q, want memory", cfg.Storage.Backend)
	}
	if cfg.Storage.MemoryCap != 16 {
		t.Errorf("Storage.MemoryCap = %d, want 16", cfg.Storage.MemoryCap)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestEnvOverride(t *testing.T) {
	clearEnvOverrides(t)

	b := emptyBackend()
	b.ints["server.port"] = 5000
	b.strings["engine.backend"] = "ollama"

	t.Setenv("DOCLENS_SERVER_PORT", "6000")
	t.Setenv("DOCLENS_ENGINE_BACKEND", "bedrock")
	t.Setenv("DOCLENS_API_TOKEN", "env-secret")

	cfg, err := loadWith(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 6000 {
		t.Errorf("Server.Port = %d, want env override 6000", cfg.Server.Port)
	}
	if cfg.Engine.Backend != "bedrock" {
		t.Errorf("Engine.Backend = %q, want env override bedrock", cfg.Engine.Backend)
	}
	if cfg.Server.APIToken != "env-secret" {
		t.Errorf("Server.APIToken = %q, want env-secret", cfg.Server.APIToken)
	}
}

func TestSecretNotReadFromBackend(t *testing.T) {
	clearEnvOverrides(t)

	b := emptyBackend()
	b.strings["server.api_token"] = "file-secret"

	cfg, err := loadWith(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.APIToken != "" {
		t.Errorf("APIToken = %q, want secrets ignored in config file", cfg.Server.APIToken)
	}
}

func TestInvalidIntEnvKeepsDefault(t *testing.T) {
	clearEnvOverrides(t)

	t.Setenv("DOCLENS_SERVER_PORT", "not-a-number")

	cfg, err := loadWith(emptyBackend())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 4000 {
		t.Errorf("Server.Port = %d, want default 4000 when env is invalid", cfg.Server.Port)
	}
}

func TestShowAllHidesSecrets(t *testing.T) {
	clearEnvOverrides(t)

	cfg, err := loadWith(emptyBackend())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, info := range ShowAll(cfg) {
		if strings.Contains(info.Key, "api_token") {
			t.Errorf("ShowAll exposed secret key %q", info.Key)
		}
	}
}

func TestValidKeys(t *testing.T) {
	keys := ValidKeys()
	if len(keys) == 0 {
		t.Fatal("ValidKeys() returned no keys")
	}
	for _, k := range keys {
		if k == "server.api_token" {
			t.Error("ValidKeys() includes secret key server.api_token")
		}
	}
}
