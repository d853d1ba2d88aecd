package config

import (
	"fmt"
	"os"
	"strconv"
)

type keyType int

const (
	kString keyType = iota
	kInt
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	secret  bool
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "server.port", typ: kInt, env: "DOCLENS_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "server.mcp_port", typ: kInt, env: "DOCLENS_SERVER_MCP_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.MCPPort = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.MCPPort },
	},
	{
		key: "server.api_token", typ: kString, env: "DOCLENS_API_TOKEN",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Server.APIToken = v.(string) },
		extract: func(cfg Config) any { return cfg.Server.APIToken },
	},
	{
		key: "engine.backend", typ: kString, env: "DOCLENS_ENGINE_BACKEND",
		apply:   func(cfg *Config, v any) { cfg.Engine.Backend = v.(string) },
		extract: func(cfg Config) any { return cfg.Engine.Backend },
	},
	{
		key: "engine.bedrock_model", typ: kString, env: "DOCLENS_ENGINE_BEDROCK_MODEL",
		apply:   func(cfg *Config, v any) { cfg.Engine.BedrockModel = v.(string) },
		extract: func(cfg Config) any { return cfg.Engine.BedrockModel },
	},
	{
		key: "engine.aws_region", typ: kString, env: "DOCLENS_ENGINE_AWS_REGION",
		apply:   func(cfg *Config, v any) { cfg.Engine.AWSRegion = v.(string) },
		extract: func(cfg Config) any { return cfg.Engine.AWSRegion },
	},
	{
		key: "engine.ollama_base_url", typ: kString, env: "DOCLENS_ENGINE_OLLAMA_BASE_URL",
		apply:   func(cfg *Config, v any) { cfg.Engine.OllamaBaseURL = v.(string) },
		extract: func(cfg Config) any { return cfg.Engine.OllamaBaseURL },
	},
	{
		key: "engine.ollama_model", typ: kString, env: "DOCLENS_ENGINE_OLLAMA_MODEL",
		apply:   func(cfg *Config, v any) { cfg.Engine.OllamaModel = v.(string) },
		extract: func(cfg Config) any { return cfg.Engine.OllamaModel },
	},
	{
		key: "storage.data_dir", typ: kString, env: "DOCLENS_STORAGE_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
	{
		key: "storage.backend", typ: kString, env: "DOCLENS_STORAGE_BACKEND",
		apply:   func(cfg *Config, v any) { cfg.Storage.Backend = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.Backend },
	},
	{
		key: "storage.memory_cap", typ: kInt, env: "DOCLENS_STORAGE_MEMORY_CAP",
		apply:   func(cfg *Config, v any) { cfg.Storage.MemoryCap = v.(int) },
		extract: func(cfg Config) any { return cfg.Storage.MemoryCap },
	},
	{
		key: "log.level", typ: kString, env: "DOCLENS_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
}

func applyBackend(cfg *Config, b ConfigBackend) error {
	for _, s := range specs {
		if s.secret {
			continue
		}
		switch s.typ {
		case kString:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kInt:
			v, ok, err := b.GetInt(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		if s.env == "" {
			continue
		}
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			if i, err := strconv.Atoi(raw); err == nil {
				s.apply(cfg, i)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse integer from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		}
	}
}
