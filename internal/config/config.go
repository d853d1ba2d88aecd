package config

type Config struct {
	Server  ServerConfig
	Engine  EngineConfig
	Storage StorageConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port    int
	MCPPort int
	// APIToken guards the HTTP API when set. Empty disables auth.
	APIToken string
}

type EngineConfig struct {
	// Backend selects the model backend: "bedrock" or "ollama".
	Backend       string
	BedrockModel  string
	AWSRegion     string
	OllamaBaseURL string
	OllamaModel   string
}

type StorageConfig struct {
	DataDir string
	// Backend selects document storage: "sqlite" or "memory".
	Backend   string
	MemoryCap int
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:    4000,
			MCPPort: 4001,
		},
		Engine: EngineConfig{
			Backend:       "bedrock",
			BedrockModel:  "anthropic.claude-3-sonnet-20240229-v1:0",
			AWSRegion:     "us-east-1",
			OllamaBaseURL: "http://localhost:11434",
			OllamaModel:   "mistral-nemo",
		},
		Storage: StorageConfig{
			DataDir:   defaultDataDir(),
			Backend:   "sqlite",
			MemoryCap: 128,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the JSON file at
// $XDG_CONFIG_HOME/doclens/config.json, then applies DOCLENS_* environment
// variable overrides. Secrets (the API token, AWS credentials) come from the
// environment only and are never written to the config file.
func Load() (Config, error) {
	return loadWith(newFileBackend())
}

func loadWith(b ConfigBackend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	return cfg, nil
}
