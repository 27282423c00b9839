package domain

// Config is the resolved application configuration.
type Config struct {
	Oracle OracleConfig `toml:"oracle"`
	Plan   PlanConfig   `toml:"plan"`
	Log    LogConfig    `toml:"log"`
	Editor string       `toml:"editor"`
}

// OracleConfig selects and parameterizes the generation backend.
type OracleConfig struct {
	Provider       string `toml:"provider"`
	Command        string `toml:"command"`
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// PlanConfig holds plan file defaults.
type PlanConfig struct {
	Path           string `toml:"path"`
	CheckpointPath string `toml:"checkpoint_path"`
	MaxDepth       int    `toml:"max_depth"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// NewDefaultConfig returns the compiled-in defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Oracle: OracleConfig{
			Provider:       "claude",
			TimeoutSeconds: 120,
		},
		Plan: PlanConfig{
			Path:           "scopeplan.json",
			CheckpointPath: "scopeplan.checkpoint.json",
			MaxDepth:       5,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
