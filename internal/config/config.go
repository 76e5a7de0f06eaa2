package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds tunables for the clone chat. Every field has a default; the
// config file is optional. The API key is deliberately env-only.
type Config struct {
	Model          string  `toml:"model"`
	APIBase        string  `toml:"api_base"`
	MaxExamples    int     `toml:"max_examples"`
	HistoryTurns   int     `toml:"history_turns"`
	Temperature    float64 `toml:"temperature"`
	MaxReplyTokens int     `toml:"max_reply_tokens"`
	DBPath         string  `toml:"db_path"`
}

const apiKeyEnv = "GROQ_API_KEY"

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Model:          "llama-3.1-8b-instant",
		MaxExamples:    15,
		HistoryTurns:   10,
		Temperature:    0.7,
		MaxReplyTokens: 150,
		DBPath:         filepath.Join(home, ".config", "clonechat", "clonechat.db"),
	}

	cfgPath := filepath.Join(home, ".config", "clonechat", "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	cfg.DBPath = expandHome(cfg.DBPath, home)

	return cfg, nil
}

// APIKey returns the Groq API key from the environment, or "" when unset.
func APIKey() string {
	return os.Getenv(apiKeyEnv)
}

// APIKeyEnv is the variable name, for user-facing messages.
func APIKeyEnv() string {
	return apiKeyEnv
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
