package app

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	APIBaseURL        string `yaml:"api_base_url"`
	SocketURL         string `yaml:"socket_url"`
	Language          string `yaml:"language"`
	RequestTimeoutSec int    `yaml:"request_timeout_sec"`
}

func DefaultConfig() Config {
	return Config{
		APIBaseURL:        "https://opinion-chat-api.azurewebsites.net/api",
		SocketURL:         "wss://opinion-chat-api.azurewebsites.net/ws",
		Language:          "no",
		RequestTimeoutSec: 30,
	}
}

// LoadConfig reads the yaml config at path, backfills defaults for missing
// fields, and applies .env / environment overrides on top.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return cfg, err
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultConfig().APIBaseURL
	}
	if cfg.SocketURL == "" {
		cfg.SocketURL = DefaultConfig().SocketURL
	}
	if cfg.Language == "" {
		cfg.Language = "no"
	}
	if cfg.RequestTimeoutSec <= 0 {
		cfg.RequestTimeoutSec = 30
	}

	// Environment wins over the file. A local .env is loaded first so both
	// sources go through the same lookup.
	_ = godotenv.Load()
	if v := strings.TrimSpace(os.Getenv("OCHAT_API_URL")); v != "" {
		cfg.APIBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("OCHAT_SOCKET_URL")); v != "" {
		cfg.SocketURL = v
	}
	if v := strings.TrimSpace(os.Getenv("OCHAT_LANG")); v != "" {
		cfg.Language = v
	}
	if v := strings.TrimSpace(os.Getenv("OCHAT_TIMEOUT_SEC")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestTimeoutSec = n
		}
	}

	return cfg, nil
}

func SaveConfig(cfg Config, path string) error {
	if path == "" {
		return errors.New("no path provided for config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func DefaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "opinion-chat", "config.yml")
}
