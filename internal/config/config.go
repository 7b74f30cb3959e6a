package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root client configuration. Values come from an optional
// yaml file (BASKET_CONFIG) with env vars layered on top.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Search SearchConfig `yaml:"search"`
	Log    LogConfig    `yaml:"log"`

	// CredentialsDir overrides where the token file lives; empty means
	// ~/.basket.
	CredentialsDir string `yaml:"credentials_dir" env:"BASKET_CREDENTIALS_DIR"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"BASKET_API_URL" env-default:"https://nt-shopping-list.onrender.com/api"`
	Timeout time.Duration `yaml:"timeout"  env:"BASKET_API_TIMEOUT" env-default:"30s"`
}

// SearchConfig holds the free-text search tuning.
type SearchConfig struct {
	Debounce time.Duration `yaml:"debounce" env:"BASKET_SEARCH_DEBOUNCE" env-default:"500ms"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"BASKET_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"BASKET_LOG_FORMAT" env-default:"text"`
}

// Load reads BASKET_CONFIG when set, then applies the environment.
func Load() (*Config, error) {
	var cfg Config
	if path := os.Getenv("BASKET_CONFIG"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return &cfg, nil
}
