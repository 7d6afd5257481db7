package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	defaultConfigPath = "config.yaml"
	defaultDotenvPath = ".env"
)

// Load assembles the configuration. Precedence, highest first: the process
// environment, a .env file (DOTENV_PATH, default ".env"), the YAML file
// (CONFIG_PATH, default "config.yaml"), then env-default tags. Missing
// default files are skipped; a CONFIG_PATH that does not exist is an error.
func Load() (*Config, error) {
	if err := loadDotenv(envOr("DOTENV_PATH", defaultDotenvPath)); err != nil {
		return nil, err
	}

	path := os.Getenv("CONFIG_PATH")
	cfg, err := read(envOr("CONFIG_PATH", defaultConfigPath), path != "")
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

func read(path string, required bool) (*Config, error) {
	var cfg Config

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case required || !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("config: %w", err)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}
	return &cfg, nil
}

// loadDotenv never overrides variables already set in the environment.
func loadDotenv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: dotenv %s: %w", path, err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
