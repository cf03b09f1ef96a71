// Package config loads the client configuration from defaults, an optional
// YAML file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds everything the commands need to reach the API.
type Config struct {
	APIURL   string        `yaml:"api_url" env:"API_URL" validate:"required,url"`
	Timeout  time.Duration `yaml:"timeout" env:"TRACKER_TIMEOUT" env-default:"10s" validate:"gt=0"`
	UserID   string        `yaml:"user_id" env:"TRACKER_USER_ID"`
	Workdays string        `yaml:"workdays" env:"TRACKER_WORKDAYS" env-default:"every weekday"`
	LogLevel string        `yaml:"log_level" env:"TRACKER_LOG_LEVEL" env-default:"warn" validate:"omitempty,oneof=debug info warn warning error"`

	// Path is the config file that was read, empty when none existed.
	Path string `yaml:"-" env:"-"`
}

// Dir returns the tracker config directory.
func Dir(homeDir string) string {
	return filepath.Join(homeDir, ".tracker")
}

// Path returns the config file location. TRACKER_CONFIG overrides the default.
func Path(homeDir string) string {
	if p := os.Getenv("TRACKER_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(homeDir), "config.yaml")
}

// Load reads workDir/.env (without overriding variables already set), then the
// config file if it exists, then the environment.
func Load(homeDir, workDir string) (*Config, error) {
	if workDir != "" {
		if err := godotenv.Load(filepath.Join(workDir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading .env: %w", err)
		}
	}

	var cfg Config
	path := Path(homeDir)
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		cfg.Path = path
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("reading environment: %w", err)
		}
	}

	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	return &cfg, nil
}

var fieldHints = map[string]string{
	"APIURL":   "api_url (env API_URL)",
	"Timeout":  "timeout (env TRACKER_TIMEOUT)",
	"LogLevel": "log_level (env TRACKER_LOG_LEVEL)",
}

// Validate checks the fields needed to talk to the API.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if hint, ok := fieldHints[name]; ok {
			name = hint
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", name))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid URL", name))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", name, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", name))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, ", "))
}
