package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gravitrone/paperless-mail/internal/upload"
)

// Config holds CLI configuration stored at ~/.paperless-mail/config.
// Environment variables override the file.
type Config struct {
	URL            string  `yaml:"url" env:"PAPERLESS_URL"`
	Token          string  `yaml:"token" env:"PAPERLESS_TOKEN"`
	DefaultTag     string  `yaml:"default_tag" env:"PAPERLESS_DEFAULT_TAG"`
	AddDefaultTag  bool    `yaml:"add_default_tag" env:"PAPERLESS_ADD_DEFAULT_TAG"`
	Language       string  `yaml:"language,omitempty" env:"PAPERLESS_MAIL_LANG"`
	FuzzyThreshold float64 `yaml:"fuzzy_threshold,omitempty" env:"PAPERLESS_FUZZY_THRESHOLD"`
	SkipMessage    bool    `yaml:"skip_message,omitempty" env:"PAPERLESS_SKIP_MESSAGE"`
	LogFile        string  `yaml:"log_file,omitempty" env:"PAPERLESS_MAIL_LOG"`
}

// Defaults returns the values used for keys missing from the file.
func Defaults() Config {
	return Config{
		DefaultTag:    upload.DefaultTagName,
		AddDefaultTag: true,
	}
}

// Path returns the config file path.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".paperless-mail", "config")
}

// Read parses the config file on top of the defaults, without environment
// overrides or validation.
func Read() (*Config, error) {
	path := Path()
	cfg := Defaults()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config not found: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config file, applies .env and environment overrides and
// validates the result. A missing file is fine when the environment
// supplies the connection settings.
func Load() (*Config, error) {
	cfg, err := Read()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		defaults := Defaults()
		cfg = &defaults
	}
	fileErr := err

	_ = godotenv.Load()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if fileErr != nil && cfg.URL == "" && cfg.Token == "" {
		return nil, fileErr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the connection settings and normalizes the URL.
func (c *Config) Validate() error {
	c.URL = strings.TrimRight(strings.TrimSpace(c.URL), "/")
	if c.URL == "" {
		return fmt.Errorf("config missing url")
	}
	if !strings.HasPrefix(c.URL, "http://") && !strings.HasPrefix(c.URL, "https://") {
		return fmt.Errorf("config url must start with http:// or https://: %q", c.URL)
	}
	if c.Token == "" {
		return fmt.Errorf("config missing token")
	}
	if c.FuzzyThreshold < 0 || c.FuzzyThreshold > 1 {
		return fmt.Errorf("config fuzzy_threshold out of range: %v", c.FuzzyThreshold)
	}
	return nil
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	return os.Chmod(path, 0600)
}
