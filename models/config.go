// Package models defines data structures for configuration and extracted invoices.
package models

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultOutputDir  = "extractedData"
	DefaultAPIBaseURL = "https://api.veryfi.com"
	DefaultTimeout    = 120 * time.Second
)

// Credentials holds the four Veryfi API secrets.
// All four are required; the client cannot authenticate with a partial set.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	APIKey       string
}

// Validate fails fast when any credential is missing, before any file is touched.
func (c Credentials) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" || c.Username == "" || c.APIKey == "" {
		return fmt.Errorf("incomplete credentials: VERYFI_CLIENT_ID, VERYFI_CLIENT_SECRET, VERYFI_USERNAME and VERYFI_API_KEY must all be set")
	}
	return nil
}

// Config holds runtime configuration for a batch run.
// Non-secret options come from an optional YAML file, overridable by CLI flags.
// Credentials come only from the environment (optionally via a .env file).
type Config struct {
	OutputDir      string `yaml:"output_dir"`
	APIBaseURL     string `yaml:"api_base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`

	// Timeout is derived from TimeoutSeconds (or the default) after loading.
	Timeout time.Duration `yaml:"-"`

	Credentials Credentials `yaml:"-"`
}

// LoadConfig reads the optional YAML config file and the environment.
// A missing config file is not an error; missing credentials are caught later
// by Credentials.Validate. envFile, when non-empty, is loaded first via
// godotenv so local .env files work.
func LoadConfig(path, envFile string) (*Config, error) {
	if envFile != "" {
		// Best effort: a missing .env just means credentials come from the real env.
		_ = godotenv.Load(envFile)
	}

	cfg := &Config{
		OutputDir:  DefaultOutputDir,
		APIBaseURL: DefaultAPIBaseURL,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	} else {
		cfg.Timeout = DefaultTimeout
	}

	cfg.Credentials = Credentials{
		ClientID:     os.Getenv("VERYFI_CLIENT_ID"),
		ClientSecret: os.Getenv("VERYFI_CLIENT_SECRET"),
		Username:     os.Getenv("VERYFI_USERNAME"),
		APIKey:       os.Getenv("VERYFI_API_KEY"),
	}

	return cfg, nil
}
