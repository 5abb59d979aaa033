// Package config handles loading and managing configuration for projectboard.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvAPIURL   = "PROJECTBOARD_API_URL"
	EnvLogLevel = "PROJECTBOARD_LOG_LEVEL"
	EnvLogFile  = "PROJECTBOARD_LOG_FILE"
)

// Config holds all application configuration.
type Config struct {
	API APIConfig `yaml:"api"`
	UI  UIConfig  `yaml:"ui"`
	Log LogConfig `yaml:"log"`
}

// APIConfig holds settings for the backend REST API.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"` // seconds; 0 disables the client timeout
}

// UIConfig holds board settings.
type UIConfig struct {
	SearchDebounceMS int   `yaml:"search_debounce_ms"`
	ShowHelpBar      *bool `yaml:"show_help_bar"`
}

// LogConfig holds diagnostic log settings.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Load reads configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnv()
	cfg.setDefaults()

	return &cfg, nil
}

// LoadFromDir loads configuration from the standard config directory.
func LoadFromDir(configDir string) (*Config, error) {
	configPath := filepath.Join(configDir, "config.yaml")
	return Load(configPath)
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	var cfg Config
	cfg.applyEnv()
	cfg.setDefaults()
	return &cfg
}

// SearchPaths returns the locations checked, in order, when no explicit
// config file is given.
func SearchPaths() []string {
	paths := []string{
		"./config/config.yaml",
		"./config.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "projectboard", "config.yaml"))
	}
	return paths
}

// Resolve loads path when set, otherwise the first existing file from
// SearchPaths, otherwise Default. A .env file in the working directory is
// loaded first so its variables can override file values.
func Resolve(path string) (*Config, error) {
	_ = godotenv.Load()

	if path != "" {
		return Load(path)
	}
	for _, loc := range SearchPaths() {
		if _, err := os.Stat(loc); err == nil {
			return Load(loc)
		}
	}
	return Default(), nil
}

// applyEnv overrides file values from the environment.
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		c.Log.File = v
	}
}

// setDefaults applies default values for any unset fields.
func (c *Config) setDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:5000"
	}
	if c.UI.SearchDebounceMS == 0 {
		c.UI.SearchDebounceMS = 300
	}
	if c.UI.ShowHelpBar == nil {
		show := true
		c.UI.ShowHelpBar = &show
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = defaultLogFile()
	}
}

// Timeout returns the API client timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.Timeout) * time.Second
}

// SearchDebounce returns the quiet period before a search reloads.
func (c *Config) SearchDebounce() time.Duration {
	return time.Duration(c.UI.SearchDebounceMS) * time.Millisecond
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "projectboard.log"
	}
	return filepath.Join(dir, "projectboard", "projectboard.log")
}
