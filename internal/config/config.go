// Package config provides centralized configuration management using Viper.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for corewizard.
type Config struct {
	ServerURL string       `mapstructure:"server_url" yaml:"server_url"`
	APIKey    string       `mapstructure:"api_key" yaml:"api_key"`
	Timeout   int          `mapstructure:"timeout" yaml:"timeout"` // seconds per HTTP request
	DataDir   string       `mapstructure:"data_dir" yaml:"data_dir"`
	Journal   bool         `mapstructure:"journal" yaml:"journal"`
	LogLevel  string       `mapstructure:"log_level" yaml:"log_level"`
	LogFile   string       `mapstructure:"log_file" yaml:"log_file"`
	Webcam    WebcamConfig `mapstructure:"webcam" yaml:"webcam"`
}

// WebcamConfig holds local camera settings. They override what the server
// reports, which matters when the camera is configured outside the server.
type WebcamConfig struct {
	StreamURL   string `mapstructure:"stream_url" yaml:"stream_url"`
	SnapshotURL string `mapstructure:"snapshot_url" yaml:"snapshot_url"`
	FFmpegPath  string `mapstructure:"ffmpeg_path" yaml:"ffmpeg_path"`
}

// Defaults used when no config file or env var sets a value.
const (
	DefaultServerURL = "http://localhost:5000"
	DefaultTimeout   = 10
	DefaultDataDir   = ".corewizard"
)

var envKeys = []string{
	"server_url",
	"api_key",
	"timeout",
	"data_dir",
	"journal",
	"log_level",
	"log_file",
	"webcam.stream_url",
	"webcam.snapshot_url",
	"webcam.ffmpeg_path",
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("corewizard")

	v.SetDefault("server_url", DefaultServerURL)
	v.SetDefault("api_key", "")
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("journal", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("webcam.stream_url", "")
	v.SetDefault("webcam.snapshot_url", "")
	v.SetDefault("webcam.ffmpeg_path", "")

	// COREWIZARD_WEBCAM_STREAM_URL etc.
	v.SetEnvPrefix("COREWIZARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicit bindings so Unmarshal sees env-only values.
	for _, key := range envKeys {
		envName := "COREWIZARD_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envName); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate reports configuration that cannot work at all.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.ServerURL)
	switch {
	case strings.TrimSpace(c.ServerURL) == "":
		errs = append(errs, errors.New("server_url is required"))
	case err != nil:
		errs = append(errs, fmt.Errorf("server_url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("server_url must be http or https, got %q", c.ServerURL))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %d", c.Timeout))
	}
	if c.Journal && c.DataDir == "" {
		errs = append(errs, errors.New("data_dir is required when journal is enabled"))
	}

	return errors.Join(errs...)
}

// RequestTimeout returns the per-request timeout, falling back to the default.
func (c *Config) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/corewizard/corewizard.yml or $XDG_CONFIG_HOME/corewizard/corewizard.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "corewizard", "corewizard.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "corewizard", "corewizard.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "corewizard.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// The file may hold an API key.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
