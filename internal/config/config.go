// Package config loads the service configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"svw.info/powerline/internal/catalog"
	"svw.info/powerline/internal/engine"
)

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrInvalidConfig  = errors.New("invalid config")
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Hint     HintConfig     `yaml:"hint"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Sessions SessionsConfig `yaml:"sessions"`
	Export   ExportConfig   `yaml:"export"`
}

type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

type HintConfig struct {
	DefaultDepth int `yaml:"default_depth"`
	// MaxDepth caps the depth a client may request.
	MaxDepth int           `yaml:"max_depth"`
	Timeout  time.Duration `yaml:"timeout"`
}

type CatalogConfig struct {
	GeneratedLevels int `yaml:"generated_levels"`
}

type SessionsConfig struct {
	Max int `yaml:"max"`
}

type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Addr: ":8080", ReadHeaderTimeout: 5 * time.Second},
		Log:      LogConfig{Level: "info"},
		Hint:     HintConfig{DefaultDepth: engine.DefaultHintDepth, MaxDepth: 4, Timeout: 2 * time.Second},
		Catalog:  CatalogConfig{GeneratedLevels: catalog.DefaultGenerated},
		Sessions: SessionsConfig{Max: 1024},
		Export:   ExportConfig{Dir: "./levels", Format: "json"},
	}
}

// Load reads path over the defaults. Environment references like ${PORT}
// are expanded before parsing.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to access config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidConfig, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes YAML from r over the defaults and validates the result.
func Parse(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := Default()
	expanded := os.ExpandEnv(string(data))
	if strings.TrimSpace(expanded) != "" {
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Server.Addr) == "" {
		problems = append(problems, "server.addr is required")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level %q is not one of debug|info|warn|error", c.Log.Level))
	}
	if c.Hint.DefaultDepth < 0 {
		problems = append(problems, "hint.default_depth must be >= 0")
	}
	if c.Hint.MaxDepth < c.Hint.DefaultDepth {
		problems = append(problems, "hint.max_depth must be >= hint.default_depth")
	}
	if c.Hint.Timeout < 0 {
		problems = append(problems, "hint.timeout must be >= 0")
	}
	if c.Catalog.GeneratedLevels < 0 {
		problems = append(problems, "catalog.generated_levels must be >= 0")
	}
	if c.Sessions.Max < 0 {
		problems = append(problems, "sessions.max must be >= 0")
	}
	switch strings.ToLower(c.Export.Format) {
	case "json", "yaml", "yml":
	default:
		problems = append(problems, fmt.Sprintf("export.format %q is not one of json|yaml", c.Export.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
