// Package config loads go-fiche settings: built-in defaults, then an optional
// YAML file, then FICHE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment key.
const EnvPrefix = "FICHE_"

// Directory sources.
const (
	SourceStatic = "static"
	SourceHTTP   = "http"
)

// API configures the backend client.
type API struct {
	BaseURL   string        `yaml:"base_url" env:"BASE_URL"`
	Timeout   time.Duration `yaml:"timeout" env:"TIMEOUT"`
	TokenFile string        `yaml:"token_file" env:"TOKEN_FILE"`
}

// Directory selects and tunes the lookup source.
type Directory struct {
	Source    string `yaml:"source" env:"SOURCE"`
	PageSize  int    `yaml:"page_size" env:"PAGE_SIZE"`
	AnneeUniv string `yaml:"annee_univ" env:"ANNEE_UNIV"`
}

// Submission holds the fixed payload defaults.
type Submission struct {
	InitialStatus string `yaml:"initial_status" env:"INITIAL_STATUS"`
}

// Log configures slog.
type Log struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// DevServer configures the local mock backend.
type DevServer struct {
	Addr string `yaml:"addr" env:"ADDR"`
}

// Config is the full settings tree.
type Config struct {
	API        API        `yaml:"api" envPrefix:"API_"`
	Directory  Directory  `yaml:"directory" envPrefix:"DIRECTORY_"`
	Submission Submission `yaml:"submission" envPrefix:"SUBMISSION_"`
	Log        Log        `yaml:"log" envPrefix:"LOG_"`
	DevServer  DevServer  `yaml:"devserver" envPrefix:"DEVSERVER_"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		API: API{
			BaseURL: "http://localhost:8080/api",
			Timeout: 15 * time.Second,
		},
		Directory: Directory{
			Source:    SourceStatic,
			PageSize:  50,
			AnneeUniv: "2024-2025",
		},
		Submission: Submission{InitialStatus: "EN_ATTENTE"},
		Log:        Log{Level: "info", Format: "text"},
		DevServer:  DevServer{Addr: "127.0.0.1:8080"},
	}
}

// Load reads path (skipped when empty) over the defaults, then applies the
// process environment.
func Load(path string) (Config, error) {
	return LoadWith(path, nil)
}

// LoadWith is Load with an explicit environment; nil means the process
// environment.
func LoadWith(path string, environ map[string]string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every inconsistent setting at once.
func (c Config) Validate() error {
	var errs []error
	switch c.Directory.Source {
	case SourceStatic, SourceHTTP:
	default:
		errs = append(errs, fmt.Errorf("config: directory.source must be %q or %q, got %q", SourceStatic, SourceHTTP, c.Directory.Source))
	}
	if c.Directory.Source == SourceHTTP && strings.TrimSpace(c.API.BaseURL) == "" {
		errs = append(errs, errors.New("config: api.base_url is required with the http directory"))
	}
	if c.Directory.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("config: directory.page_size must be positive, got %d", c.Directory.PageSize))
	}
	if c.API.Timeout < 0 {
		errs = append(errs, fmt.Errorf("config: api.timeout must not be negative, got %s", c.API.Timeout))
	}
	if strings.TrimSpace(c.Submission.InitialStatus) == "" {
		errs = append(errs, errors.New("config: submission.initial_status is required"))
	}
	return errors.Join(errs...)
}
