// Package config provides configuration loading and validation for the CLI.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/flashcard-migrate/internal/discovery"
	"github.com/jonathan/flashcard-migrate/internal/migration"
)

// Environment variables read by FromEnv (a .env file is loaded at startup).
const (
	EnvSiteDir    = "FLASHMIGRATE_DIR"
	EnvDataDir    = "FLASHMIGRATE_DATA_DIR"
	EnvPattern    = "FLASHMIGRATE_PATTERN"
	EnvEntryPoint = "FLASHMIGRATE_ENTRY_POINT"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or come from CLI flags.
type Config struct {
	SiteDir    string `json:"site_dir,omitempty" validate:"required"`                    // Directory holding the HTML pages
	DataDir    string `json:"data_dir,omitempty" validate:"required"`                    // Data file directory, relative to SiteDir
	Pattern    string `json:"pattern,omitempty" validate:"required"`                     // Page glob, relative to SiteDir
	EntryPoint string `json:"entry_point,omitempty" validate:"required,excludesall=/\\"` // Page the data steps never touch
	Report     string `json:"report,omitempty"`                                          // Optional JSON report output path

	Verbose bool `json:"verbose,omitempty"` // Print debug logging to stderr
	DryRun  bool `json:"dry_run,omitempty"` // Report outcomes without writing
}

// Defaults returns the configuration the original maintenance scripts used:
// pages in the current directory, data under assets/data.
func Defaults() Config {
	return Config{
		SiteDir:    ".",
		DataDir:    migration.DefaultDataDir,
		Pattern:    discovery.DefaultPattern,
		EntryPoint: discovery.DefaultEntryPoint,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config holding only the values set in the environment.
func FromEnv() Config {
	return Config{
		SiteDir:    os.Getenv(EnvSiteDir),
		DataDir:    os.Getenv(EnvDataDir),
		Pattern:    os.Getenv(EnvPattern),
		EntryPoint: os.Getenv(EnvEntryPoint),
	}
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// Bool fields cannot distinguish unset from false, so they are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.SiteDir == "" {
		result.SiteDir = defaults.SiteDir
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.Pattern == "" {
		result.Pattern = defaults.Pattern
	}
	if result.EntryPoint == "" {
		result.EntryPoint = defaults.EntryPoint
	}
	if result.Report == "" {
		result.Report = defaults.Report
	}

	return result
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks that the configuration has valid values. Call it after
// merging so that required fields have been filled from defaults.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			ve := validationErrors[0]
			return fmt.Errorf("config error: '%s' failed '%s' validation", ve.Field(), ve.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	dataDir := filepath.ToSlash(c.DataDir)
	if filepath.IsAbs(c.DataDir) || path.IsAbs(dataDir) {
		return fmt.Errorf("config error: 'data_dir' must be relative to the site directory")
	}
	if cleaned := path.Clean(dataDir); cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("config error: 'data_dir' must stay inside the site directory")
	}

	if err := discovery.ValidatePattern(c.Pattern); err != nil {
		return fmt.Errorf("config error: 'pattern': %w", err)
	}

	if info, err := os.Stat(c.SiteDir); err != nil {
		return fmt.Errorf("config error: site directory not found: %s", c.SiteDir)
	} else if !info.IsDir() {
		return fmt.Errorf("config error: site path is not a directory: %s", c.SiteDir)
	}

	return nil
}

// Options converts the configuration into step options.
func (c *Config) Options() migration.Options {
	return migration.Options{
		SiteDir:    c.SiteDir,
		DataDir:    c.DataDir,
		EntryPoint: c.EntryPoint,
		DryRun:     c.DryRun,
	}
}
