package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/felixgeelhaar/abacus/internal/calc"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g. ABACUS_DARK_MODE.
const EnvPrefix = "ABACUS_"

// Config holds the startup settings of the calculator.
type Config struct {
	Scientific bool           `json:"scientific" yaml:"scientific" env:"SCIENTIFIC"`
	DarkMode   bool           `json:"dark_mode" yaml:"dark_mode" env:"DARK_MODE"`
	AngleMode  string         `json:"angle_mode" yaml:"angle_mode" env:"ANGLE_MODE"`
	Locale     string         `json:"locale" yaml:"locale" env:"LOCALE"`
	Currency   CurrencyConfig `json:"currency" yaml:"currency" envPrefix:"CURRENCY_"`
	Journal    JournalConfig  `json:"journal" yaml:"journal" envPrefix:"JOURNAL_"`
	Log        LogConfig      `json:"log" yaml:"log" envPrefix:"LOG_"`
}

type CurrencyConfig struct {
	Rate float64 `json:"rate" yaml:"rate" env:"RATE"`
	Code string  `json:"code" yaml:"code" env:"CODE"`
}

// JournalConfig enables the SQLite history journal when Path is set.
type JournalConfig struct {
	Path string `json:"path" yaml:"path" env:"PATH"`
}

type LogConfig struct {
	Verbose bool   `json:"verbose" yaml:"verbose" env:"VERBOSE"`
	JSON    bool   `json:"json" yaml:"json" env:"JSON"`
	File    string `json:"file" yaml:"file" env:"FILE"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		AngleMode: "deg",
		Locale:    "en",
		Currency: CurrencyConfig{
			Rate: calc.DefaultCurrency.Rate,
			Code: calc.DefaultCurrency.Code,
		},
	}
}

// Dir is the per-user directory holding the config file and journal.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".abacus")
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads settings from path, or from DefaultPath when path is empty,
// then applies environment overrides. A missing default file is not an
// error; a missing explicit file is.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if err := cfg.readFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(nil); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readFile merges a JSON or YAML file into c.
func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to unmarshal JSON config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to unmarshal YAML config: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config format: %s (use .json or .yaml)", ext)
	}
	return nil
}

// ApplyEnv overrides fields from ABACUS_* variables. A nil environ reads
// the process environment.
func (c *Config) ApplyEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ValidationResult represents the outcome of a validation pass.
type ValidationResult struct {
	Valid    bool
	Warnings []string
	Errors   []string
}

// Validate checks the settings for values the calculator cannot use.
func (c *Config) Validate() ValidationResult {
	res := ValidationResult{
		Valid:    true,
		Warnings: []string{},
		Errors:   []string{},
	}

	if _, err := calc.ParseAngleMode(c.AngleMode); err != nil {
		res.Valid = false
		res.Errors = append(res.Errors, "angle_mode must be deg or rad")
	}

	if c.Currency.Rate <= 0 {
		res.Valid = false
		res.Errors = append(res.Errors, "currency.rate must be positive")
	}
	if strings.TrimSpace(c.Currency.Code) == "" {
		res.Valid = false
		res.Errors = append(res.Errors, "currency.code is required")
	}

	if _, err := language.Parse(c.Locale); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("locale %q is not a valid language tag; using en", c.Locale))
	}

	if c.Journal.Path != "" && !filepath.IsAbs(c.Journal.Path) {
		res.Warnings = append(res.Warnings, "journal.path is relative; it resolves against the working directory")
	}

	return res
}

// Language returns the configured locale, falling back to English.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// SessionOptions converts the settings into calculator options. Call
// Validate first; an invalid angle mode falls back to degrees.
func (c *Config) SessionOptions() []calc.Option {
	angle, _ := calc.ParseAngleMode(c.AngleMode)
	return []calc.Option{
		calc.WithModes(c.Scientific, c.DarkMode, angle),
		calc.WithCurrency(calc.Currency{Rate: c.Currency.Rate, Code: c.Currency.Code}),
	}
}

// YAML renders the effective settings.
func (c *Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(out), nil
}
