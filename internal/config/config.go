// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/iust/softhub/internal/locale"
	"github.com/iust/softhub/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the top-level configuration.
type Config struct {
	Catalog   CatalogConfig   `toml:"catalog" json:"catalog"`
	Assistant AssistantConfig `toml:"assistant" json:"assistant"`
	UI        UIConfig        `toml:"ui" json:"ui"`
	Logging   LoggingConfig   `toml:"logging" json:"logging"`
}

// CatalogConfig points at the software portal.
type CatalogConfig struct {
	// BaseURL is the portal origin; relative media paths resolve against it.
	BaseURL string `toml:"base_url" json:"base_url"`

	// TimeoutSeconds bounds each catalog request.
	TimeoutSeconds int `toml:"timeout_seconds" json:"timeout_seconds"`
}

// AssistantConfig selects the language model behind the assistant.
type AssistantConfig struct {
	// Provider is "gemini" or "openrouter".
	Provider string `toml:"provider" json:"provider"`

	Model string `toml:"model" json:"model"`

	// APIKey may be left empty; the assistant then answers with an error
	// message instead of failing startup.
	APIKey string `toml:"api_key" json:"api_key"`

	// BaseURL overrides the provider endpoint, e.g. for a campus proxy.
	BaseURL string `toml:"base_url" json:"base_url"`

	TimeoutSeconds int `toml:"timeout_seconds" json:"timeout_seconds"`
}

// UIConfig holds presentation settings. The theme is a preference, not
// configuration, and lives in package prefs.
type UIConfig struct {
	// Locale is "fa" or "en".
	Locale string `toml:"locale" json:"locale"`

	// WordWrap is the width markdown is wrapped at.
	WordWrap int `toml:"word_wrap" json:"word_wrap"`
}

// LoggingConfig configures the log sink.
type LoggingConfig struct {
	Level string `toml:"level" json:"level"`

	// File defaults to softhub.log in the config directory.
	File string `toml:"file" json:"file"`

	Development bool `toml:"development" json:"development"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	DefaultCatalogURL       = "https://apitest.fpna.ir"
	DefaultCatalogTimeout   = 15
	DefaultProvider         = "gemini"
	DefaultModel            = "gemini-2.5-flash"
	DefaultAssistantTimeout = 60
	DefaultLocale           = "fa"
	DefaultWordWrap         = 80
	DefaultLogLevel         = "info"
)

// Default returns a Config with every field at its default.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:        DefaultCatalogURL,
			TimeoutSeconds: DefaultCatalogTimeout,
		},
		Assistant: AssistantConfig{
			Provider:       DefaultProvider,
			Model:          DefaultModel,
			TimeoutSeconds: DefaultAssistantTimeout,
		},
		UI: UIConfig{
			Locale:   DefaultLocale,
			WordWrap: DefaultWordWrap,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
	}
}

// CatalogTimeout returns the catalog timeout as a duration.
func (c *Config) CatalogTimeout() time.Duration {
	return time.Duration(c.Catalog.TimeoutSeconds) * time.Second
}

// AssistantTimeout returns the assistant timeout as a duration.
func (c *Config) AssistantTimeout() time.Duration {
	return time.Duration(c.Assistant.TimeoutSeconds) * time.Second
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the softhub configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".softhub"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DefaultLogPath returns the log file used when logging.file is unset.
func DefaultLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "softhub.log"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads ~/.softhub/config.toml if present, then applies environment
// overrides, defaults and validation. On error the returned Config is
// still usable defaults, matching how the TUI degrades.
func Load() (*Config, error) {
	path, err := ConfigPathTOML()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		cfg.SetDefaults()
		return cfg, err
	}
	return LoadFromPath(path)
}

// LoadFromPath is Load for an explicit file. A missing file is not an error.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, statErr := os.Stat(path); statErr == nil {
		if err := LoadTOML(cfg, path); err != nil {
			fallback := Default()
			fallback.ApplyEnvOverrides()
			fallback.SetDefaults()
			return fallback, fmt.Errorf("failed to load TOML config: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		fallback := Default()
		fallback.ApplyEnvOverrides()
		fallback.SetDefaults()
		return fallback, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes path into cfg. Unknown keys are rejected so typos do not
// go unnoticed.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Save writes cfg to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg to path with mode 0600, since it may hold an API key.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# softhub configuration file")
	fmt.Fprintln(&buf, "# Environment variables (SOFTHUB_*, GEMINI_API_KEY) override these values.")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError is one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks cfg and returns ValidateErrors listing every problem.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.Catalog.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "catalog.base_url",
			Message: fmt.Sprintf("invalid URL '%s', must be an absolute http(s) URL", c.Catalog.BaseURL),
		})
	}
	if c.Catalog.TimeoutSeconds < 1 || c.Catalog.TimeoutSeconds > 300 {
		errs = append(errs, ValidationError{
			Field:   "catalog.timeout_seconds",
			Message: fmt.Sprintf("must be between 1 and 300, got %d", c.Catalog.TimeoutSeconds),
		})
	}

	validProviders := map[string]bool{"gemini": true, "openrouter": true}
	if !validProviders[strings.ToLower(c.Assistant.Provider)] {
		errs = append(errs, ValidationError{
			Field:   "assistant.provider",
			Message: fmt.Sprintf("invalid provider '%s', must be one of: gemini, openrouter", c.Assistant.Provider),
		})
	}
	if c.Assistant.BaseURL != "" {
		if u, err := url.Parse(c.Assistant.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "assistant.base_url",
				Message: fmt.Sprintf("invalid URL '%s'", c.Assistant.BaseURL),
			})
		}
	}
	if c.Assistant.TimeoutSeconds < 1 || c.Assistant.TimeoutSeconds > 600 {
		errs = append(errs, ValidationError{
			Field:   "assistant.timeout_seconds",
			Message: fmt.Sprintf("must be between 1 and 600, got %d", c.Assistant.TimeoutSeconds),
		})
	}

	if !slices.Contains(locale.Supported(), strings.ToLower(c.UI.Locale)) {
		errs = append(errs, ValidationError{
			Field:   "ui.locale",
			Message: fmt.Sprintf("invalid locale '%s', must be one of: %s", c.UI.Locale, strings.Join(locale.Supported(), ", ")),
		})
	}
	if c.UI.WordWrap < 20 || c.UI.WordWrap > 400 {
		errs = append(errs, ValidationError{
			Field:   "ui.word_wrap",
			Message: fmt.Sprintf("must be between 20 and 400, got %d", c.UI.WordWrap),
		})
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Logging.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero-valued fields with their defaults.
func (c *Config) SetDefaults() {
	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = DefaultCatalogURL
	}
	c.Catalog.BaseURL = strings.TrimRight(c.Catalog.BaseURL, "/")
	if c.Catalog.TimeoutSeconds == 0 {
		c.Catalog.TimeoutSeconds = DefaultCatalogTimeout
	}
	if c.Assistant.Provider == "" {
		c.Assistant.Provider = DefaultProvider
	}
	c.Assistant.Provider = strings.ToLower(c.Assistant.Provider)
	if c.Assistant.Model == "" {
		c.Assistant.Model = DefaultModel
	}
	if c.Assistant.TimeoutSeconds == 0 {
		c.Assistant.TimeoutSeconds = DefaultAssistantTimeout
	}
	if c.UI.Locale == "" {
		c.UI.Locale = DefaultLocale
	}
	c.UI.Locale = strings.ToLower(c.UI.Locale)
	if c.UI.WordWrap == 0 {
		c.UI.WordWrap = DefaultWordWrap
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.File == "" {
		if path, err := DefaultLogPath(); err == nil {
			c.Logging.File = path
		}
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variables on top of file values.
//
// Supported environment variables:
//   - SOFTHUB_API_URL: overrides catalog.base_url
//   - SOFTHUB_PROVIDER: overrides assistant.provider
//   - SOFTHUB_MODEL: overrides assistant.model
//   - SOFTHUB_ASSISTANT_KEY, GEMINI_API_KEY, API_KEY: assistant.api_key, first set wins
//   - SOFTHUB_ASSISTANT_URL: overrides assistant.base_url
//   - SOFTHUB_LOCALE: overrides ui.locale
//   - SOFTHUB_LOG_LEVEL: overrides logging.level
//   - SOFTHUB_LOG_FILE: overrides logging.file
//   - SOFTHUB_DEV: "1" or "true" enables development logging
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SOFTHUB_API_URL"); v != "" {
		c.Catalog.BaseURL = v
	}
	if v := os.Getenv("SOFTHUB_PROVIDER"); v != "" {
		c.Assistant.Provider = v
	}
	if v := os.Getenv("SOFTHUB_MODEL"); v != "" {
		c.Assistant.Model = v
	}
	for _, name := range []string{"SOFTHUB_ASSISTANT_KEY", "GEMINI_API_KEY", "API_KEY"} {
		if v := os.Getenv(name); v != "" {
			c.Assistant.APIKey = v
			break
		}
	}
	if v := os.Getenv("SOFTHUB_ASSISTANT_URL"); v != "" {
		c.Assistant.BaseURL = v
	}
	if v := os.Getenv("SOFTHUB_LOCALE"); v != "" {
		c.UI.Locale = v
	}
	if v := os.Getenv("SOFTHUB_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SOFTHUB_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("SOFTHUB_DEV"); v != "" {
		c.Logging.Development = v == "1" || strings.EqualFold(v, "true")
	}
}

// =============================================================================
// GET HELPER (DOT NOTATION)
// =============================================================================

// Get returns a value by dotted key (e.g. "catalog.base_url") as text.
// The API key is redacted.
func (c *Config) Get(key string) (string, error) {
	switch strings.ToLower(key) {
	case "catalog.base_url":
		return c.Catalog.BaseURL, nil
	case "catalog.timeout_seconds":
		return strconv.Itoa(c.Catalog.TimeoutSeconds), nil
	case "assistant.provider":
		return c.Assistant.Provider, nil
	case "assistant.model":
		return c.Assistant.Model, nil
	case "assistant.api_key":
		return redact(c.Assistant.APIKey), nil
	case "assistant.base_url":
		return c.Assistant.BaseURL, nil
	case "assistant.timeout_seconds":
		return strconv.Itoa(c.Assistant.TimeoutSeconds), nil
	case "ui.locale":
		return c.UI.Locale, nil
	case "ui.word_wrap":
		return strconv.Itoa(c.UI.WordWrap), nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.file":
		return c.Logging.File, nil
	case "logging.development":
		return strconv.FormatBool(c.Logging.Development), nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the config as indented JSON with the API key redacted.
func (c *Config) String() string {
	safe := c.Clone()
	safe.Assistant.APIKey = redact(safe.Assistant.APIKey)
	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "[REDACTED]"
}

// =============================================================================
// SINGLETON
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the process-wide configuration, loading it on first use.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal replaces the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	globalConfig = cfg
	globalConfigMu.Unlock()
	globalConfigOnce.Do(func() {})
}

// ResetGlobalForTesting clears the process-wide configuration.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
