// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/stockpulse/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the main configuration structure for stockpulse.
type Config struct {
	Version string `toml:"version" yaml:"version" json:"version"`

	API   APIConfig   `toml:"api" yaml:"api" json:"api"`
	UI    UIConfig    `toml:"ui" yaml:"ui" json:"ui"`
	Watch WatchConfig `toml:"watch" yaml:"watch" json:"watch"`
	Log   LogConfig   `toml:"log" yaml:"log" json:"log"`
}

// APIConfig locates the prediction service.
type APIConfig struct {
	// BaseURL is the scheme and host of the service, e.g. "http://127.0.0.1:5001".
	BaseURL string `toml:"base_url" yaml:"base_url" json:"base_url"`

	PredictPath string `toml:"predict_path" yaml:"predict_path" json:"predict_path"`
	PricePath   string `toml:"price_path" yaml:"price_path" json:"price_path"`

	// TimeoutSecs bounds each request, including reading the body.
	TimeoutSecs int `toml:"timeout_secs" yaml:"timeout_secs" json:"timeout_secs"`

	// MaxRequestsPerMinute enables a client-side limiter when positive.
	MaxRequestsPerMinute int `toml:"max_requests_per_minute" yaml:"max_requests_per_minute" json:"max_requests_per_minute"`
}

// UIConfig holds settings of the interactive screen.
type UIConfig struct {
	// Chips are the quick-select tickers shown under the input.
	Chips []string `toml:"chips" yaml:"chips" json:"chips"`

	// Spinner is one of "ticker", "line" or "dots".
	Spinner string `toml:"spinner" yaml:"spinner" json:"spinner"`

	// ShowTimer shows the elapsed time next to the loading spinner.
	ShowTimer bool `toml:"show_timer" yaml:"show_timer" json:"show_timer"`
}

// WatchConfig holds settings of the scheduled watch command.
type WatchConfig struct {
	Tickers []string `toml:"tickers" yaml:"tickers" json:"tickers"`

	// Schedule is a cron expression with a leading seconds field.
	Schedule string `toml:"schedule" yaml:"schedule" json:"schedule"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level" json:"level"`

	// Path of the log file. Empty means ~/.stockpulse/logs/stockpulse.log.
	Path string `toml:"path" yaml:"path" json:"path"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// CurrentVersion is the config schema version written by Save.
const CurrentVersion = "1"

// DefaultChips are the quick-select tickers of a fresh install.
var DefaultChips = []string{"AAPL", "MSFT", "GOOGL", "TSLA", "AMZN", "NVDA"}

// Spinner names accepted by ui.spinner.
var validSpinners = map[string]bool{"ticker": true, "line": true, "dots": true}

// Log levels accepted by log.level.
var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		API: APIConfig{
			BaseURL:     "http://127.0.0.1:5001",
			PredictPath: "/api/predict",
			PricePath:   "/api/price",
			TimeoutSecs: 30,
		},
		UI: UIConfig{
			Chips:     append([]string(nil), DefaultChips...),
			Spinner:   "ticker",
			ShowTimer: true,
		},
		Watch: WatchConfig{
			Tickers:  []string{"AAPL", "MSFT"},
			Schedule: "0 */5 * * * *",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the stockpulse configuration directory path.
// STOCKPULSE_HOME replaces ~/.stockpulse when set.
func ConfigDir() (string, error) {
	if dir := os.Getenv("STOCKPULSE_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".stockpulse"), nil
}

func configPath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) { return configPath("config.toml") }

// ConfigPathYAML returns the path to the YAML config file.
func ConfigPathYAML() (string, error) { return configPath("config.yaml") }

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) { return configPath("config.json") }

// LogPath returns the log file path, honoring log.path.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "stockpulse.log"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ActivePath returns the first config file that exists, in load order.
// It returns "" when none does.
func ActivePath() string {
	for _, fn := range []func() (string, error){ConfigPathTOML, ConfigPathYAML, ConfigPathJSON} {
		path, err := fn()
		if err != nil {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file.
// Tries TOML, then YAML, then JSON, and falls back to defaults.
// A .env file in the working directory and STOCKPULSE_* variables are
// applied last.
func Load() (*Config, error) {
	path := ActivePath()
	if path == "" {
		cfg := Default()
		if err := cfg.finish(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific file path with full
// validation. The format is chosen by extension; anything unknown is TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := decodeFile(cfg, path); err != nil {
		return nil, err
	}
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadFile loads only what is written in path over the defaults, without
// .env or environment overrides. Editing commands use it so overrides are
// never persisted. A missing file yields the defaults.
func ReadFile(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if err := decodeFile(cfg, path); err != nil {
			return nil, err
		}
	}
	cfg.SetDefaults()
	return cfg, nil
}

func decodeFile(cfg *Config, path string) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = LoadJSON(cfg, path)
	case ".yaml", ".yml":
		err = LoadYAML(cfg, path)
	default:
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	return nil
}

// finish applies .env and environment overrides, fills defaults and validates.
func (c *Config) finish() error {
	loadDotEnv()
	c.ApplyEnvOverrides()
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// loadDotEnv loads .env from the working directory. Variables that are
// already set are left alone.
func loadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadYAML decodes a YAML file over cfg.
func LoadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read YAML file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode YAML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveToPath writes cfg in the format implied by the extension of path.
func SaveToPath(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(cfg, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	default:
		data, err = encodeTOML(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func encodeTOML(cfg *Config) ([]byte, error) {
	var b strings.Builder
	b.WriteString("# stockpulse configuration file\n")
	b.WriteString("# Generated by stockpulse - edit with care\n\n")
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
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

// cronParser matches the scheduler in internal/watch.
var cronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Validate validates the configuration and returns any errors as
// ValidateErrors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Host == "" ||
		(u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: fmt.Sprintf("must be an http or https URL, got %q", c.API.BaseURL),
		})
	}
	for _, p := range []struct{ field, value string }{
		{"api.predict_path", c.API.PredictPath},
		{"api.price_path", c.API.PricePath},
	} {
		if !strings.HasPrefix(p.value, "/") {
			errs = append(errs, ValidationError{Field: p.field, Message: fmt.Sprintf("must start with '/', got %q", p.value)})
		}
	}
	if c.API.TimeoutSecs <= 0 || c.API.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{
			Field:   "api.timeout_secs",
			Message: fmt.Sprintf("must be between 1 and 600, got %d", c.API.TimeoutSecs),
		})
	}
	if c.API.MaxRequestsPerMinute < 0 {
		errs = append(errs, ValidationError{
			Field:   "api.max_requests_per_minute",
			Message: fmt.Sprintf("must not be negative, got %d", c.API.MaxRequestsPerMinute),
		})
	}

	if len(c.UI.Chips) > 9 {
		errs = append(errs, ValidationError{
			Field:   "ui.chips",
			Message: fmt.Sprintf("at most 9 chips are supported, got %d", len(c.UI.Chips)),
		})
	}
	for _, chip := range c.UI.Chips {
		if util.NormalizeSymbol(chip) == "" {
			errs = append(errs, ValidationError{Field: "ui.chips", Message: "chips must not be empty"})
			break
		}
	}
	if !validSpinners[c.UI.Spinner] {
		errs = append(errs, ValidationError{
			Field:   "ui.spinner",
			Message: fmt.Sprintf("must be one of ticker, line, dots, got %q", c.UI.Spinner),
		})
	}

	if _, err := cronParser.Parse(c.Watch.Schedule); err != nil {
		errs = append(errs, ValidationError{
			Field:   "watch.schedule",
			Message: fmt.Sprintf("invalid cron expression %q: %v", c.Watch.Schedule, err),
		})
	}

	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error, got %q", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values with defaults and normalizes ticker lists.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Version == "" {
		c.Version = d.Version
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.API.PredictPath == "" {
		c.API.PredictPath = d.API.PredictPath
	}
	if c.API.PricePath == "" {
		c.API.PricePath = d.API.PricePath
	}
	if c.API.TimeoutSecs == 0 {
		c.API.TimeoutSecs = d.API.TimeoutSecs
	}
	if c.UI.Spinner == "" {
		c.UI.Spinner = d.UI.Spinner
	}
	if c.Watch.Schedule == "" {
		c.Watch.Schedule = d.Watch.Schedule
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	c.Log.Level = strings.ToLower(c.Log.Level)

	c.UI.Chips = normalizeList(c.UI.Chips)
	c.Watch.Tickers = normalizeList(c.Watch.Tickers)
}

func normalizeList(in []string) []string {
	if in == nil {
		return nil
	}
	return util.SplitList(strings.Join(in, ","))
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - STOCKPULSE_API_URL: overrides api.base_url
//   - STOCKPULSE_TIMEOUT_SECS: overrides api.timeout_secs
//   - STOCKPULSE_CHIPS: comma separated, overrides ui.chips
//   - STOCKPULSE_WATCH_TICKERS: comma separated, overrides watch.tickers
//   - STOCKPULSE_WATCH_SCHEDULE: overrides watch.schedule
//   - STOCKPULSE_LOG_LEVEL: overrides log.level
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("STOCKPULSE_API_URL"); v != "" {
		c.API.BaseURL = v
	}

	if v := os.Getenv("STOCKPULSE_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.API.TimeoutSecs = secs
		} else {
			fmt.Fprintf(os.Stderr, "Warning: ignoring STOCKPULSE_TIMEOUT_SECS=%q: %v\n", v, err)
		}
	}

	if v, ok := os.LookupEnv("STOCKPULSE_CHIPS"); ok {
		c.UI.Chips = util.SplitList(v)
	}

	if v, ok := os.LookupEnv("STOCKPULSE_WATCH_TICKERS"); ok {
		c.Watch.Tickers = util.SplitList(v)
	}

	if v := os.Getenv("STOCKPULSE_WATCH_SCHEDULE"); v != "" {
		c.Watch.Schedule = v
	}

	if v := os.Getenv("STOCKPULSE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "api.base_url").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "api.timeout_secs").
// String values are converted to the field's type; lists are comma separated.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// lookup walks the dotted key down the struct.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(part[:1]))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(lower == "1" || lower == "true" || lower == "yes")
			return nil
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				field.Set(reflect.ValueOf(util.SplitList(strVal)))
				return nil
			}
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if isNumeric(val.Kind()) && isNumeric(field.Kind()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation, in struct order.
func GetAllKeys() []string {
	var keys []string
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		section := tagName(f)
		if f.Type.Kind() != reflect.Struct {
			keys = append(keys, section)
			continue
		}
		for j := 0; j < f.Type.NumField(); j++ {
			keys = append(keys, section+"."+tagName(f.Type.Field(j)))
		}
	}
	return keys
}

func tagName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
	if name == "" {
		return strings.ToLower(f.Name)
	}
	return name
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	clone.UI.Chips = append([]string(nil), c.UI.Chips...)
	clone.Watch.Tickers = append([]string(nil), c.Watch.Tickers...)
	return &clone
}

// String returns a string representation of the config for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
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

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
