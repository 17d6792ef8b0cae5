// Package config loads interpreter settings from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ava12/pseudo"
)

// EnvVar names environment variable containing configuration file path.
const EnvVar = "PSEUDO_CONFIG"

// Default values.
const (
	DefaultTimeout   = 5 * time.Second
	DefaultColor     = "auto"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Error codes used by config package:
const (
	ReadError = pseudo.ConfigErrors + iota
	DecodeError
	UnsupportedFormatError
	InvalidValueError
)

// Config contains interpreter settings.
type Config struct {
	Language      string    `toml:"language" yaml:"language"`
	LanguageFile  string    `toml:"language_file" yaml:"language_file"`
	Timeout       Duration  `toml:"timeout" yaml:"timeout"`
	Color         string    `toml:"color" yaml:"color"`
	ShowVariables bool      `toml:"show_variables" yaml:"show_variables"`
	Log           LogConfig `toml:"log" yaml:"log"`
}

type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Duration is a time.Duration decoded from strings like "500ms" or "2s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration file, the file must exist.
// Format is chosen by extension: .yaml and .yml are YAML, anything else is TOML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pseudo.FormatError(ReadError, "cannot read config file %s: %s", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	default:
		_, err = toml.Decode(string(data), &cfg)
	}
	if err != nil {
		return nil, pseudo.FormatError(DecodeError, "failed to parse config %s: %s", path, err)
	}

	cfg.applyDefaults()
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	err := dec.Decode(cfg)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Discover loads configuration from explicit path if not empty,
// otherwise from PSEUDO_CONFIG, ./pseudo.toml or ~/.config/pseudo/config.toml, whichever is found first.
// Returns defaults and empty path if no file is found.
func Discover(explicit string) (*Config, string, error) {
	path := Resolve(explicit)
	if path == "" {
		return Default(), "", nil
	}

	cfg, err := Load(path)
	return cfg, path, err
}

// Resolve returns configuration file path or empty string.
func Resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if path := os.Getenv(EnvVar); path != "" {
		return path
	}

	candidates := []string{"./pseudo.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "pseudo", "config.toml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (c *Config) applyDefaults() {
	if c.Timeout.Duration == 0 {
		c.Timeout.Duration = DefaultTimeout
	}
	if c.Color == "" {
		c.Color = DefaultColor
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// Validate checks enumerated values and timeout.
func (c *Config) Validate() error {
	if c.Timeout.Duration < 0 {
		return invalidValueError("timeout", c.Timeout.String())
	}

	switch c.Color {
	case "auto", "always", "never":
	default:
		return invalidValueError("color", c.Color)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return invalidValueError("log.format", c.Log.Format)
	}
	return nil
}

func invalidValueError(key, value string) *pseudo.Error {
	return pseudo.FormatError(InvalidValueError, "invalid value %q of config key %s", value, key)
}

// SlogLevel converts level name (debug, info, warn, error) to slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, invalidValueError("log.level", l.Level)
	}
	return level, nil
}

// NewLogger creates logger writing to w according to log settings.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := l.SlogLevel()
	if err != nil {
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
