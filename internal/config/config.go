// Package config loads collatz settings from config.yaml, the environment
// and command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/collatz/internal/codec"
	"github.com/mesh-intelligence/collatz/pkg/collatz"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// FileName is the config file inside the configuration directory.
	FileName = configFileName + "." + configFileType
)

// Config keys.
const (
	KeyVariant   = "variant"
	KeyMax       = "max"
	KeyUpBatch   = "up_batch"
	KeyFormat    = "format"
	KeyDataDir   = "data_dir"
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Validation errors.
var (
	ErrMaxInvalid       = errors.New("max must be at least 1 and below 2^64-1")
	ErrUpBatchInvalid   = errors.New("up_batch must be positive")
	ErrFormatUnknown    = errors.New("unknown output format")
	ErrLogLevelUnknown  = errors.New("unknown log level")
	ErrLogFormatUnknown = errors.New("unknown log format")
)

// Config holds the effective settings.
type Config struct {
	Variant   string `mapstructure:"variant" yaml:"variant"`
	Max       uint64 `mapstructure:"max" yaml:"max"`
	UpBatch   int    `mapstructure:"up_batch" yaml:"up_batch"`
	Format    string `mapstructure:"format" yaml:"format"`
	DataDir   string `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Variant:   collatz.Full.String(),
		Max:       1000,
		UpBatch:   collatz.DefaultUpBatch,
		Format:    string(codec.JSON),
		LogLevel:  "info",
		LogFormat: LogFormatText,
	}
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if _, err := collatz.ParseVariant(c.Variant); err != nil {
		return err
	}
	if c.Max == 0 || c.Max == ^uint64(0) {
		return ErrMaxInvalid
	}
	if c.UpBatch < 1 {
		return ErrUpBatchInvalid
	}
	if _, err := codec.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: %q", ErrFormatUnknown, c.Format)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrLogFormatUnknown, c.LogFormat)
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrLogLevelUnknown, c.LogLevel)
	}
	return level, nil
}

// flagKeys maps command-line flag names to config keys. Data directory
// flags are resolved separately by the paths package.
var flagKeys = map[string]string{
	"variant":   KeyVariant,
	"max":       KeyMax,
	"up-batch":  KeyUpBatch,
	"format":    KeyFormat,
	"log-level": KeyLogLevel,
}

// envKeys lists the keys that COLLATZ_* environment variables may set.
var envKeys = []string{KeyVariant, KeyMax, KeyUpBatch, KeyFormat, KeyLogLevel, KeyLogFormat}

// Load reads config.yaml from configDir, then applies COLLATZ_* environment
// variables and any flags in fs that were set explicitly. A missing
// config.yaml is not an error.
func Load(configDir string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault(KeyVariant, def.Variant)
	v.SetDefault(KeyMax, def.Max)
	v.SetDefault(KeyUpBatch, def.UpBatch)
	v.SetDefault(KeyFormat, def.Format)
	v.SetDefault(KeyDataDir, def.DataDir)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyLogFormat, def.LogFormat)

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	for _, key := range envKeys {
		if err := v.BindEnv(key, "COLLATZ_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", filepath.Join(configDir, FileName), err)
	}
	return &cfg, nil
}

// WriteDefault creates configDir and writes config.yaml with the default
// settings and dataDir, unless the file already exists. It reports whether
// the file was written.
func WriteDefault(configDir, dataDir string) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	path := filepath.Join(configDir, FileName)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := Default()
	cfg.DataDir = dataDir
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
