package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/collatz/pkg/collatz"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "variant: odd\nmax: 5000\nup_batch: 25\nformat: cbor\ndata_dir: /srv/collatz\nlog_level: debug\nlog_format: json\n")

	cfg, err := Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Variant:   "odd",
		Max:       5000,
		UpBatch:   25,
		Format:    "cbor",
		DataDir:   "/srv/collatz",
		LogLevel:  "debug",
		LogFormat: "json",
	}, *cfg)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "variant: odd\nmax: 5000\nformat: cbor\n")
	t.Setenv("COLLATZ_MAX", "700")
	t.Setenv("COLLATZ_FORMAT", "json")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("variant", "full", "")
	fs.Uint64("max", 1000, "")
	fs.String("format", "json", "")
	require.NoError(t, fs.Parse([]string{"--variant", "compact"}))

	cfg, err := Load(dir, fs)
	require.NoError(t, err)
	assert.Equal(t, "compact", cfg.Variant, "explicit flag wins")
	assert.Equal(t, uint64(700), cfg.Max, "env beats file")
	assert.Equal(t, "json", cfg.Format, "unset flag defaults do not override env")
}

func TestLoadFlagMax(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Uint64("max", 1000, "")
	require.NoError(t, fs.Parse([]string{"--max", "42"}))

	cfg, err := Load(t.TempDir(), fs)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), cfg.Max)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"unknown variant", "variant: triple\n", collatz.ErrUnknownVariant},
		{"zero max", "max: 0\n", ErrMaxInvalid},
		{"zero up batch", "up_batch: 0\n", ErrUpBatchInvalid},
		{"unknown format", "format: xml\n", ErrFormatUnknown},
		{"unknown log level", "log_level: loud\n", ErrLogLevelUnknown},
		{"unknown log format", "log_format: xml\n", ErrLogFormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)
			_, err := Load(dir, nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "variant: [unterminated\n")
	_, err := Load(dir, nil)
	assert.Error(t, err)
}

func TestWriteDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")

	created, err := WriteDefault(dir, "/data/collatz")
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	var written Config
	require.NoError(t, yaml.Unmarshal(data, &written))
	want := Default()
	want.DataDir = "/data/collatz"
	assert.Equal(t, want, written)

	// The written file loads back to the same settings.
	cfg, err := Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, want, *cfg)

	// An existing file is left alone.
	writeConfig(t, dir, "variant: short\n")
	created, err = WriteDefault(dir, "/elsewhere")
	require.NoError(t, err)
	assert.False(t, created)
	data, err = os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, "variant: short\n", string(data))
}

func TestWriteDefaultOmitsEmptyDataDir(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteDefault(dir, "")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "data_dir")
}
