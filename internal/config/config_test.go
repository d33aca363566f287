package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arrayinfo.yaml")
	content := `
logging:
  level: debug
  format: json

formats:
  mat:
    description: "written by the test suite"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "written by the test suite", cfg.Formats.Mat["description"])
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("ARRAYINFO_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadNormalizesLevelCase(t *testing.T) {
	t.Setenv("ARRAYINFO_LOGGING_LEVEL", "DEBUG")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsInvalidLevel(t *testing.T) {
	t.Setenv("ARRAYINFO_LOGGING_LEVEL", "verbose")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oneof")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidateRejectsBadFormat(t *testing.T) {
	cfg := &Config{Logging: LoggingConfig{Level: "info", Format: "xml"}}
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oneof")
}

func TestMatFileOptions(t *testing.T) {
	cfg := &Config{Formats: FormatsConfig{Mat: map[string]any{"description": "banner"}}}
	opts, err := MatFileOptions(cfg)
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	// Empty section yields no options.
	opts, err = MatFileOptions(&Config{})
	require.NoError(t, err)
	assert.Empty(t, opts)
}

func TestMatFileOptionsRejectsWrongType(t *testing.T) {
	cfg := &Config{Formats: FormatsConfig{Mat: map[string]any{"description": []int{1, 2}}}}
	_, err := MatFileOptions(cfg)
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(LoggingConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	require.NotNil(t, log)

	log, err = NewLogger(LoggingConfig{Level: "error", Format: "json"})
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	_, err := NewLogger(LoggingConfig{Level: "loud", Format: "console"})
	require.Error(t, err)
}
