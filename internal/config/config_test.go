package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Server.EnableCORS)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.False(t, cfg.Calculator.Trace)
	assert.Equal(t, 1024, cfg.Calculator.MaxInputLength)
	assert.NoError(t, NewValidator().Validate(cfg))
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	configContent := `
server:
  address: ":9000"
  read_timeout: 60s
  enable_cors: false

logging:
  level: debug
  format: json

calculator:
  trace: true
  max_input_length: 64
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := NewLoader().WithConfigPath(configPath).WithEnv(noEnv).Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.False(t, cfg.Server.EnableCORS)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Calculator.Trace)
	assert.Equal(t, 64, cfg.Calculator.MaxInputLength)
}

func TestLoadFromNonExistentFile(t *testing.T) {
	cfg, err := NewLoader().WithConfigPath("/nonexistent/path/config.yaml").WithEnv(noEnv).Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server: [unclosed"), 0644))

	_, err := NewLoader().WithConfigPath(configPath).WithEnv(noEnv).Load()
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	env := envMap(map[string]string{
		"CALC_SERVER_ADDRESS":       "127.0.0.1:7000",
		"CALC_SERVER_WRITE_TIMEOUT": "3s",
		"CALC_LOG_LEVEL":            "warn",
		"CALC_TRACE":                "true",
		"CALC_MAX_INPUT_LENGTH":     "0",
	})

	cfg, err := NewLoader().WithEnv(env).Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Address)
	assert.Equal(t, 3*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Calculator.Trace)
	assert.Equal(t, 0, cfg.Calculator.MaxInputLength)
}

func TestEnvOverrideInvalidValue(t *testing.T) {
	env := envMap(map[string]string{"CALC_MAX_INPUT_LENGTH": "lots"})

	_, err := NewLoader().WithEnv(env).Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CALC_MAX_INPUT_LENGTH")
}

func TestPrecedence(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server:\n  address: \":9000\"\n"), 0644))

	env := envMap(map[string]string{"CALC_SERVER_ADDRESS": ":9100"})

	cfg, err := NewLoader().WithConfigPath(configPath).WithEnv(env).Load()
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Server.Address)

	cfg, err = NewLoader().
		WithConfigPath(configPath).
		WithEnv(env).
		WithCmdArgs(map[string]string{"server.address": ":9200"}).
		Load()
	require.NoError(t, err)
	assert.Equal(t, ":9200", cfg.Server.Address)
}

func TestCmdArgs(t *testing.T) {
	cfg, err := NewLoader().WithEnv(noEnv).WithCmdArgs(map[string]string{
		"logging.level":               "debug",
		"calculator.trace":            "true",
		"calculator.max_input_length": "16",
		"server.read_timeout":         "1m",
	}).Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Calculator.Trace)
	assert.Equal(t, 16, cfg.Calculator.MaxInputLength)
	assert.Equal(t, time.Minute, cfg.Server.ReadTimeout)
}

func TestCmdArgsErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown path", key: "server.port", val: "80"},
		{name: "not a struct", key: "calculator.trace.enabled", val: "true"},
		{name: "bad bool", key: "calculator.trace", val: "maybe"},
		{name: "bad duration", key: "server.read_timeout", val: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().WithEnv(noEnv).WithCmdArgs(map[string]string{tt.key: tt.val}).Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadRunsValidation(t *testing.T) {
	_, err := NewLoader().WithEnv(noEnv).WithCmdArgs(map[string]string{"logging.level": "chatty"}).Load()
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "logging.level", verrs[0].Field)
}

func TestLoggerConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.FilePath = "/tmp/calc.log"

	lc := cfg.Logging.LoggerConfig()
	assert.Equal(t, "info", lc.Level)
	assert.Equal(t, "/tmp/calc.log", lc.FilePath)
	assert.Equal(t, 100, lc.MaxSize)
}
