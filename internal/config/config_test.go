package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, Config{
		PredictEndpoint: DefaultPredictEndpoint,
		PredictTimeout:  DefaultPredictTimeout,
		LogLevel:        DefaultLogLevel,
		LogFormat:       DefaultLogFormat,
	}, cfg)
}

func TestLoadReadsXDGConfigFile(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir := filepath.Join(xdg, "trajectory")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[predict]
endpoint = "http://model.internal:9000"
timeout = "3s"

[log]
level = "debug"
format = "json"

[metrics]
listen = "127.0.0.1:9464"
`), 0o644))

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "http://model.internal:9000", cfg.PredictEndpoint)
	assert.Equal(t, 3*time.Second, cfg.PredictTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "127.0.0.1:9464", cfg.MetricsListen)
	assert.Equal(t, filepath.Join(dir, "config.toml"), cfg.File)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[predict]\nendpoint = \"http://from-file\"\n"), 0o644))

	t.Setenv("TRAJECTORY_PREDICT_ENDPOINT", "http://from-env")
	t.Setenv("TRAJECTORY_PREDICT_TIMEOUT", "250ms")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env", cfg.PredictEndpoint)
	assert.Equal(t, 250*time.Millisecond, cfg.PredictTimeout)
	assert.Equal(t, path, cfg.File)
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorContains(t, err, "read config file")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TRAJECTORY_PREDICT_TIMEOUT", "0s")

	_, err := Load(viper.New(), "")
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadMalformedConfigFile(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir := filepath.Join(xdg, "trajectory")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[predict\n"), 0o644))

	_, err := Load(viper.New(), "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}
