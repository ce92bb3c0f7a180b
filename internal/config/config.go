package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = "trajectory"
	envPrefix  = "TRAJECTORY"

	KeyPredictEndpoint = "predict.endpoint"
	KeyPredictTimeout  = "predict.timeout"
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
	KeyMetricsListen   = "metrics.listen"

	DefaultPredictEndpoint = "http://127.0.0.1:8000"
	DefaultPredictTimeout  = 15 * time.Second
	DefaultLogLevel        = "warn"
	DefaultLogFormat       = "text"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	PredictEndpoint string
	PredictTimeout  time.Duration
	LogLevel        string
	LogFormat       string
	MetricsListen   string
	// File is the config file that was read, empty when none was found.
	File string
}

// Load resolves configuration from defaults, the config file and
// TRAJECTORY_* environment variables, in increasing priority. An explicit path
// must exist; the default location may be absent.
func Load(cfg *viper.Viper, explicitPath string) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	cfg.SetDefault(KeyPredictEndpoint, DefaultPredictEndpoint)
	cfg.SetDefault(KeyPredictTimeout, DefaultPredictTimeout)
	cfg.SetDefault(KeyLogLevel, DefaultLogLevel)
	cfg.SetDefault(KeyLogFormat, DefaultLogFormat)
	cfg.SetDefault(KeyMetricsListen, "")

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if explicitPath != "" {
		cfg.SetConfigFile(explicitPath)
		if err := cfg.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", explicitPath, err)
		}
	} else {
		cfg.SetConfigName(configName)
		cfg.SetConfigType(configType)
		if dir, err := defaultDir(); err == nil {
			cfg.AddConfigPath(dir)
		}

		if err := cfg.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	out := Config{
		PredictEndpoint: strings.TrimSpace(cfg.GetString(KeyPredictEndpoint)),
		PredictTimeout:  cfg.GetDuration(KeyPredictTimeout),
		LogLevel:        cfg.GetString(KeyLogLevel),
		LogFormat:       cfg.GetString(KeyLogFormat),
		MetricsListen:   strings.TrimSpace(cfg.GetString(KeyMetricsListen)),
		File:            cfg.ConfigFileUsed(),
	}

	if err := out.validate(); err != nil {
		return Config{}, err
	}

	return out, nil
}

func (c Config) validate() error {
	if c.PredictEndpoint == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalidConfig, KeyPredictEndpoint)
	}
	if c.PredictTimeout <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, KeyPredictTimeout)
	}
	return nil
}

func defaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, configDir), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", configDir), nil
}
