package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadDotEnv loads variables from the given .env files (".env" when none are
// given) into the process environment. Variables that are already set win.
// A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Debug("No .env file found", "path", f)
				continue
			}
			return fmt.Errorf("%w: failed to load %s: %v", ErrConfiguration, f, err)
		}
		slog.Debug("Loaded .env file", "path", f)
	}
	return nil
}

// Load builds the configuration from:
// 1. Default values
// 2. the YAML file at configPath (optional, skipped when missing or empty path)
// 3. environment variables
//
// It returns an error wrapping ErrConfiguration if the file can't be read or
// the result fails validation, e.g. when BOT_TOKEN is missing.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("%w: failed to bind env for %s: %v", ErrConfiguration, key, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: failed to read config file %s: %v", ErrConfiguration, configPath, err)
			}
			slog.Debug("Configuration file not found, using defaults and environment", "path", configPath)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	cfg.BotToken = strings.TrimSpace(cfg.BotToken)
	for name, task := range cfg.Scheduler.Tasks {
		task.Schedule = strings.TrimSpace(task.Schedule)
		cfg.Scheduler.Tasks[name] = task
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}
