// Package config loads the bot configuration from defaults, an optional YAML
// file, a .env file and the process environment, and validates the result.
package config

import (
	"errors"
	"time"
)

// ErrConfiguration wraps every failure to produce a usable configuration.
var ErrConfiguration = errors.New("configuration error")

// Config defines the application configuration. Values can be set through
// environment variables (e.g. BOT_TOKEN, DATABASE_PATH) or config.yaml.
type Config struct {
	BotToken string `mapstructure:"bot_token" validate:"required"`

	DatabasePath        string        `mapstructure:"database_path"         validate:"required"`
	DatabaseBusyTimeout time.Duration `mapstructure:"database_busy_timeout" validate:"min=0"`

	AppEnv string `mapstructure:"app_env"`

	LogLevel  string `mapstructure:"log_level"  validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"required,oneof=json text"`

	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// SchedulerConfig lists the scheduled tasks by name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig configures a single scheduled task. Schedule is a cron
// expression with an optional leading seconds field.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// IsProduction reports whether the bot runs in production mode, where no
// graceful-shutdown signal handlers are installed.
func (c *Config) IsProduction() bool {
	return c.AppEnv == ProductionEnv
}

// LogJSON reports whether logs should be written as JSON.
func (c *Config) LogJSON() bool {
	return c.LogFormat == "json"
}
