package config

import "time"

// ProductionEnv is the app_env value that enables production mode.
const ProductionEnv = "production"

// Default values for configuration
const (
	DefaultDatabasePath        = "data/bot.sqlite"
	DefaultDatabaseBusyTimeout = 5 * time.Second

	DefaultAppEnv = "development"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	// SQLMaintenanceTask is the scheduler key of the WAL checkpoint task.
	SQLMaintenanceTask            = "sql_maintenance"
	DefaultSQLMaintenanceSchedule = "0 0 4 * * *"
)

var defaults = map[string]any{
	"database_path":         DefaultDatabasePath,
	"database_busy_timeout": DefaultDatabaseBusyTimeout,
	"app_env":               DefaultAppEnv,
	"log_level":             DefaultLogLevel,
	"log_format":            DefaultLogFormat,

	"scheduler.tasks." + SQLMaintenanceTask + ".enabled":  true,
	"scheduler.tasks." + SQLMaintenanceTask + ".schedule": DefaultSQLMaintenanceSchedule,
}

// envKeys are bound explicitly so that keys without a default (bot_token)
// and nested keys are still picked up from the environment.
var envKeys = []string{
	"bot_token",
	"database_path",
	"database_busy_timeout",
	"app_env",
	"log_level",
	"log_format",
	"scheduler.tasks." + SQLMaintenanceTask + ".enabled",
	"scheduler.tasks." + SQLMaintenanceTask + ".schedule",
}
