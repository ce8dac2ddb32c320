package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv makes sure none of the bot's variables leak in from the host.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BOT_TOKEN", "DATABASE_PATH", "DATABASE_BUSY_TIMEOUT", "APP_ENV",
		"LOG_LEVEL", "LOG_FORMAT",
		"SCHEDULER_TASKS_SQL_MAINTENANCE_ENABLED", "SCHEDULER_TASKS_SQL_MAINTENANCE_SCHEDULE",
	} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLoadRequiresToken(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err == nil {
		t.Fatalf("Load() = %+v, want error", cfg)
	}
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("Load() error = %v, want wrapping %v", err, ErrConfiguration)
	}

	t.Setenv("BOT_TOKEN", "   ")
	if _, err := Load(""); err == nil {
		t.Error("Load() with blank token returned nil error")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "123:abc")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BotToken != "123:abc" {
		t.Errorf("BotToken = %q", cfg.BotToken)
	}
	if cfg.DatabasePath != DefaultDatabasePath {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, DefaultDatabasePath)
	}
	if cfg.DatabaseBusyTimeout != DefaultDatabaseBusyTimeout {
		t.Errorf("DatabaseBusyTimeout = %v, want %v", cfg.DatabaseBusyTimeout, DefaultDatabaseBusyTimeout)
	}
	if cfg.IsProduction() {
		t.Error("IsProduction() = true by default")
	}
	if cfg.LogLevel != DefaultLogLevel || cfg.LogJSON() {
		t.Errorf("log = %q/%q, want %q/text", cfg.LogLevel, cfg.LogFormat, DefaultLogLevel)
	}

	task, ok := cfg.Scheduler.Tasks[SQLMaintenanceTask]
	if !ok {
		t.Fatalf("Scheduler.Tasks missing %q: %+v", SQLMaintenanceTask, cfg.Scheduler.Tasks)
	}
	if !task.Enabled || task.Schedule != DefaultSQLMaintenanceSchedule {
		t.Errorf("sql_maintenance task = %+v", task)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("DATABASE_PATH", "/tmp/audit.sqlite")
	t.Setenv("DATABASE_BUSY_TIMEOUT", "250ms")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SCHEDULER_TASKS_SQL_MAINTENANCE_ENABLED", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DatabasePath != "/tmp/audit.sqlite" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.DatabaseBusyTimeout != 250*time.Millisecond {
		t.Errorf("DatabaseBusyTimeout = %v", cfg.DatabaseBusyTimeout)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false with APP_ENV=production")
	}
	if cfg.LogLevel != "debug" || !cfg.LogJSON() {
		t.Errorf("log = %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.Scheduler.Tasks[SQLMaintenanceTask].Enabled {
		t.Error("sql_maintenance still enabled")
	}
}

func TestLoadFromFileWithEnvironmentOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
bot_token: "from-file"
database_path: "file.sqlite"
log_level: warn
scheduler:
  tasks:
    sql_maintenance:
      enabled: true
      schedule: "0 */5 * * * *"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DATABASE_PATH", "env.sqlite")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BotToken != "from-file" {
		t.Errorf("BotToken = %q, want from-file", cfg.BotToken)
	}
	if cfg.DatabasePath != "env.sqlite" {
		t.Errorf("DatabasePath = %q, want env.sqlite", cfg.DatabasePath)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if got := cfg.Scheduler.Tasks[SQLMaintenanceTask].Schedule; got != "0 */5 * * * *" {
		t.Errorf("schedule = %q", got)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown log level", env: map[string]string{"LOG_LEVEL": "verbose"}},
		{name: "unknown log format", env: map[string]string{"LOG_FORMAT": "xml"}},
		{name: "negative busy timeout", env: map[string]string{"DATABASE_BUSY_TIMEOUT": "-1s"}},
		{name: "enabled task without schedule", env: map[string]string{"SCHEDULER_TASKS_SQL_MAINTENANCE_SCHEDULE": " "}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("BOT_TOKEN", "123:abc")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(""); !errors.Is(err, ErrConfiguration) {
				t.Errorf("Load() error = %v, want %v", err, ErrConfiguration)
			}
		})
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "123:abc")
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Load() error = %v, want %v", err, ErrConfiguration)
	}
}

func TestLoadDotEnv(t *testing.T) {
	const (
		loadedKey = "ECHOBOT_TEST_DOTENV_LOADED"
		keptKey   = "ECHOBOT_TEST_DOTENV_KEPT"
	)
	t.Setenv(loadedKey, "")
	if err := os.Unsetenv(loadedKey); err != nil {
		t.Fatal(err)
	}
	t.Setenv(keptKey, "from-env")

	path := filepath.Join(t.TempDir(), ".env")
	content := loadedKey + "=from-file\n" + keptKey + "=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}

	if got := os.Getenv(loadedKey); got != "from-file" {
		t.Errorf("%s = %q, want from-file", loadedKey, got)
	}
	if got := os.Getenv(keptKey); got != "from-env" {
		t.Errorf("%s = %q, want from-env", keptKey, got)
	}
}
