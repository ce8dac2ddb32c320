// Package main contains the entrypoint for the echo bot.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbot "github.com/go-telegram/bot"

	"github.com/edgard/echobot/internal/bot"
	"github.com/edgard/echobot/internal/bot/handlers"
	"github.com/edgard/echobot/internal/bot/tasks"
	"github.com/edgard/echobot/internal/config"
	"github.com/edgard/echobot/internal/database"
	"github.com/edgard/echobot/internal/logger"
	"github.com/edgard/echobot/internal/telegram"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

// run wires config, logger, audit database, Telegram client and scheduler,
// blocks until shutdown and returns the process exit code: 1 when the
// configuration is unusable or the client can't start, 0 otherwise.
func run(ctx context.Context, args []string) int {
	flags := flag.NewFlagSet("bot", flag.ContinueOnError)
	configPath := flags.String("config", "config.yaml", "Path to an optional YAML configuration file")
	envFile := flags.String("env-file", ".env", "Path to an optional .env file")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	if err := config.LoadDotEnv(*envFile); err != nil {
		slog.Error("Failed to load .env file", "path", *envFile, "error", err)
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration; BOT_TOKEN must be set", "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.LogLevel, cfg.LogJSON())
	log.Info("Logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat, "production", cfg.IsProduction())

	// In production the process keeps the default signal disposition.
	if !cfg.IsProduction() {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
	}

	conn := database.NewConn(cfg.DatabasePath, cfg.DatabaseBusyTimeout)
	defer conn.Close()
	if _, err := conn.Get(ctx); err != nil {
		log.Warn("Audit database unavailable, messages will not be logged until it opens",
			"path", conn.Path(), "error", err)
	}
	audit := database.NewAuditLog(conn, log)

	tg, err := telegram.NewTelegramBot(cfg.BotToken, log,
		tgbot.WithMiddlewares(
			handlers.Recover(log),
			logger.Middleware(log),
			handlers.AuditInbound(audit),
		),
	)
	if err != nil {
		log.Error("Failed to launch bot", "error", err)
		return 1
	}

	deps := handlers.HandlerDeps{
		Logger: log,
		Sender: handlers.NewAuditedSender(tg, audit, log),
	}
	if _, err := telegram.RegisterHandlers(tg, log, handlers.RegisterAllCommands(deps)); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	sched, err := bot.NewScheduler(log, cfg.Scheduler, tasks.RegisterAllTasks(tasks.TaskDeps{Logger: log, Store: audit}))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	if err := bot.NewBot(log, tg, sched).Run(ctx); err != nil {
		log.Error("Bot stopped due to error", "error", err)
		return 1
	}

	log.Info("Received shutdown signal, bot stopped gracefully.")
	return 0
}
