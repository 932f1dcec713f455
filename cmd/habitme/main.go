package main

import (
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"habitme/internal/cli"
	"habitme/internal/config"
	"habitme/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag

	Serve   cli.ServeCmd   `cmd:"" help:"Run the HTTP server." default:"1"`
	Stats   cli.StatsCmd   `cmd:"" help:"Print habit statistics as JSON."`
	Migrate cli.MigrateCmd `cmd:"" help:"Apply PostgreSQL migrations."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("habitme"),
		kong.Description("Daily habit tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	if err := kctx.Run(&cli.Context{Config: cfg, Log: log}); err != nil {
		log.Error("command failed", zap.String("command", kctx.Command()), zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}
