package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"go-task-manager/internal/config"
	"go-task-manager/internal/database"
	"go-task-manager/internal/logger"
	"go-task-manager/internal/routes"
	"go-task-manager/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, database.OptionsFromConfig(cfg), log)
	if err != nil {
		log.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	if cfg.DBAutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Error("failed to migrate database", slog.Any("error", err))
			os.Exit(1)
		}
		log.Info("database schema is up to date")
	}

	r := routes.SetupRouter(db, cfg, log)

	srv := server.New(r, cfg.AppPort, cfg.ReadTimeout, cfg.WriteTimeout, cfg.ShutdownTimeout, log)
	srv.OnShutdown("database", func(context.Context) error {
		return database.Close(db)
	})

	log.Info("starting server", slog.Int("port", cfg.AppPort), slog.String("env", cfg.AppEnv))
	if err := srv.Run(ctx); err != nil {
		log.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
}
