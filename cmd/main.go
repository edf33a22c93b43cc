package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"countdown_timer/internal/config"
	"countdown_timer/internal/handlers"
	"countdown_timer/internal/logger"
	"countdown_timer/internal/repository"
	"countdown_timer/internal/repository/db"
	"countdown_timer/internal/server"
	"countdown_timer/internal/service"
)

// @title                       timerd API
// @version                     1.0
// @description                 Countdown and elapsed-time timer with scheduled actions, audit log and a live display stream.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.Log.Level)

	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DB.Path, "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	presets, err := service.LoadPresets(cfg.Presets.Path)
	if err != nil {
		log.Fatalw("failed to load presets", "path", cfg.Presets.Path, "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(service.Deps{
		Repos:   repos,
		Config:  cfg,
		Presets: presets,
		Log:     log,
	})
	apiHandler := handlers.NewHandler(services, log)

	srv := server.New(cfg.HTTP, apiHandler.InitRoutes())
	runHTTPServer(srv, log)
	log.Infow("timerd started", "addr", srv.Addr(), "presets", len(presets),
		"start_at", cfg.Timer.StartAt, "count_down", cfg.Timer.CountDown)

	waitForShutdown(srv, services.Timer, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown blocks until SIGINT/SIGTERM, then drains HTTP and closes
// the timer so no armed action fires during teardown.
func waitForShutdown(srv *server.Server, t service.Timer, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	if err := srv.Shutdown(context.Background()); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
	t.Close()
}
