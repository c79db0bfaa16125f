package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JayDad/energy-insight-ui/internal/api"
	"github.com/JayDad/energy-insight-ui/internal/app"
	"github.com/JayDad/energy-insight-ui/internal/config"
	"github.com/JayDad/energy-insight-ui/internal/logger"
	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	output := cfg.LogFile
	if output == "" {
		output = "stdout"
	}
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: output,
		Pretty: !cfg.IsProduction(),
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Str("env", cfg.Env).Msg("Starting application...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	components, err := app.Build(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize components")
	}
	defer func() {
		log.Info().Msg("Closing store and cache...")
		if err := components.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing components")
		}
	}()

	deps := api.Deps{
		Config: cfg,
		Source: components.Source,
		Mock:   components.Mock,
		Store:  components.Store,
		Cache:  components.Cache,
		Market: components.Market,
	}
	// keep the interface nil when there is no refresher
	if components.Refresher != nil {
		deps.Refresher = components.Refresher
	}

	server := api.NewApp(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
	})
	api.SetupRoutes(server, api.NewHandlers(deps))

	if cfg.RefreshInterval > 0 && components.Refresher != nil {
		go components.Refresher.Start(ctx, cfg.RefreshInterval)
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := server.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
