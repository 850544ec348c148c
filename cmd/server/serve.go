package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crimemap/backend/internal/delivery/http"
	"github.com/crimemap/backend/internal/service"
)

const sweepInterval = time.Minute

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	// Dependency Injection: Repositories
	source, cleanup, err := openSource(parent, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// Dependency Injection: Services
	records := service.NewRecordService(source)
	if _, err := records.Load(parent); err != nil {
		zap.L().Warn("initial record load failed, serving empty snapshot", zap.Error(err))
	}
	sessions := service.NewSessionManager(records, service.SessionOptions{
		Home:        cfg.Home(),
		Zoom:        cfg.DefaultZoom,
		IdleTimeout: cfg.SessionIdleTimeout,
	})
	analytics := service.NewAnalyticsService(records)

	bgCtx, stopBg := context.WithCancel(parent)
	sessions.Start(bgCtx, sweepInterval, cfg.RefreshInterval)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "CrimeMap API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	http.SetupRoutes(app, http.NewHandler(records, sessions, analytics))

	// Graceful shutdown
	go func() {
		zap.L().Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("data_source", cfg.DataSource),
			zap.String("env", cfg.Env),
		)
		if err := app.Listen(":" + cfg.Port); err != nil {
			zap.L().Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down server")
	stopBg()
	sessions.WaitBackground()
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		zap.L().Warn("server forced to shutdown", zap.Error(err))
	}
	zap.L().Info("server exited gracefully")
	return nil
}
