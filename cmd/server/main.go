package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dojolanza/cuotas/go-api-server/internal/alert"
	"github.com/dojolanza/cuotas/go-api-server/internal/auth"
	"github.com/dojolanza/cuotas/go-api-server/internal/bootstrap"
	"github.com/dojolanza/cuotas/go-api-server/internal/config"
	"github.com/dojolanza/cuotas/go-api-server/internal/router"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/database"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/logger"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/validator"
)

func main() {
	// Parse command line flags
	env := parseFlags()

	// Initialize logger
	logger.Setup(env)
	slog.Info("Iniciando el servidor de cuotas", "env", env)

	// Run application
	if err := run(env); err != nil {
		slog.Error("El servidor no pudo iniciarse", "error", err)
		os.Exit(1)
	}

	slog.Info("Servidor detenido", "env", env)
}

// parseFlags parses command line arguments
func parseFlags() string {
	env := flag.String("env", "local", "Environment (local|dev|production)")
	flag.Parse()
	return *env
}

// run contains the main application logic
func run(env string) error {
	// Create root context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}

	slog.Info("Variables de entorno cargadas")

	// Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("conectar a la base de datos: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Error al cerrar la base de datos", "error", err)
		}
	}()

	// Seed operator account on first boot
	if err := auth.EnsureDefaultAdmin(ctx, db.DB, cfg); err != nil {
		return fmt.Errorf("crear administrador por defecto: %w", err)
	}

	// Setup server
	srv, scheduler := setupServer(cfg, db)

	// Start the reminder scheduler when enabled
	if cfg.Alerts.Enabled {
		if err := scheduler.Start(); err != nil {
			return fmt.Errorf("iniciar programador de recordatorios: %w", err)
		}
		slog.Info("Programador de recordatorios iniciado",
			"daily", cfg.Alerts.DailySpec,
			"weekly", cfg.Alerts.WeeklySpec,
		)
	}
	defer scheduler.Stop()

	// Start server with graceful shutdown
	return startWithGracefulShutdown(ctx, srv, cfg.Server.GracefulTimeout)
}

// setupServer initializes and configures the HTTP server
func setupServer(cfg *config.Config, db *database.DB) (*bootstrap.Server, *alert.Scheduler) {
	// Bootstrap server with common setup
	boot := bootstrap.NewBootstrap(cfg)
	ginEngine := boot.SetupEngine()

	// Register common validators
	if err := validator.RegisterAll(); err != nil {
		slog.Error("No se pudieron registrar los validadores", "error", err)
		panic(err)
	}

	// Setup application-specific routes
	scheduler := router.Setup(ginEngine, cfg, db)

	slog.Info("Servidor configurado",
		"env", cfg.App.Env,
	)

	return bootstrap.New(cfg, ginEngine), scheduler
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
func startWithGracefulShutdown(ctx context.Context, srv *bootstrap.Server, gracefulTimeout time.Duration) error {
	// Channel to receive server errors
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		serverErrors <- srv.Start()
	}()

	// Channel to receive OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Wait for either server error or interrupt signal
	select {
	case err := <-serverErrors:
		// Server failed to start or stopped unexpectedly
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("error del servidor: %w", err)
		}
		return nil

	case sig := <-quit:
		// Received shutdown signal
		slog.Info("Señal de apagado recibida", "signal", sig.String())

		// Create shutdown context with timeout
		shutdownCtx, cancel := context.WithTimeout(ctx, gracefulTimeout)
		defer cancel()

		// Attempt graceful shutdown
		slog.Info("Apagando el servidor...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("apagado forzado del servidor: %w", err)
		}
		return nil
	}
}
