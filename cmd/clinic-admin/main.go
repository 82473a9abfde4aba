// main is the entry point of the clinic administration service.
//
// COMMANDS:
//
//	clinic-admin init-db --config=config/local.yaml
//	    create the database schema and the default admin login
//
//	clinic-admin serve --config=config/local.yaml
//	    run the HTTP API until Ctrl+C / SIGTERM
//
// The config path can also come from the CONFIG_PATH environment variable.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/clinic-admin/internal/config"
	"github.com/aanand-mishra/clinic-admin/internal/credential"
	"github.com/aanand-mishra/clinic-admin/internal/http/router"
	"github.com/aanand-mishra/clinic-admin/internal/storage/sqlite"
)

const version = "1.0.0"

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "clinic-admin",
		Short:         "Clinic administration API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration YAML file")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(initDBCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(config.MustLoad(*configPath))
		},
	}
}

func initDBCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the database tables and a default user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.MustLoad(*configPath)
			slog.SetDefault(setupLogger(cfg.Env))

			storage, err := sqlite.New(cfg)
			if err != nil {
				return err
			}
			defer storage.Close()

			if err := credential.Seed(cmd.Context(), storage, cfg.Admin.Username, cfg.Admin.Password); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Database initialized.")
			return nil
		},
	}
}

func runServer(cfg *config.Config) error {
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting clinic-admin",
		slog.String("env", cfg.Env),
		slog.String("version", version),
	)

	// sqlite.New opens the database file and creates any missing tables.
	storage, err := sqlite.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialise storage: %w", err)
	}
	defer storage.Close()

	log.Info("storage initialised", slog.String("path", cfg.StoragePath))

	server := &http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      router.New(storage, log),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	// ListenAndServe blocks, so it runs in its own goroutine and reports
	// back on errCh; main waits for either a failure or a signal.
	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server encountered an error: %w", err)
	case <-done:
	}

	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	// Shutdown stops accepting connections and waits for in-flight
	// requests until ctx expires.
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server gracefully: %w", err)
	}

	log.Info("server stopped gracefully")
	return nil
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}
}
