package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdf-tools-server/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

var (
	settingsPath string
	port         string
)

var rootCmd = &cobra.Command{
	Use:   "pdf-tools-server",
	Short: "PDF tools HTTP server",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Flags win over the environment and .env
		if settingsPath != "" {
			if err := os.Setenv("SETTINGS_PATH", settingsPath); err != nil {
				return err
			}
		}
		if port != "" {
			if err := os.Setenv("PORT", port); err != nil {
				return err
			}
		}
		return nil
	},
	RunE: serveF,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  serveF,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "Path to settings.yml (overrides SETTINGS_PATH)")
	rootCmd.PersistentFlags().StringVar(&port, "port", "", "Listening port (overrides PORT)")
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(endpointsCmd)
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveF(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Wiring
	container, err := config.NewContainer(ctx)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer syncLogger(container)

	// start server
	server := &http.Server{
		Addr:              ":" + container.Config.GetServerPort(),
		Handler:           container.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server
	serverErr := make(chan error, 1)
	go func() {
		container.Logger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Graceful shutdown
	select {
	case err := <-serverErr:
		if err != nil {
			container.Logger.Error("Server failed to start", err)
			return err
		}
	case <-ctx.Done():
	}

	container.Logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Graceful shutdown failed", err)
		_ = server.Close()
	}

	container.Logger.Info("Server exited")
	return nil
}

func syncLogger(container *config.Container) {
	if s, ok := container.Logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}
