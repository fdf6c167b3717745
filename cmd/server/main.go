package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/numclass/internal/infrastructure/config"
	"github.com/GriffinCanCode/numclass/internal/infrastructure/logging"
	"github.com/GriffinCanCode/numclass/internal/infrastructure/server"
)

var (
	port    string
	devMode bool
)

// rootCmd runs the HTTP service
var rootCmd = &cobra.Command{
	Use:   "numclass",
	Short: "Number classification API",
	Long: `Serves GET /api/classify-number?number=<n>, reporting primality,
perfection, Armstrong property, parity, digit sum and a fun fact.

Configuration is read from the environment (PORT, FUNFACT_URL, LOG_LEVEL, ...);
flags override it.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "Development mode (colored logs, debug level)")
	rootCmd.Flags().StringVarP(&port, "port", "p", "", "Server port (overrides PORT)")

	rootCmd.AddCommand(classifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if port != "" {
		cfg.Server.Port = port
	}
	if devMode {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development)
	defer func() { _ = logger.Sync() }()

	srv, err := server.NewServer(cfg, server.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("Shutdown signal received", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errChan
}
