// cmd/xtherma/root.go
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tamzrod/xtherma-fp/internal/config"
	"github.com/tamzrod/xtherma-fp/internal/coordinator"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "xtherma",
	Short: "Xtherma heat pump client",
	Long: `xtherma reads and writes an Xtherma heat pump through the Fernportal
REST API (read-only) or locally over Modbus/TCP.

Every command takes the path of a YAML config file:

  xtherma:
    transport: modbus
    modbus:
      endpoint: 192.168.1.50:502`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "Override log.level (debug, info, warn, error)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig runs the Load, Validate, Normalize pipeline.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	if logLevel != "" {
		cfg.Xtherma.Log.Level = logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)
	return cfg, nil
}

func newLogger(x config.XthermaConfig) *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: x.Log.SlogLevel()})
	return slog.New(h).With("device", x.Name)
}

// open loads the config and returns a coordinator that is already set up.
func open(cmd *cobra.Command, path string) (*coordinator.Coordinator, *slog.Logger, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(cfg.Xtherma)

	co, err := coordinator.Build(cfg.Xtherma, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("coordinator build failed: %w", err)
	}
	if err := co.Setup(cmd.Context()); err != nil {
		_ = co.Close(cmd.Context())
		return nil, nil, err
	}
	return co, logger, nil
}
