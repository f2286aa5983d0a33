// Package cmd implements the jotbot command line interface.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/jotbot/internal/config"
)

var configPathFlag string

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jotbot",
		Short: "Telegram productivity assistant backed by Postgres and Ollama",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd.Context())
		},
	}
	cmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "config file path (default ~/.jotbot/config.json5)")

	cmd.AddCommand(doctorCmd())
	cmd.AddCommand(configCmd())
	cmd.AddCommand(itemsCmd())
	return cmd
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func resolveConfigPath() string {
	if configPathFlag != "" {
		return configPathFlag
	}
	return config.DefaultPath()
}

// setupLogging installs the default slog handler for the configured level.
func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
