// Command playersim generates synthetic player-behaviour telemetry.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/talgya/playersim/internal/logging"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "playersim",
		Short: "Player behaviour telemetry generator",
		Long: `playersim simulates a population of game players acquired day by day
and writes their acquisition, session, purchase and stage events.

Runs are reproducible: the same seed and options give the same events.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, _ := cmd.Flags().GetString("log-level")
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				level = "debug"
			}
			slog.SetDefault(logging.NewLogger(level, cmd.ErrOrStderr()))
		},
	}

	rootCmd.PersistentFlags().String("log-level", envOrDefault("PLAYERSIM_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("debug", false, "Shorthand for --log-level debug")

	rootCmd.AddCommand(
		newVersionCmd(),
		newEventsCmd(),
		newSummaryCmd(),
		newPresetsCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "playersim version %s\n", version)
			}
		},
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOrDefault(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}
