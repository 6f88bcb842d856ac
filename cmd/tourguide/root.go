package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tourguide/internal/config"
	"github.com/spf13/cobra"
)

// cfg is resolved before every command runs, from defaults, the config
// file, TOURGUIDE_* variables and flags.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "tourguide",
	Short: "Tourguide runs step-by-step guided tours",
	Long: `Tourguide drives guided tours defined in YAML, JSON or a directory of
Markdown steps. Tours run in the terminal, or behind an HTTP or MCP server
that enforces a single active tour.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		var err error
		cfg, err = config.Load(path, cmd.Flags())
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./tourguide.yaml or ~/.config/tourguide/tourguide.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error or off")
}

// addRedisFlags registers the flags selecting the cross-process registry.
func addRedisFlags(cmd *cobra.Command) {
	cmd.Flags().String("redis", "", "Redis address for the shared active-tour registry")
	cmd.Flags().String("redis-prefix", "tourguide:", "Key prefix in Redis")
	cmd.Flags().Duration("redis-ttl", 0, "Expiry of the active-tour key (0 keeps it until released)")
}
