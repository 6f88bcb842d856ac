package main

import (
	"os"

	"github.com/aretw0/tourguide/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve <tour>...",
	Short: "Start the HTTP server",
	Long: `Loads every given tour and exposes them as a JSON API over HTTP, with
Server-Sent Events per tour and Prometheus metrics on /metrics.
At most one of the tours is active at a time; with --redis that holds
across every server sharing the same Redis.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.Serve(ctx, serveOptions(cmd, args), os.Stdout)
	},
}

// serveOptions maps the resolved config onto cli.ServeOptions.
func serveOptions(cmd *cobra.Command, args []string) cli.ServeOptions {
	vars, _ := cmd.Flags().GetString("vars")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.ServeOptions{
		Paths:    args,
		Vars:     vars,
		LogLevel: cfg.Log.Level,
		Debug:    debug,
		Port:     cfg.HTTP.Port,
		Metrics:  cfg.Metrics.Enabled,
		Redis: cli.RedisOptions{
			Addr:   cfg.Redis.Addr,
			Prefix: cfg.Redis.Prefix,
			TTL:    cfg.Redis.TTL,
		},
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().Bool("metrics", true, "Expose Prometheus metrics on /metrics")
	serveCmd.Flags().String("vars", "", "Initial show_on variables as a JSON object")
	serveCmd.Flags().Bool("debug", false, "Log every tour and step event")
	addRedisFlags(serveCmd)
}
