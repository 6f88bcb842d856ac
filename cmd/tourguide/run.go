package main

import (
	"os"

	"github.com/aretw0/tourguide/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var runCmd = &cobra.Command{
	Use:   "run <tour>",
	Short: "Run a tour in the terminal",
	Long: `Loads a tour definition (a YAML/JSON file or a step directory) and runs it.
On a terminal the tour opens full-screen; otherwise, or with --tui=false,
it reads line commands from standard input. Type 'help' for the list.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vars, _ := cmd.Flags().GetString("vars")
		debug, _ := cmd.Flags().GetBool("debug")
		plain, _ := cmd.Flags().GetBool("plain")
		noBanner, _ := cmd.Flags().GetBool("no-banner")
		width, _ := cmd.Flags().GetInt("width")

		tui := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		if cmd.Flags().Changed("tui") {
			tui, _ = cmd.Flags().GetBool("tui")
		}

		logLevel := cfg.Log.Level
		if !cmd.Flags().Changed("log-level") {
			// Logs share the terminal with the tour; stay quiet unless asked.
			logLevel = "off"
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.Execute(ctx, cli.RunOptions{
			Path:     args[0],
			Vars:     vars,
			LogLevel: logLevel,
			Debug:    debug,
			Plain:    plain,
			TUI:      tui,
			NoBanner: noBanner,
			Width:    width,
			Redis: cli.RedisOptions{
				Addr:   cfg.Redis.Addr,
				Prefix: cfg.Redis.Prefix,
				TTL:    cfg.Redis.TTL,
			},
		}, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("vars", "", "Initial show_on variables as a JSON object")
	runCmd.Flags().Bool("debug", false, "Log every tour and step event")
	runCmd.Flags().Bool("plain", false, "Print step text without Markdown rendering")
	runCmd.Flags().Bool("tui", false, "Full-screen mode (default when attached to a terminal)")
	runCmd.Flags().Bool("no-banner", false, "Skip the banner in line mode")
	runCmd.Flags().Int("width", 0, "Wrap width for step text (0 picks a default)")
	addRedisFlags(runCmd)
}
