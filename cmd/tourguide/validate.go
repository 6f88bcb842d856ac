package main

import (
	"os"

	"github.com/aretw0/tourguide/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <tour>",
	Short: "Check a tour definition",
	Long: `Parses a tour and reports structural errors, show_on expressions that do
not compile and likely mistakes such as a back button on the first step.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")
		opts := cli.ValidateOptions{Path: args[0]}
		if cmd.Flags().Changed("predicates") {
			opts.Predicates, _ = cmd.Flags().GetStringSlice("predicates")
		}

		if watch {
			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()
			return cli.WatchValidate(ctx, opts, os.Stdout)
		}
		return cli.Validate(cmd.Context(), opts, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolP("watch", "w", false, "Validate again on every change")
	validateCmd.Flags().StringSlice("predicates", nil, "Named predicates show_on may call; others are reported")
}
