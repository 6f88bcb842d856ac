package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/tourguide"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tourguide",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tourguide version %s\n", strings.TrimSpace(tourguide.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
