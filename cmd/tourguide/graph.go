package main

import (
	"fmt"

	"github.com/aretw0/tourguide"
	"github.com/aretw0/tourguide/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <tour>",
	Short: "Export the tour as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart of the tour: steps in order, conditional steps
with their show_on expression and skip edge, and back-button edges.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := tourguide.New().Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		current, _ := cmd.Flags().GetString("current")
		visited, _ := cmd.Flags().GetStringSlice("visited")
		if current != "" || len(visited) > 0 {
			overlay = &graph.GraphOverlay{CurrentStep: current, VisitedSteps: visited}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(def, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("current", "", "Highlight this step as current")
	graphCmd.Flags().StringSlice("visited", nil, "Highlight these steps as visited")
}
