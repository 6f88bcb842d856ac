package main

import (
	"log"
	"os"

	"github.com/aretw0/tourguide/internal/cli"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp <tour>...",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the given tours as MCP tools (list_tours, start_tour, next_step,
cancel_tour...) so an AI agent can guide a user through them.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP (--transport sse --port 8080).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		opts := serveOptions(cmd, args)
		opts.Metrics = false

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			return cli.ServeMCP(cmd.Context(), opts, false)
		case "sse":
			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()
			return cli.ServeMCP(ctx, opts, true)
		default:
			return cmd.Help()
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().IntP("port", "p", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().String("vars", "", "Initial show_on variables as a JSON object")
	mcpCmd.Flags().Bool("debug", false, "Log every tour and step event")
	addRedisFlags(mcpCmd)
}
