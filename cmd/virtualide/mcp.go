package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/aretw0/virtualide/internal/cli"
	"github.com/aretw0/virtualide/pkg/adapters/mcp"
	"github.com/aretw0/virtualide/pkg/session"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts VirtualIDE as an MCP Server.
This allows AI agents to drive the virtual IDE and read recordings as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		stores, err := cli.OpenStores(ctx, cfg.Store, logger)
		if err != nil {
			return err
		}
		defer stores.Close()

		newIDE := cli.NewIDEFactory(logger, nil)
		srv := mcp.NewServer(
			stores.SessionManager(cfg.Store, session.WithIDEFactory(newIDE), session.WithLogger(logger)),
			stores.Recordings,
			mcp.WithIDEFactory(newIDE),
			mcp.WithLogger(logger),
		)

		switch cfg.MCP.Transport {
		case "sse":
			logger.Info("Starting VirtualIDE MCP Server (SSE)", "port", cfg.MCP.Port)
			if err := srv.ServeSSE(ctx, cfg.MCP.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting VirtualIDE MCP Server (Stdio)...")
			return srv.ServeStdio()
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
