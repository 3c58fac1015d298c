package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/sprintlens/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the sprintlens MCP server",
	Long:  `Launch an MCP server on stdio that lets AI agents query flow, sprint and workload views via standard tools.`,
	// Headers are suppressed per request since stdio carries the protocol.
	PreRunE: viewSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager, newSuggester)
	},
}
