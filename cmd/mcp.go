package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shipit-cli/shipit/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP stdio server exposing the change classifier",
	Long: `Start an MCP (Model Context Protocol) server on stdio.

This lets agent tooling classify change sets and generate pull request
descriptions without shelling out to the CLI. Configure with:

  {
    "mcpServers": {
      "shipit": { "command": "shipit", "args": ["mcp"] }
    }
  }

Available tools: shipit_analyze_changes, shipit_generate_description`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := mcp.NewServer()
		ui.VerboseLog("Starting MCP stdio server")
		return srv.ServeStdio(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
