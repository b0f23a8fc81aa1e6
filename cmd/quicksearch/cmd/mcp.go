package cmd

import (
	"github.com/spf13/cobra"

	mcpserver "github.com/truetickets/quicksearch/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP server exposing search tools over stdio",
	Long: `Start an MCP (Model Context Protocol) server over stdio.

This lets MCP clients resolve tickets and customers using the search,
get_ticket, and get_customer tools.

Example client config:
  {
    "mcpServers": {
      "quicksearch": {
        "command": "quicksearch",
        "args": ["mcp"]
      }
    }
  }

Pass --demo to serve the built-in fixture dataset instead of a live API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lookup, err := newLookup()
		if err != nil {
			return err
		}
		return mcpserver.Serve(cmd.Context(), lookup, Version)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
