// Package mcp exposes the unified search lookups to agents over the Model
// Context Protocol.
package mcp

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/truetickets/quicksearch/internal/resolve"
)

// Tool name constants.
const (
	ToolSearch      = "search"
	ToolGetTicket   = "get_ticket"
	ToolGetCustomer = "get_customer"
)

// Serve creates an MCP server with search tools and serves over stdio.
// It blocks until stdin is closed or the context is cancelled.
func Serve(ctx context.Context, lookup resolve.Lookup, version string) error {
	s := server.NewMCPServer(
		"quicksearch",
		version,
		server.WithToolCapabilities(false),
	)

	h := &handlers{lookup: lookup}

	s.AddTool(searchTool(), h.search)
	s.AddTool(getTicketTool(), h.getTicket)
	s.AddTool(getCustomerTool(), h.getCustomer)

	stdio := server.NewStdioServer(s)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func searchTool() mcp.Tool {
	return mcp.NewTool(ToolSearch,
		mcp.WithDescription("Unified repair-shop search. Input is classified like the operator search box: 7-11 digits is a phone lookup, up to 6 digits is an exact ticket number, exactly 3 digits is ticket suffix shorthand against recent numbering, anything else searches customer names and ticket subjects."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search input, e.g. '5551234567', '35035', '035', or 'dana screen'"),
		),
		mcp.WithNumber("lookback",
			mcp.Description("Extra thousand-blocks probed for a 3-digit suffix (default 1)"),
		),
	)
}

func getTicketTool() mcp.Tool {
	return mcp.NewTool(ToolGetTicket,
		mcp.WithDescription("Get a repair ticket summary by its exact ticket number."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithNumber("number",
			mcp.Required(),
			mcp.Description("Ticket number"),
		),
	)
}

func getCustomerTool() mcp.Tool {
	return mcp.NewTool(ToolGetCustomer,
		mcp.WithDescription("Look up customers by phone number digits or by name. Provide exactly one of phone or name."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("phone",
			mcp.Description("Phone number digits (7-11 digits)"),
		),
		mcp.WithString("name",
			mcp.Description("Customer name; all words must match"),
		),
	)
}
