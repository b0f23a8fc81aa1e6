package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/truetickets/quicksearch/internal/resolve"
)

// maxLookback caps how far back a suffix search may probe.
const maxLookback = 10

type handlers struct {
	lookup resolve.Lookup
}

// searchResult is the JSON shape returned by the search tool.
type searchResult struct {
	Strategy string       `json:"strategy"`
	Kind     string       `json:"kind"`
	Results  []resultItem `json:"results"`
}

type resultItem struct {
	Path     string            `json:"path"`
	Title    string            `json:"title"`
	Ticket   *resolve.Ticket   `json:"ticket,omitempty"`
	Customer *resolve.Customer `json:"customer,omitempty"`
}

func (h *handlers) search(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	query, _ := args["query"].(string)
	if query == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	strategy, kind, results := resolve.ResolveOnce(ctx, h.lookup, query, resolve.Options{
		Lookback: intArg(args, "lookback", 0, maxLookback),
	})

	out := searchResult{
		Strategy: strategy.String(),
		Kind:     kind.String(),
		Results:  make([]resultItem, 0, len(results)),
	}
	for _, r := range results {
		out.Results = append(out.Results, resultItem{
			Path:     r.Path(),
			Title:    r.Title(),
			Ticket:   r.Ticket,
			Customer: r.Customer,
		})
	}
	return jsonResult(out)
}

func (h *handlers) getTicket(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	number, err := getNumberArg(args, "number")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ticket, err := h.lookup.TicketByNumber(ctx, number)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ticket lookup failed: %v", err)), nil
	}
	if ticket == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no ticket with number %d", number)), nil
	}
	return jsonResult(ticket)
}

func (h *handlers) getCustomer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	phone, _ := args["phone"].(string)
	name, _ := args["name"].(string)

	var (
		customers []resolve.Customer
		err       error
	)
	switch {
	case phone != "" && name != "":
		return mcp.NewToolResultError("provide only one of phone or name"), nil
	case phone != "":
		customers, err = h.lookup.CustomersByPhone(ctx, phone)
	case name != "":
		customers, err = h.lookup.CustomersByName(ctx, name)
	default:
		return mcp.NewToolResultError("either phone or name is required"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("customer lookup failed: %v", err)), nil
	}
	if customers == nil {
		customers = []resolve.Customer{}
	}
	return jsonResult(customers)
}

// getNumberArg extracts a required positive integer from the arguments map.
// JSON numbers arrive as float64.
func getNumberArg(args map[string]any, key string) (int64, error) {
	v, ok := args[key].(float64)
	if !ok {
		return 0, fmt.Errorf("%s parameter is required", key)
	}
	if v != math.Trunc(v) || v < 1 || v > math.MaxInt64 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return int64(v), nil
}

// intArg extracts an optional non-negative integer with a default and cap.
func intArg(args map[string]any, key string, def, max int) int {
	v, ok := args[key].(float64)
	if !ok {
		return def
	}
	if math.IsNaN(v) || v < 0 {
		return def
	}
	if v > float64(max) {
		return max
	}
	return int(v)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
