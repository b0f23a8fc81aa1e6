package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/truetickets/quicksearch/internal/resolve"
)

// toolHandler is the function signature for MCP tool handler methods.
type toolHandler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// callToolDirect invokes a handler directly with the given arguments.
func callToolDirect(t *testing.T, name string, fn toolHandler, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	result, err := fn(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return result
}

func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	if len(r.Content) == 0 {
		t.Fatal("empty content")
	}
	tc, ok := r.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", r.Content[0])
	}
	return tc.Text
}

// runTool invokes a handler, asserts no error, and unmarshals the JSON result into T.
func runTool[T any](t *testing.T, name string, fn toolHandler, args map[string]any) T {
	t.Helper()
	r := callToolDirect(t, name, fn, args)
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(t, r))
	}
	var out T
	if err := json.Unmarshal([]byte(resultText(t, r)), &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	return out
}

// runToolExpectError invokes a handler and asserts it returns an error result.
func runToolExpectError(t *testing.T, name string, fn toolHandler, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	r := callToolDirect(t, name, fn, args)
	if !r.IsError {
		t.Fatal("expected error result")
	}
	return r
}

// fixedLookup serves a tiny static dataset.
type fixedLookup struct{}

func (fixedLookup) CustomersByPhone(ctx context.Context, digits string) ([]resolve.Customer, error) {
	if digits == "5551234567" {
		return []resolve.Customer{{ID: "c1", Name: "Dana Smith", Phones: []string{digits}}}, nil
	}
	return nil, nil
}

func (fixedLookup) CustomersByName(ctx context.Context, text string) ([]resolve.Customer, error) {
	if strings.Contains(strings.ToLower(text), "dana") {
		return []resolve.Customer{{ID: "c1", Name: "Dana Smith"}}, nil
	}
	return nil, nil
}

func (fixedLookup) TicketByNumber(ctx context.Context, number int64) (*resolve.Ticket, error) {
	if number == 35035 || number == 36035 {
		return &resolve.Ticket{Number: number, Subject: "Screen repair", CustomerName: "Dana Smith"}, nil
	}
	return nil, nil
}

func (fixedLookup) TicketsBySubject(ctx context.Context, text string) ([]resolve.Ticket, error) {
	return nil, nil
}

func (fixedLookup) RecentTickets(ctx context.Context) ([]resolve.Ticket, error) {
	return []resolve.Ticket{{Number: 36039}}, nil
}

func TestSearchTool(t *testing.T) {
	h := &handlers{lookup: fixedLookup{}}

	t.Run("phone query", func(t *testing.T) {
		out := runTool[searchResult](t, ToolSearch, h.search, map[string]any{"query": "5551234567"})
		if out.Kind != "customer" {
			t.Errorf("kind = %q, want customer", out.Kind)
		}
		if len(out.Results) != 1 || out.Results[0].Path != "/customers/c1" {
			t.Errorf("results = %+v, want one customer path", out.Results)
		}
	})

	t.Run("suffix query probes recent blocks", func(t *testing.T) {
		out := runTool[searchResult](t, ToolSearch, h.search, map[string]any{"query": "035"})
		if len(out.Results) != 2 {
			t.Fatalf("results = %+v, want two suffix matches", out.Results)
		}
		if out.Results[0].Path != "/tickets/36035" || out.Results[1].Path != "/tickets/35035" {
			t.Errorf("paths = %s, %s, want newest first", out.Results[0].Path, out.Results[1].Path)
		}
	})

	t.Run("no matches returns empty list", func(t *testing.T) {
		out := runTool[searchResult](t, ToolSearch, h.search, map[string]any{"query": "nobody"})
		if len(out.Results) != 0 {
			t.Errorf("results = %+v, want empty", out.Results)
		}
	})

	t.Run("missing query", func(t *testing.T) {
		runToolExpectError(t, ToolSearch, h.search, map[string]any{})
	})
}

func TestGetTicketTool(t *testing.T) {
	h := &handlers{lookup: fixedLookup{}}

	t.Run("found", func(t *testing.T) {
		out := runTool[resolve.Ticket](t, ToolGetTicket, h.getTicket, map[string]any{"number": float64(35035)})
		if out.Number != 35035 {
			t.Errorf("number = %d, want 35035", out.Number)
		}
	})

	t.Run("not found", func(t *testing.T) {
		r := runToolExpectError(t, ToolGetTicket, h.getTicket, map[string]any{"number": float64(99999)})
		if !strings.Contains(resultText(t, r), "no ticket") {
			t.Errorf("error = %q, want not-found message", resultText(t, r))
		}
	})

	t.Run("missing number", func(t *testing.T) {
		runToolExpectError(t, ToolGetTicket, h.getTicket, map[string]any{})
	})

	t.Run("fractional number", func(t *testing.T) {
		runToolExpectError(t, ToolGetTicket, h.getTicket, map[string]any{"number": 35.5})
	})
}

func TestGetCustomerTool(t *testing.T) {
	h := &handlers{lookup: fixedLookup{}}

	t.Run("by phone", func(t *testing.T) {
		out := runTool[[]resolve.Customer](t, ToolGetCustomer, h.getCustomer, map[string]any{"phone": "5551234567"})
		if len(out) != 1 || out[0].ID != "c1" {
			t.Errorf("customers = %+v, want c1", out)
		}
	})

	t.Run("by name", func(t *testing.T) {
		out := runTool[[]resolve.Customer](t, ToolGetCustomer, h.getCustomer, map[string]any{"name": "dana"})
		if len(out) != 1 || out[0].Name != "Dana Smith" {
			t.Errorf("customers = %+v, want Dana Smith", out)
		}
	})

	t.Run("no match is empty list not error", func(t *testing.T) {
		out := runTool[[]resolve.Customer](t, ToolGetCustomer, h.getCustomer, map[string]any{"name": "zzz"})
		if len(out) != 0 {
			t.Errorf("customers = %+v, want empty", out)
		}
	})

	t.Run("both arguments rejected", func(t *testing.T) {
		runToolExpectError(t, ToolGetCustomer, h.getCustomer, map[string]any{"phone": "5551234567", "name": "dana"})
	})

	t.Run("neither argument rejected", func(t *testing.T) {
		runToolExpectError(t, ToolGetCustomer, h.getCustomer, map[string]any{})
	})
}
