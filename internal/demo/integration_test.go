package demo_test

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/truetickets/quicksearch/internal/demo"
	"github.com/truetickets/quicksearch/internal/resolve"
	"github.com/truetickets/quicksearch/internal/truetickets"
)

// startStack runs the fixture server, a real HTTP client against it, and a
// resolver session over that client.
func startStack(t *testing.T, navigated chan<- string) *resolve.Session {
	t.Helper()

	server := demo.NewServer("127.0.0.1:0", "demo-key", demo.SeedStore(), slog.New(slog.DiscardHandler))
	srv := httptest.NewServer(server.Router())
	t.Cleanup(srv.Close)

	client, err := truetickets.New(truetickets.Config{
		URL:           srv.URL,
		APIKey:        "demo-key",
		AllowInsecure: true,
	})
	if err != nil {
		t.Fatalf("truetickets.New() error = %v", err)
	}

	session := resolve.NewSession(client, resolve.Options{
		Debounce: 10 * time.Millisecond,
		Navigate: func(path string) { navigated <- path },
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	session.Start(ctx)
	return session
}

func waitForResolved(t *testing.T, s *resolve.Session) resolve.Snapshot {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case snap, ok := <-s.Updates():
			if !ok {
				t.Fatal("updates channel closed before resolution")
			}
			if snap.State == resolve.StateResolved {
				return snap
			}
		case <-deadline:
			t.Fatal("timed out waiting for resolution")
		}
	}
}

func TestEndToEndNameSearch(t *testing.T) {
	session := startStack(t, nil)

	session.SetQuery("dana")
	snap := waitForResolved(t, session)

	if snap.Status != resolve.StatusPopulated {
		t.Fatalf("status = %v, want populated", snap.Status)
	}
	if snap.Kind != resolve.KindCustomer {
		t.Fatalf("kind = %v, want customer", snap.Kind)
	}
	if len(snap.Results) != 1 || snap.Results[0].Customer.ID != "cust-001" {
		t.Fatalf("results = %+v, want Dana Smith", snap.Results)
	}
}

func TestEndToEndSuffixSearch(t *testing.T) {
	session := startStack(t, nil)

	// The fixture max is 36039, so "035" probes 36035 then 35035; both exist.
	session.SetQuery("035")
	snap := waitForResolved(t, session)

	if snap.Status != resolve.StatusPopulated {
		t.Fatalf("status = %v, want populated", snap.Status)
	}
	if len(snap.Results) != 2 {
		t.Fatalf("got %d results, want 2 suffix matches", len(snap.Results))
	}
	if snap.Results[0].Ticket.Number != 36035 || snap.Results[1].Ticket.Number != 35035 {
		t.Fatalf("ticket numbers = %d, %d, want 36035 then 35035",
			snap.Results[0].Ticket.Number, snap.Results[1].Ticket.Number)
	}
}

func TestEndToEndSubmitNavigates(t *testing.T) {
	navigated := make(chan string, 1)
	session := startStack(t, navigated)

	session.SetQuery("5551234567")
	waitForResolved(t, session)
	session.Submit()

	select {
	case path := <-navigated:
		if path != "/customers/cust-001" {
			t.Fatalf("navigated to %q, want /customers/cust-001", path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for navigation")
	}
}

func TestEndToEndUnknownTicketNumber(t *testing.T) {
	session := startStack(t, nil)

	session.SetQuery("99999")
	snap := waitForResolved(t, session)

	if snap.Status != resolve.StatusNoResults {
		t.Fatalf("status = %v, want no-results", snap.Status)
	}
}
