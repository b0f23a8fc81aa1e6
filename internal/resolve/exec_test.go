package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/truetickets/quicksearch/internal/search"
)

func TestResolveOnceDualText(t *testing.T) {
	lookup := &fakeLookup{
		customersByName: func(ctx context.Context, text string) ([]Customer, error) {
			return []Customer{{ID: "c1", Name: "Dana Smith"}}, nil
		},
		ticketsBySubject: func(ctx context.Context, text string) ([]Ticket, error) {
			return []Ticket{{Number: 35035, Subject: "Screen repair"}}, nil
		},
	}

	strategy, kind, results := ResolveOnce(context.Background(), lookup, "dana", Options{})
	if strategy.Kind != search.KindDualText {
		t.Fatalf("strategy = %v, want dual-text", strategy.Kind)
	}
	if kind != KindCustomer {
		t.Fatalf("kind = %v, want customer precedence", kind)
	}
	if len(results) != 1 || results[0].Customer.ID != "c1" {
		t.Fatalf("results = %+v, want Dana Smith", results)
	}
}

func TestResolveOnceSuffixFetchesRecent(t *testing.T) {
	lookup := &fakeLookup{
		recentTickets: func(ctx context.Context) ([]Ticket, error) {
			return []Ticket{{Number: 36039}, {Number: 36038}}, nil
		},
		ticketByNumber: func(ctx context.Context, number int64) (*Ticket, error) {
			if number == 35035 {
				return &Ticket{Number: 35035}, nil
			}
			return nil, nil
		},
	}

	strategy, kind, results := ResolveOnce(context.Background(), lookup, "035", Options{})
	if strategy.Kind != search.KindSuffixTicket {
		t.Fatalf("strategy = %v, want suffix-ticket", strategy.Kind)
	}
	if kind != KindTicket {
		t.Fatalf("kind = %v, want ticket", kind)
	}
	if len(results) != 1 || results[0].Ticket.Number != 35035 {
		t.Fatalf("results = %+v, want ticket 35035", results)
	}
}

func TestResolveOnceSuffixFallsBackToExact(t *testing.T) {
	var probed []int64
	lookup := &fakeLookup{
		recentTickets: func(ctx context.Context) ([]Ticket, error) {
			return nil, errors.New("listing unavailable")
		},
		ticketByNumber: func(ctx context.Context, number int64) (*Ticket, error) {
			probed = append(probed, number)
			return nil, nil
		},
	}

	strategy, _, results := ResolveOnce(context.Background(), lookup, "035", Options{})
	if strategy.Kind != search.KindExactTicket {
		t.Fatalf("strategy = %v, want exact fallback", strategy.Kind)
	}
	if len(probed) != 1 || probed[0] != 35 {
		t.Fatalf("probed = %v, want single exact probe of 35", probed)
	}
	if results != nil {
		t.Fatalf("results = %+v, want none", results)
	}
}

func TestResolveOnceEmptyQuery(t *testing.T) {
	lookup := &fakeLookup{}
	strategy, _, results := ResolveOnce(context.Background(), lookup, "   ", Options{})
	if strategy.Kind != search.KindNone {
		t.Fatalf("strategy = %v, want none", strategy.Kind)
	}
	if results != nil {
		t.Fatalf("results = %+v, want none", results)
	}
	if lookup.callCount() != 0 {
		t.Fatalf("lookup calls = %d, want 0", lookup.callCount())
	}
}

func TestResolveOnceProbeErrorAbsorbed(t *testing.T) {
	lookup := &fakeLookup{
		customersByPhone: func(ctx context.Context, digits string) ([]Customer, error) {
			return nil, errors.New("backend down")
		},
	}

	_, kind, results := ResolveOnce(context.Background(), lookup, "5551234567", Options{})
	if kind != KindCustomer {
		t.Fatalf("kind = %v, want customer", kind)
	}
	if results != nil {
		t.Fatalf("results = %+v, want empty on probe error", results)
	}
}
