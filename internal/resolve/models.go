// Package resolve runs the interactive lookup session: it debounces operator
// input, dispatches the lookups chosen by the classifier, discards stale
// completions, and coalesces the results into snapshots a UI can subscribe to.
package resolve

import (
	"context"
	"fmt"
	"time"
)

// Kind tags which entity a result list holds. A resolved query always yields
// a homogeneous list.
type Kind int

const (
	KindCustomer Kind = iota
	KindTicket
)

// String returns a human-readable name for the result kind.
func (k Kind) String() string {
	if k == KindTicket {
		return "ticket"
	}
	return "customer"
}

// Customer is one customer match.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phones    []string
	CreatedAt time.Time
}

// Ticket is one ticket match, with the owning customer's name joined in.
type Ticket struct {
	Number       int64
	Subject      string
	Status       string
	Device       string
	CustomerID   string
	CustomerName string
	CreatedAt    time.Time
}

// Result is a tagged union of the two match kinds. Exactly one of Customer
// and Ticket is set, selected by Kind.
type Result struct {
	Kind     Kind
	Customer *Customer
	Ticket   *Ticket
}

// Path returns the navigation path for the matched entity.
func (r Result) Path() string {
	if r.Kind == KindTicket {
		return fmt.Sprintf("/tickets/%d", r.Ticket.Number)
	}
	return "/customers/" + r.Customer.ID
}

// Title returns the primary display line for the result.
func (r Result) Title() string {
	if r.Kind == KindTicket {
		return fmt.Sprintf("#%d %s", r.Ticket.Number, r.Ticket.Subject)
	}
	return r.Customer.Name
}

// Detail returns the secondary display line for the result.
func (r Result) Detail() string {
	if r.Kind == KindTicket {
		t := r.Ticket
		return fmt.Sprintf("%s · %s · %s", t.CustomerName, t.Status, t.Device)
	}
	c := r.Customer
	if len(c.Phones) > 0 {
		return c.Phones[0]
	}
	return c.Email
}

// Lookup is the backend the session resolves queries against. Implementations
// must treat "no such entity" as an empty (or nil) result, not an error:
// TicketByNumber returns (nil, nil) when the number is unknown.
type Lookup interface {
	CustomersByPhone(ctx context.Context, digits string) ([]Customer, error)
	CustomersByName(ctx context.Context, text string) ([]Customer, error)
	TicketByNumber(ctx context.Context, number int64) (*Ticket, error)
	TicketsBySubject(ctx context.Context, text string) ([]Ticket, error)
	RecentTickets(ctx context.Context) ([]Ticket, error)
}

// Status is the user-facing state of the result list. Exactly one status
// applies at any time.
type Status int

const (
	StatusPrompt    Status = iota // No query yet: invite input
	StatusLoading                 // Debouncing or lookups in flight
	StatusNoResults               // Resolved with nothing found
	StatusPopulated               // Resolved with at least one match
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusPrompt:
		return "prompt"
	case StatusLoading:
		return "loading"
	case StatusNoResults:
		return "no-results"
	case StatusPopulated:
		return "populated"
	default:
		return "unknown"
	}
}

// State is the lifecycle position of the current query within the session.
type State int

const (
	StateIdle       State = iota // No query, nothing pending
	StateDebouncing              // Waiting out the quiet period after a keystroke
	StateInFlight                // Lookups dispatched, none committed yet
	StateResolved                // Results committed for the current generation
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDebouncing:
		return "debouncing"
	case StateInFlight:
		return "in-flight"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Snapshot is one immutable view of the session, delivered to subscribers.
// The result list and status always belong to Generation; the session never
// publishes a snapshot for a superseded generation.
type Snapshot struct {
	Query         string
	Generation    uint64
	State         State
	Status        Status
	Kind          Kind
	Results       []Result
	PendingSubmit bool
}
