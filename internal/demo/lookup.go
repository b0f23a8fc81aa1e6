package demo

import (
	"context"
	"time"

	"github.com/truetickets/quicksearch/internal/resolve"
)

// storeLookup adapts a Store to the resolver's Lookup interface, so the
// fixtures can back the resolver in-process without going through HTTP.
type storeLookup struct {
	store *Store
}

// NewLookup wraps a store as a resolve.Lookup.
func NewLookup(store *Store) resolve.Lookup {
	return storeLookup{store: store}
}

func (l storeLookup) CustomersByPhone(ctx context.Context, digits string) ([]resolve.Customer, error) {
	return convertCustomers(l.store.CustomersByPhone(digits)), nil
}

func (l storeLookup) CustomersByName(ctx context.Context, text string) ([]resolve.Customer, error) {
	return convertCustomers(l.store.CustomersByQuery(text)), nil
}

func (l storeLookup) TicketByNumber(ctx context.Context, number int64) (*resolve.Ticket, error) {
	t := l.store.TicketByNumber(number)
	if t == nil {
		return nil, nil
	}
	converted := convertTicket(*t)
	return &converted, nil
}

func (l storeLookup) TicketsBySubject(ctx context.Context, text string) ([]resolve.Ticket, error) {
	return convertTickets(l.store.TicketsByQuery(text)), nil
}

func (l storeLookup) RecentTickets(ctx context.Context) ([]resolve.Ticket, error) {
	return convertTickets(l.store.RecentTickets()), nil
}

func convertCustomers(cs []Customer) []resolve.Customer {
	if len(cs) == 0 {
		return nil
	}
	out := make([]resolve.Customer, len(cs))
	for i, c := range cs {
		phones := make([]string, len(c.PhoneNumbers))
		for j, p := range c.PhoneNumbers {
			phones[j] = p.Number
		}
		out[i] = resolve.Customer{
			ID:        c.CustomerID,
			Name:      c.FullName,
			Email:     c.Email,
			Phones:    phones,
			CreatedAt: time.Unix(c.CreatedAt, 0).UTC(),
		}
	}
	return out
}

func convertTicket(t Ticket) resolve.Ticket {
	return resolve.Ticket{
		Number:       t.TicketNumber,
		Subject:      t.Subject,
		Status:       t.Status,
		Device:       t.Device,
		CustomerID:   t.CustomerID,
		CustomerName: t.CustomerName,
		CreatedAt:    time.Unix(t.CreatedAt, 0).UTC(),
	}
}

func convertTickets(ts []Ticket) []resolve.Ticket {
	if len(ts) == 0 {
		return nil
	}
	out := make([]resolve.Ticket, len(ts))
	for i, t := range ts {
		out[i] = convertTicket(t)
	}
	return out
}
