// Package demo provides a self-contained fixture server that speaks the
// TrueTickets search API. It backs the demo command and integration tests, so
// the resolver can be exercised without a live deployment.
package demo

import (
	"sort"
	"strings"
)

// Subject searches return at most one page of results.
const maxSubjectResults = 15

// Recent ticket listings return at most this many entries.
const maxRecentTickets = 30

// Phone represents a customer phone number on the wire.
type Phone struct {
	Number string `json:"number"`
}

// Customer is the wire representation of a customer record.
type Customer struct {
	CustomerID   string  `json:"customer_id"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email,omitempty"`
	PhoneNumbers []Phone `json:"phone_numbers"`
	CreatedAt    int64   `json:"created_at"`
	LastUpdated  int64   `json:"last_updated"`
}

// Ticket is the wire representation of a repair ticket summary.
type Ticket struct {
	TicketNumber int64  `json:"ticket_number"`
	Subject      string `json:"subject"`
	CustomerID   string `json:"customer_id"`
	Status       string `json:"status"`
	Device       string `json:"device"`
	CreatedAt    int64  `json:"created_at"`
	CustomerName string `json:"customer_name"`
}

// Store holds the seeded dataset. It is read-only after construction, so
// handlers may query it concurrently without locking.
type Store struct {
	customers []Customer
	tickets   []Ticket // sorted by ticket number, descending
}

// NewStore builds a store from the given records. Tickets are sorted newest
// number first.
func NewStore(customers []Customer, tickets []Ticket) *Store {
	sorted := make([]Ticket, len(tickets))
	copy(sorted, tickets)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].TicketNumber > sorted[j].TicketNumber
	})
	return &Store{customers: customers, tickets: sorted}
}

// CustomersByPhone returns customers with a phone number containing the digit
// string.
func (s *Store) CustomersByPhone(digits string) []Customer {
	if digits == "" {
		return nil
	}
	var matched []Customer
	for _, c := range s.customers {
		for _, p := range c.PhoneNumbers {
			if strings.Contains(p.Number, digits) {
				matched = append(matched, c)
				break
			}
		}
	}
	return matched
}

// CustomersByQuery returns customers whose name contains every word of the
// query, case-insensitively.
func (s *Store) CustomersByQuery(query string) []Customer {
	words := queryWords(query)
	if len(words) == 0 {
		return nil
	}
	var matched []Customer
	for _, c := range s.customers {
		if matchesAllWords(c.FullName, words) {
			matched = append(matched, c)
		}
	}
	return matched
}

// TicketByNumber returns the ticket with the given number, or nil.
func (s *Store) TicketByNumber(number int64) *Ticket {
	for i := range s.tickets {
		if s.tickets[i].TicketNumber == number {
			t := s.tickets[i]
			return &t
		}
	}
	return nil
}

// TicketsByQuery returns tickets whose subject contains every word of the
// query, newest first, capped at one page.
func (s *Store) TicketsByQuery(query string) []Ticket {
	words := queryWords(query)
	if len(words) == 0 {
		return nil
	}
	var matched []Ticket
	for _, t := range s.tickets {
		if matchesAllWords(t.Subject, words) {
			matched = append(matched, t)
			if len(matched) == maxSubjectResults {
				break
			}
		}
	}
	return matched
}

// RecentTickets returns the newest tickets, highest numbers first.
func (s *Store) RecentTickets() []Ticket {
	n := len(s.tickets)
	if n > maxRecentTickets {
		n = maxRecentTickets
	}
	recent := make([]Ticket, n)
	copy(recent, s.tickets[:n])
	return recent
}

func queryWords(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

func matchesAllWords(text string, words []string) bool {
	lowered := strings.ToLower(text)
	for _, w := range words {
		if !strings.Contains(lowered, w) {
			return false
		}
	}
	return true
}
