package resolve

import "github.com/truetickets/quicksearch/internal/search"

// Coalesce selects the visible result list for a resolved query. Dual text
// lookups fetch both entity kinds; customers win whenever any matched, tickets
// are shown otherwise. Single-endpoint strategies pass through with their
// natural kind.
func Coalesce(strategy search.Strategy, customers []Customer, tickets []Ticket) (Kind, []Result) {
	switch strategy.Kind {
	case search.KindPhone:
		return KindCustomer, customerResults(customers)
	case search.KindExactTicket, search.KindSuffixTicket:
		return KindTicket, ticketResults(tickets)
	case search.KindDualText:
		if len(customers) > 0 {
			return KindCustomer, customerResults(customers)
		}
		return KindTicket, ticketResults(tickets)
	default:
		return KindCustomer, nil
	}
}

func customerResults(customers []Customer) []Result {
	if len(customers) == 0 {
		return nil
	}
	results := make([]Result, len(customers))
	for i := range customers {
		results[i] = Result{Kind: KindCustomer, Customer: &customers[i]}
	}
	return results
}

func ticketResults(tickets []Ticket) []Result {
	if len(tickets) == 0 {
		return nil
	}
	results := make([]Result, len(tickets))
	for i := range tickets {
		results[i] = Result{Kind: KindTicket, Ticket: &tickets[i]}
	}
	return results
}
