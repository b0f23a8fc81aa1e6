package resolve

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/truetickets/quicksearch/internal/search"
)

// executor runs the probes for one classified strategy. Every probe failure
// is absorbed: logged, then treated as contributing no results, so one failed
// probe never blocks or fails the others.
type executor struct {
	lookup   Lookup
	logger   *slog.Logger
	lookback int
}

func (e executor) execute(ctx context.Context, strategy search.Strategy, lastMax int64) ([]Customer, []Ticket) {
	switch strategy.Kind {
	case search.KindPhone:
		customers, err := e.lookup.CustomersByPhone(ctx, strategy.Digits)
		if err != nil {
			e.logProbe("customers by phone", err)
			return nil, nil
		}
		return customers, nil

	case search.KindExactTicket:
		ticket, err := e.lookup.TicketByNumber(ctx, strategy.Number)
		if err != nil {
			e.logProbe("ticket by number", err)
			return nil, nil
		}
		if ticket == nil {
			return nil, nil
		}
		return nil, []Ticket{*ticket}

	case search.KindSuffixTicket:
		return nil, e.probeSuffix(ctx, strategy.Suffix, lastMax)

	case search.KindDualText:
		var (
			customers []Customer
			tickets   []Ticket
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			found, err := e.lookup.CustomersByName(gctx, strategy.Text)
			if err != nil {
				e.logProbe("customers by name", err)
				return nil
			}
			customers = found
			return nil
		})
		g.Go(func() error {
			found, err := e.lookup.TicketsBySubject(gctx, strategy.Text)
			if err != nil {
				e.logProbe("tickets by subject", err)
				return nil
			}
			tickets = found
			return nil
		})
		_ = g.Wait() // Probes never return errors; they absorb them.
		return customers, tickets
	}
	return nil, nil
}

// probeSuffix probes every candidate number concurrently and unions the hits,
// newest candidate first. A candidate that does not exist contributes nothing.
func (e executor) probeSuffix(ctx context.Context, suffix int, lastMax int64) []Ticket {
	candidates := search.SuffixCandidates(suffix, lastMax, e.lookback)
	if len(candidates) == 0 {
		return nil
	}

	found := make([]*Ticket, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	for i, number := range candidates {
		g.Go(func() error {
			ticket, err := e.lookup.TicketByNumber(gctx, number)
			if err != nil {
				e.logProbe("suffix candidate", err)
				return nil
			}
			found[i] = ticket
			return nil
		})
	}
	_ = g.Wait()

	var tickets []Ticket
	for _, t := range found {
		if t != nil {
			tickets = append(tickets, *t)
		}
	}
	return tickets
}

func (e executor) logProbe(probe string, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}
	e.logger.Warn("lookup probe failed", "probe", probe, "error", err)
}

// ResolveOnce resolves a single query synchronously, outside any session.
// A suffix query fetches the recent listing first to anchor its candidates;
// when that fetch fails, the digits fall back to an exact number lookup.
func ResolveOnce(ctx context.Context, lookup Lookup, raw string, opts Options) (search.Strategy, Kind, []Result) {
	if opts.Lookback <= 0 {
		opts.Lookback = DefaultLookback
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	e := executor{lookup: lookup, logger: opts.Logger, lookback: opts.Lookback}

	strategy := search.Classify(raw)
	if strategy.Kind == search.KindNone {
		return strategy, KindCustomer, nil
	}

	var lastMax int64
	if strategy.Kind == search.KindSuffixTicket {
		tickets, err := lookup.RecentTickets(ctx)
		if err != nil {
			opts.Logger.Warn("recent tickets fetch failed; treating digits as exact number", "error", err)
		} else {
			for _, t := range tickets {
				if t.Number > lastMax {
					lastMax = t.Number
				}
			}
		}
		if lastMax == 0 {
			strategy = search.Strategy{Kind: search.KindExactTicket, Number: strategy.Number}
		}
	}

	customers, tickets := e.execute(ctx, strategy, lastMax)
	kind, results := Coalesce(strategy, customers, tickets)
	return strategy, kind, results
}
