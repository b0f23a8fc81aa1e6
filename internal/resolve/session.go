package resolve

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/truetickets/quicksearch/internal/search"
)

// DefaultDebounce is the quiet period after the last keystroke before
// lookups are dispatched.
const DefaultDebounce = 300 * time.Millisecond

// DefaultLookback is how many extra thousand-blocks below the primary
// candidate a suffix lookup probes.
const DefaultLookback = 1

// Options configures a Session. The zero value is usable with a nil-safe
// default for every field.
type Options struct {
	Debounce time.Duration // Quiet period; DefaultDebounce when zero
	Lookback int           // Suffix lookback blocks; DefaultLookback when zero
	Logger   *slog.Logger  // Probe diagnostics; discarded when nil

	// Navigate is invoked exactly once per successful early-submit or
	// explicit selection, with the selected entity's path.
	Navigate func(path string)

	// OnClose is invoked whenever the search surface should be dismissed:
	// after navigation, or on explicit cancel.
	OnClose func()
}

// Session owns one open search surface. All mutable state lives on a single
// event-loop goroutine; keystrokes, submits and lookup completions are posted
// to it as commands, and every state change is published as a Snapshot on the
// Updates channel. Correctness against out-of-order lookup completion rests
// on the generation check at commit time, not on locking.
type Session struct {
	lookup Lookup
	opts   Options
	exec   executor

	cmds      chan any
	completed chan any // lookup and recent-tickets completions
	updates   chan Snapshot
	done      chan struct{}
	stopOnce  sync.Once
}

// Commands posted to the event loop.
type setQueryCmd struct{ raw string }
type submitCmd struct{}
type selectCmd struct{ index int }
type closeCmd struct{}

// lookupDoneMsg carries the absorbed outcome of one generation's lookups.
// Probe errors have already been normalized to empty slices.
type lookupDoneMsg struct {
	gen       uint64
	customers []Customer
	tickets   []Ticket
}

// recentMsg carries the highest known ticket number, fetched once per session.
type recentMsg struct {
	lastMax int64
	ok      bool
}

// NewSession creates a session over the given backend. Call Start to open it.
func NewSession(lookup Lookup, opts Options) *Session {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Lookback <= 0 {
		opts.Lookback = DefaultLookback
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		lookup:    lookup,
		opts:      opts,
		exec:      executor{lookup: lookup, logger: opts.Logger, lookback: opts.Lookback},
		cmds:      make(chan any, 64),
		completed: make(chan any, 8),
		updates:   make(chan Snapshot, 1),
		done:      make(chan struct{}),
	}
}

// Start opens the search surface: it launches the event loop and the one-time
// recent-tickets fetch that seeds the suffix heuristic. Cancelling ctx tears
// the session down without invoking OnClose.
func (s *Session) Start(ctx context.Context) {
	go s.fetchRecent(ctx)
	go s.run(ctx)
}

// Updates delivers snapshots to the subscriber. Only the newest snapshot is
// retained when the subscriber lags; the channel is closed when the session
// ends.
func (s *Session) Updates() <-chan Snapshot {
	return s.updates
}

// Done is closed when the session has fully stopped.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// SetQuery replaces the operator's input. Call it on every keystroke; the
// session debounces internally.
func (s *Session) SetQuery(raw string) {
	s.post(setQueryCmd{raw: raw})
}

// Submit requests navigation to the first result: immediately when results
// are populated, deferred until resolution when lookups are still in flight.
func (s *Session) Submit() {
	s.post(submitCmd{})
}

// Select navigates to the result at index, if the session is resolved and the
// index is valid.
func (s *Session) Select(index int) {
	s.post(selectCmd{index: index})
}

// Close dismisses the search surface and abandons any in-flight lookups.
func (s *Session) Close() {
	s.post(closeCmd{})
}

func (s *Session) post(cmd any) {
	select {
	case s.cmds <- cmd:
	case <-s.done:
	}
}

// deliver hands a completion to the event loop unless the session has ended.
func (s *Session) deliver(msg any) {
	select {
	case s.completed <- msg:
	case <-s.done:
	}
}

// publish replaces whatever snapshot the subscriber has not yet consumed.
// Snapshots are therefore lossy but never stale.
func (s *Session) publish(snap Snapshot) {
	for {
		select {
		case s.updates <- snap:
			return
		default:
		}
		select {
		case <-s.updates:
		default:
		}
	}
}

// fetchRecent resolves the last known maximum ticket number. A failure leaves
// the suffix strategy disabled for the whole session.
func (s *Session) fetchRecent(ctx context.Context) {
	tickets, err := s.lookup.RecentTickets(ctx)
	if err != nil {
		s.opts.Logger.Warn("recent tickets fetch failed; suffix lookup disabled", "error", err)
		s.deliver(recentMsg{})
		return
	}
	var max int64
	for _, t := range tickets {
		if t.Number > max {
			max = t.Number
		}
	}
	s.deliver(recentMsg{lastMax: max, ok: max > 0})
}

// loopState is the mutable state owned by the event loop.
type loopState struct {
	raw        string
	gen        uint64
	state      State
	status     Status
	kind       Kind
	results    []Result
	pending    bool
	lastMax    int64
	lastMaxOK  bool
	cancel     context.CancelFunc // Cancels the in-flight generation
}

func (s *Session) run(ctx context.Context) {
	defer s.stop()

	// Debounce timer, created stopped.
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	st := &loopState{state: StateIdle, status: StatusPrompt}
	defer func() {
		if st.cancel != nil {
			st.cancel()
		}
	}()

	s.publish(s.snapshot(st))

	for {
		select {
		case <-ctx.Done():
			return

		case cmd := <-s.cmds:
			switch c := cmd.(type) {
			case setQueryCmd:
				s.handleSetQuery(st, timer, c.raw)
			case submitCmd:
				if s.handleSubmit(st) {
					return
				}
			case selectCmd:
				if st.state == StateResolved && c.index >= 0 && c.index < len(st.results) {
					s.navigate(st.results[c.index])
					return
				}
			case closeCmd:
				st.pending = false
				s.abort(st)
				if s.opts.OnClose != nil {
					s.opts.OnClose()
				}
				return
			}

		case <-timer.C:
			if st.state == StateDebouncing {
				s.dispatch(ctx, st)
			}

		case msg := <-s.completed:
			switch m := msg.(type) {
			case recentMsg:
				st.lastMax, st.lastMaxOK = m.lastMax, m.ok
			case lookupDoneMsg:
				if done := s.commit(st, m); done {
					return
				}
			}
		}
	}
}

func (s *Session) stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		close(s.updates)
	})
}

// handleSetQuery supersedes the current generation with a new query.
func (s *Session) handleSetQuery(st *loopState, timer *time.Timer, raw string) {
	// Identical input without an intervening change is a no-op: no new
	// generation, no re-debounce.
	if raw == st.raw {
		return
	}
	st.raw = raw
	st.gen++
	s.abort(st)
	stopTimer(timer)

	if strings.TrimSpace(raw) == "" {
		st.state = StateIdle
		st.status = StatusPrompt
		st.results = nil
		st.pending = false
		s.publish(s.snapshot(st))
		return
	}

	st.state = StateDebouncing
	st.status = StatusLoading
	st.results = nil
	timer.Reset(s.opts.Debounce)
	s.publish(s.snapshot(st))
}

// handleSubmit implements the early-submit key. Returns true when the session
// is finished (navigation happened).
func (s *Session) handleSubmit(st *loopState) bool {
	switch st.state {
	case StateResolved:
		if len(st.results) > 0 {
			s.navigate(st.results[0])
			return true
		}
	case StateDebouncing, StateInFlight:
		st.pending = true
		s.publish(s.snapshot(st))
	}
	return false
}

// dispatch classifies the settled query and launches its lookups.
func (s *Session) dispatch(ctx context.Context, st *loopState) {
	strategy := search.Classify(st.raw)
	if strategy.Kind == search.KindNone {
		return
	}

	// Suffix lookups need the cached maximum; without it the raw 3-digit
	// value degrades to an exact lookup.
	if strategy.Kind == search.KindSuffixTicket && !st.lastMaxOK {
		strategy = search.Strategy{Kind: search.KindExactTicket, Number: strategy.Number}
	}

	st.state = StateInFlight
	lookupCtx, cancel := context.WithCancel(ctx)
	st.cancel = cancel

	s.opts.Logger.Debug("dispatching lookup", "strategy", strategy.String(), "generation", st.gen)

	go func(gen uint64, strategy search.Strategy, lastMax int64) {
		customers, tickets := s.exec.execute(lookupCtx, strategy, lastMax)
		s.deliver(lookupDoneMsg{gen: gen, customers: customers, tickets: tickets})
	}(st.gen, strategy, st.lastMax)
}

// commit folds a completed lookup into visible state, unless its generation
// has been superseded. Returns true when the session is finished (a pending
// submit navigated).
func (s *Session) commit(st *loopState, m lookupDoneMsg) bool {
	if m.gen != st.gen {
		s.opts.Logger.Debug("dropping superseded lookup", "generation", m.gen, "current", st.gen)
		return false
	}

	strategy := search.Classify(st.raw)
	st.kind, st.results = Coalesce(strategy, m.customers, m.tickets)
	if len(st.results) == 0 {
		st.status = StatusNoResults
	} else {
		st.status = StatusPopulated
	}
	st.state = StateResolved
	st.cancel = nil

	if st.pending {
		st.pending = false
		if len(st.results) > 0 {
			s.publish(s.snapshot(st))
			s.navigate(st.results[0])
			return true
		}
	}
	s.publish(s.snapshot(st))
	return false
}

// abort cancels the in-flight generation, if any. Its eventual completion is
// dropped by the generation check in commit.
func (s *Session) abort(st *loopState) {
	if st.cancel != nil {
		st.cancel()
		st.cancel = nil
	}
}

// navigate fires the host callbacks for a selected result. The surface always
// closes after navigating.
func (s *Session) navigate(r Result) {
	if s.opts.Navigate != nil {
		s.opts.Navigate(r.Path())
	}
	if s.opts.OnClose != nil {
		s.opts.OnClose()
	}
}

func (s *Session) snapshot(st *loopState) Snapshot {
	return Snapshot{
		Query:         st.raw,
		Generation:    st.gen,
		State:         st.state,
		Status:        st.status,
		Kind:          st.kind,
		Results:       st.results,
		PendingSubmit: st.pending,
	}
}

// stopTimer stops a debounce timer and drains a fire that already queued.
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
