// Package tui provides the interactive search prompt.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/truetickets/quicksearch/internal/resolve"
)

// spinnerFrames are the Braille dot animation frames for the loading spinner.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerInterval is how fast the spinner animates.
const spinnerInterval = 80 * time.Millisecond

// defaultResultLimit caps how many result rows are rendered.
const defaultResultLimit = 15

// Options configuration for the TUI.
type Options struct {
	Session     *resolve.Session
	ResultLimit int // Max rows rendered (default: 15)
	Version     string
}

// snapshotMsg carries a session snapshot into the update loop.
type snapshotMsg resolve.Snapshot

// sessionDoneMsg fires when the session has terminated.
type sessionDoneMsg struct{}

// spinnerTickMsg advances the loading spinner animation.
type spinnerTickMsg struct{}

// Model is the bubbletea model for the search prompt. All query state lives
// in the session; the model only mirrors the latest snapshot for rendering.
type Model struct {
	session     *resolve.Session
	input       textinput.Model
	snap        resolve.Snapshot
	cursor      int
	resultLimit int
	version     string

	width  int
	height int

	spinnerFrame int

	quitting bool
}

// New creates a new TUI model attached to a started session.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "ticket #, phone, or name"
	ti.CharLimit = 120
	ti.Width = 40
	ti.Focus()

	limit := opts.ResultLimit
	if limit <= 0 {
		limit = defaultResultLimit
	}

	return Model{
		session:     opts.Session,
		input:       ti,
		resultLimit: limit,
		version:     opts.Version,
		snap:        resolve.Snapshot{Status: resolve.StatusPrompt},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.waitForUpdate(),
		tickSpinner(),
	)
}

// waitForUpdate blocks on the next session snapshot.
func (m Model) waitForUpdate() tea.Cmd {
	updates := m.session.Updates()
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return sessionDoneMsg{}
		}
		return snapshotMsg(snap)
	}
}

func tickSpinner() tea.Cmd {
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		m.snap = resolve.Snapshot(msg)
		if max := len(m.snap.Results) - 1; m.cursor > max {
			if max < 0 {
				m.cursor = 0
			} else {
				m.cursor = max
			}
		}
		return m, m.waitForUpdate()

	case sessionDoneMsg:
		m.quitting = true
		return m, tea.Quit

	case spinnerTickMsg:
		if m.snap.Status == resolve.StatusLoading {
			m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerFrames)
		}
		return m, tickSpinner()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.session.Close()
		return m, nil

	case "esc":
		// First press clears the query, second closes the session.
		if m.input.Value() != "" {
			m.input.SetValue("")
			m.cursor = 0
			m.session.SetQuery("")
			return m, nil
		}
		m.session.Close()
		return m, nil

	case "enter":
		if m.snap.Status == resolve.StatusPopulated && m.cursor > 0 {
			m.session.Select(m.cursor)
			return m, nil
		}
		m.session.Submit()
		return m, nil

	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down":
		if m.cursor < len(m.snap.Results)-1 && m.cursor < m.resultLimit-1 {
			m.cursor++
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.cursor = 0
		m.session.SetQuery(after)
	}
	return m, cmd
}
