package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/truetickets/quicksearch/internal/resolve"
	"github.com/truetickets/quicksearch/internal/search"
)

// Monochrome theme - adaptive for light and dark terminals
var (
	titleBarStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#333333"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"}).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#999999"})

	spinnerStyle = lipgloss.NewStyle().
			Bold(true)

	cursorRowStyle = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#282828"})

	detailStyle = lipgloss.NewStyle().
			Faint(true)

	helpStyle = lipgloss.NewStyle().
			Faint(true)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder

	title := "quicksearch"
	if m.version != "" {
		title += " " + m.version
	}
	b.WriteString(titleBarStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString("  " + m.input.View())
	if hint := strategyHint(m.input.Value()); hint != "" {
		b.WriteString("  " + hintStyle.Render(hint))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderBody(width))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  ↑/↓ move · enter open · esc clear/quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderBody(width int) string {
	switch m.snap.Status {
	case resolve.StatusPrompt:
		return hintStyle.Render("  Type a ticket number, phone number, or name to search.") + "\n"

	case resolve.StatusLoading:
		frame := spinnerStyle.Render(spinnerFrames[m.spinnerFrame])
		return fmt.Sprintf("  %s Searching…\n", frame)

	case resolve.StatusNoResults:
		return hintStyle.Render("  No matches.") + "\n"

	case resolve.StatusPopulated:
		return m.renderResults(width)

	default:
		return "\n"
	}
}

func (m Model) renderResults(width int) string {
	var b strings.Builder

	shown := m.snap.Results
	if len(shown) > m.resultLimit {
		shown = shown[:m.resultLimit]
	}

	for i, r := range shown {
		line := fmt.Sprintf("  %s  %s",
			truncateRunes(r.Title(), 48),
			detailStyle.Render(truncateRunes(r.Detail(), 40)),
		)
		if i == m.cursor {
			line = cursorRowStyle.Render(padRight("> "+strings.TrimPrefix(line, "  "), width))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if extra := len(m.snap.Results) - len(shown); extra > 0 {
		b.WriteString(hintStyle.Render(fmt.Sprintf("  … and %d more\n", extra)))
	}

	label := "result"
	if m.snap.Kind == resolve.KindCustomer {
		label = "customer"
	} else {
		label = "ticket"
	}
	if len(m.snap.Results) != 1 {
		label += "s"
	}
	b.WriteString(hintStyle.Render(fmt.Sprintf("\n  %d %s\n", len(m.snap.Results), label)))

	return b.String()
}

// strategyHint names how the current input will be interpreted.
func strategyHint(raw string) string {
	strategy := search.Classify(raw)
	switch strategy.Kind {
	case search.KindPhone:
		return "phone"
	case search.KindExactTicket:
		return "ticket #"
	case search.KindSuffixTicket:
		return "ticket suffix"
	case search.KindDualText:
		return "name/subject"
	default:
		return ""
	}
}
