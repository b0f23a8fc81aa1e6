package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/truetickets/quicksearch/internal/resolve"
	"github.com/truetickets/quicksearch/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive search prompt",
	Long: `Open the interactive search prompt against the configured API.

Type to search; lookups are debounced and run as you pause. Keys:
  ↑/↓       Move the selection
  Enter     Open the selected match (or the first match while loading)
  Esc       Clear the query, then quit
  Ctrl+C    Quit

On exit, the path of the opened entity (e.g. /tickets/36035) is printed
to stdout so shells and wrappers can act on it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lookup, err := newLookup()
		if err != nil {
			return err
		}
		return runTUI(cmd.Context(), lookup)
	},
}

func runTUI(ctx context.Context, lookup resolve.Lookup) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The session event loop terminates before closing its updates channel,
	// so navigated is settled by the time the program returns.
	var navigated string
	session := resolve.NewSession(lookup, resolve.Options{
		Debounce: cfg.Debounce(),
		Lookback: cfg.Search.LookbackBlocks,
		Logger:   logger,
		Navigate: func(path string) { navigated = path },
	})
	session.Start(ctx)

	model := tui.New(tui.Options{
		Session:     session,
		ResultLimit: cfg.Search.TextResultLimit,
		Version:     Version,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	if navigated != "" {
		fmt.Println(navigated)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
