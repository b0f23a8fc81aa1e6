package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/truetickets/quicksearch/internal/resolve"
	"github.com/truetickets/quicksearch/internal/search"
)

var findJSON bool

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Resolve a query once and print the matches",
	Long: `Resolve a single query the way the search prompt would and print
the matches. The query is classified automatically:

  quicksearch find 5551234567    # customer by phone
  quicksearch find 35035         # ticket by exact number
  quicksearch find 035           # ticket by 3-digit suffix shorthand
  quicksearch find "dana screen" # customer names and ticket subjects

Output is a table on terminals and tab-separated when piped; --json
emits the full records.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lookup, err := newLookup()
		if err != nil {
			return err
		}

		strategy, kind, results := resolve.ResolveOnce(cmd.Context(), lookup, args[0], resolve.Options{
			Lookback: cfg.Search.LookbackBlocks,
			Logger:   logger,
		})

		if findJSON {
			return writeFindJSON(os.Stdout, args[0], strategy, kind, results)
		}

		pretty := isatty.IsTerminal(os.Stdout.Fd())
		writeFindText(os.Stdout, strategy, results, pretty)
		return nil
	},
}

// findOutput is the --json shape.
type findOutput struct {
	Query    string           `json:"query"`
	Strategy string           `json:"strategy"`
	Kind     string           `json:"kind"`
	Results  []findResultJSON `json:"results"`
}

type findResultJSON struct {
	Path     string            `json:"path"`
	Ticket   *resolve.Ticket   `json:"ticket,omitempty"`
	Customer *resolve.Customer `json:"customer,omitempty"`
}

func writeFindJSON(w io.Writer, query string, strategy search.Strategy, kind resolve.Kind, results []resolve.Result) error {
	out := findOutput{
		Query:    query,
		Strategy: strategy.String(),
		Kind:     kind.String(),
		Results:  make([]findResultJSON, 0, len(results)),
	}
	for _, r := range results {
		out.Results = append(out.Results, findResultJSON{
			Path:     r.Path(),
			Ticket:   r.Ticket,
			Customer: r.Customer,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

var (
	findStrategyStyle = lipgloss.NewStyle().Faint(true)
	findPathStyle     = lipgloss.NewStyle().Bold(true)
)

// writeFindText prints one result per line. Pretty output styles the path and
// adds a strategy line; plain output is stable tab-separated columns.
func writeFindText(w io.Writer, strategy search.Strategy, results []resolve.Result, pretty bool) {
	if pretty {
		fmt.Fprintln(w, findStrategyStyle.Render("interpreted as "+strategy.String()))
		if len(results) == 0 {
			fmt.Fprintln(w, "No matches.")
			return
		}
		for _, r := range results {
			fmt.Fprintf(w, "%s  %s  %s\n", findPathStyle.Render(r.Path()), r.Title(), findStrategyStyle.Render(r.Detail()))
		}
		return
	}

	for _, r := range results {
		fields := []string{r.Path(), r.Title(), r.Detail()}
		fmt.Fprintln(w, strings.Join(fields, "\t"))
	}
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().BoolVar(&findJSON, "json", false, "Emit full records as JSON")
}
