package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/truetickets/quicksearch/internal/config"
	"github.com/truetickets/quicksearch/internal/demo"
	"github.com/truetickets/quicksearch/internal/resolve"
	"github.com/truetickets/quicksearch/internal/truetickets"
)

var (
	cfgFile       string
	verbose       bool
	apiURL        string
	apiKey        string
	allowInsecure bool
	demoMode      bool

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "quicksearch",
	Short: "Unified ticket and customer search for TrueTickets",
	Long: `quicksearch is the operator search box for TrueTickets as a terminal tool.

One input resolves everything: 7-11 digits look up customers by phone,
up to 6 digits look up a ticket by exact number, exactly 3 digits are
shorthand for a recent ticket number ("035" finds 36035 and 35035 when
numbering is in the 36xxx block), and anything else searches customer
names and ticket subjects at once.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		// Set up logging
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// Flag overrides
		if apiURL != "" {
			cfg.API.URL = apiURL
		}
		if apiKey != "" {
			cfg.API.APIKey = apiKey
		}
		if allowInsecure {
			cfg.API.AllowInsecure = true
		}

		return nil
	},
}

// Execute runs the root command with a background context.
// Prefer ExecuteContext for signal-aware execution.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with the given context,
// enabling graceful shutdown when the context is cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// newLookup builds the resolver backend: the seeded fixture dataset with
// --demo, otherwise the HTTP client for the configured API.
func newLookup() (resolve.Lookup, error) {
	if demoMode {
		return demo.NewLookup(demo.SeedStore()), nil
	}

	if cfg.API.URL == "" {
		return nil, fmt.Errorf("no API URL configured\n\nSet [api] url in %s, pass --url, or run 'quicksearch init'.\nTo explore without a server, pass --demo.", cfg.ConfigPath())
	}
	return truetickets.New(truetickets.Config{
		URL:           cfg.API.URL,
		APIKey:        cfg.API.APIKey,
		AllowInsecure: cfg.API.AllowInsecure,
		Timeout:       cfg.Timeout(),
	})
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file path (default ~/.quicksearch/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "url", "", "API base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&allowInsecure, "allow-insecure", false, "Permit plain HTTP API URLs (trusted networks only)")
	rootCmd.PersistentFlags().BoolVar(&demoMode, "demo", false, "Use the built-in fixture dataset instead of a live API")
}
