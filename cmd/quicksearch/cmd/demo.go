package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/truetickets/quicksearch/internal/demo"
)

var demoAddr string

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a local fixture server speaking the TrueTickets search API",
	Long: `Run a local HTTP server that serves a seeded repair-shop dataset over
the TrueTickets search API. Useful for trying the tool without a live
deployment and as a target for integration tests:

  quicksearch demo &
  quicksearch find --url http://127.0.0.1:8423 --allow-insecure 035

Use Ctrl+C to stop the server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Demo.ListenAddr
		if demoAddr != "" {
			addr = demoAddr
		}

		server := demo.NewServer(addr, cfg.Demo.APIKey, demo.SeedStore(), logger)

		serverErr := make(chan error, 1)
		go func() {
			serverErr <- server.Start()
		}()

		fmt.Printf("Demo server listening on http://%s\n", addr)
		fmt.Printf("Try: quicksearch find --url http://%s --allow-insecure 035\n", addr)

		select {
		case <-cmd.Context().Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case err := <-serverErr:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().StringVar(&demoAddr, "addr", "", "Bind address (default from config, 127.0.0.1:8423)")
}
