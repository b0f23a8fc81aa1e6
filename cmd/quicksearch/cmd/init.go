package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactive first-run configuration",
	Long: `Interactive wizard that writes ~/.quicksearch/config.toml with the
API connection settings. Existing values are offered as defaults.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	url := cfg.API.URL
	key := cfg.API.APIKey
	insecure := cfg.API.AllowInsecure

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("API URL").
				Description("Base URL of the TrueTickets API").
				Placeholder("https://tickets.example.com").
				Value(&url),
			huh.NewInput().
				Title("API key").
				Description("Sent as X-API-Key; leave empty if the server does not require one").
				EchoMode(huh.EchoModePassword).
				Value(&key),
			huh.NewConfirm().
				Title("Allow plain HTTP?").
				Description("Only for trusted networks; HTTPS is required otherwise").
				Value(&insecure),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("run form: %w", err)
	}

	cfg.API.URL = strings.TrimSpace(url)
	cfg.API.APIKey = strings.TrimSpace(key)
	cfg.API.AllowInsecure = insecure

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("Configuration saved to %s\n", cfg.ConfigPath())
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  quicksearch tui           # interactive search")
	fmt.Println("  quicksearch find 035      # one-shot lookup")
	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
