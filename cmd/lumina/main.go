package main

import (
	"fmt"
	"os"

	"github.com/lumina-search/lumina/internal/cli"
	"github.com/lumina-search/lumina/internal/cli/client"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "lumina",
		Short: "Lumina CLI - AI-augmented web search",
		Long: `Lumina CLI provides commands to search the web with AI enrichment.

Environment variables:
  LUMINA_API_KEY   API key for authentication (required)
  LUMINA_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-key", "", "API key for authentication (overrides env and config)")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env and config)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.AuthCmd())
	rootCmd.AddCommand(client.SearchCmd())
	rootCmd.AddCommand(client.SuggestionsCmd())
	rootCmd.AddCommand(client.FAQsCmd())
	rootCmd.AddCommand(client.HistoryCmd())
	rootCmd.AddCommand(client.SaveCmd())
	rootCmd.AddCommand(client.SavedCmd())
	rootCmd.AddCommand(client.StatsCmd())
	rootCmd.AddCommand(client.ProfileCmd())
	rootCmd.AddCommand(client.PreferencesCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
