package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"nexusctl/internal/config"
)

var (
	verbose      bool
	serverName   string
	serverURL    string
	outputFormat string
	askSecret    bool
	deadline     time.Duration
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nexusctl",
	Short: "nexusctl - search and download artifacts from a Nexus repository manager",
	Long: `nexusctl talks to the REST API of a Nexus repository manager.

It searches repositories for package versions (following every result page),
lists repositories and packages, and downloads package assets to disk.

Credentials are read from NEXUS_TOKEN_NAME and NEXUS_TOKEN_SECRET on every
request. The server comes from --url, NEXUS_URL, or a saved server profile.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load .env file if it exists
		if err := config.LoadEnvFile(".env"); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}

		return validateOutputFormat(outputFormat)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&serverName, "server", "s", "", "server profile to use (default: current profile)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", "", "server base URL (overrides NEXUS_URL and profiles)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, json or yaml")
	rootCmd.PersistentFlags().BoolVar(&askSecret, "ask-secret", false, "prompt for the secret instead of reading NEXUS_TOKEN_SECRET")
	rootCmd.PersistentFlags().DurationVar(&deadline, "deadline", 0, "overall deadline for the command (0 = none)")

	// Add subcommands
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(packagesCmd)
	rootCmd.AddCommand(repositoriesCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(serverCmd)
}
