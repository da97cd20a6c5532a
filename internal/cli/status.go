package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"nexusctl/internal/client"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the server is reachable",
	Long:  `Calls the server status endpoint with the configured credentials.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd.Context())
		defer cancel()
		return runStatus(ctx, cmd.OutOrStdout(), reg)
	},
}

func runStatus(ctx context.Context, out io.Writer, reg client.Registry) error {
	if err := reg.Status(ctx); err != nil {
		return fmt.Errorf("server check failed: %w", err)
	}
	fmt.Fprintf(out, "✅ Server is available\n")
	return nil
}
