package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"nexusctl/internal/client"
)

// repositoriesCmd represents the repositories command
var repositoriesCmd = &cobra.Command{
	Use:     "repositories",
	Short:   "List the repositories configured on the server",
	Aliases: []string{"repos"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd.Context())
		defer cancel()
		return runRepositories(ctx, cmd.OutOrStdout(), reg)
	},
}

func runRepositories(ctx context.Context, out io.Writer, reg client.Registry) error {
	repos, err := reg.ListRepositories(ctx)
	if err != nil {
		return err
	}

	if handled, err := writeStructured(out, outputFormat, repos); handled {
		return err
	}

	if len(repos) == 0 {
		fmt.Fprintf(out, "No repositories configured on the server.\n")
		return nil
	}

	fmt.Fprintf(out, "📋 %d repositories:\n\n", len(repos))
	for _, repo := range repos {
		kind := repo.Format
		if repo.Type != "" {
			kind += ", " + repo.Type
		}
		fmt.Fprintf(out, "🗄️  %s (%s)\n", repo.Name, kind)
		fmt.Fprintf(out, "    URL: %s\n", repo.URL)
	}
	return nil
}
