package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"nexusctl/internal/client"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <repository> [package] [version]",
	Short: "Search a repository for package versions",
	Long: `Search a repository for package versions.

Every result page is fetched, so the output contains all matches in the
order the server returned them. Omit the package or version to match all.

Examples:
  nexusctl search pypi-internal
  nexusctl search pypi-internal document-store
  nexusctl search pypi-internal document-store 0.2.1 -o json`,
	Args: cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd.Context())
		defer cancel()
		return runSearch(ctx, cmd.OutOrStdout(), reg, queryFromArgs(args))
	},
}

func runSearch(ctx context.Context, out io.Writer, reg client.Registry, q client.Query) error {
	if verbose && outputFormat == "text" {
		fmt.Fprintf(out, "🔍 Searching for: %s\n", q)
	}

	items, err := reg.Search(ctx, q)
	if err != nil {
		return err
	}

	if handled, err := writeStructured(out, outputFormat, items); handled {
		return err
	}

	if len(items) == 0 {
		fmt.Fprintf(out, "No packages found matching '%s'\n", q)
		return nil
	}

	fmt.Fprintf(out, "📋 Found %d package version(s):\n\n", len(items))

	for _, item := range items {
		fmt.Fprintf(out, "📦 %s (%s)\n", item.Coordinates(), item.Format)
		fmt.Fprintf(out, "   🗄️  Repository: %s\n", item.Repository)

		if len(item.Tags) > 0 {
			fmt.Fprintf(out, "   🏷️  Tags: %s\n", strings.Join(item.Tags, ", "))
		}

		for _, asset := range item.Assets {
			fmt.Fprintf(out, "   📄 %s\n", asset.Path)
			if verbose {
				fmt.Fprintf(out, "      %s\n", asset.DownloadURL)
			}
		}

		fmt.Fprintf(out, "\n")
	}

	fmt.Fprintf(out, "💡 Download with: nexusctl download <repository> <package> <version>\n")

	return nil
}
