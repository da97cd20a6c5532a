package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"nexusctl/internal/client"
)

// packagesCmd represents the packages command
var packagesCmd = &cobra.Command{
	Use:     "packages <repository>",
	Short:   "List the packages in a repository",
	Long:    `List the name of every package version in a repository, in server order. A name appears once per version.`,
	Aliases: []string{"ls"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd.Context())
		defer cancel()
		return runPackages(ctx, cmd.OutOrStdout(), reg, args[0])
	},
}

func runPackages(ctx context.Context, out io.Writer, reg client.Registry, repository string) error {
	names, err := reg.ListPackages(ctx, repository)
	if err != nil {
		return err
	}

	if handled, err := writeStructured(out, outputFormat, names); handled {
		return err
	}

	if len(names) == 0 {
		fmt.Fprintf(out, "No packages in '%s'\n", repository)
		return nil
	}

	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}
