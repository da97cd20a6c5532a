package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"nexusctl/internal/client"
)

var (
	downloadDir      string
	downloadAllPages bool
	downloadVerify   bool
	downloadMatch    string
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download <repository> <package> [version]",
	Short: "Download the assets of matching package versions",
	Long: `Download every asset of the package versions matching the query.

Each asset is written to a file named after the last segment of its path,
overwriting any existing file. A failed asset is reported and the remaining
assets are still downloaded.

By default only the first page of search results is used; pass --all-pages
to download from every page.

Examples:
  nexusctl download pypi-internal document-store 0.2.1
  nexusctl download pypi-internal document-store --all-pages --dir ./dist
  nexusctl download maven-releases my-lib 1.4.0 --match "**/*.jar" --verify`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd.Context())
		defer cancel()

		opts := client.DownloadOptions{
			Dir:      downloadDir,
			AllPages: downloadAllPages,
			Verify:   downloadVerify,
			Match:    downloadMatch,
		}
		return runDownload(ctx, cmd.OutOrStdout(), reg, queryFromArgs(args), opts)
	},
}

// downloadSummary is the structured form of a download report
type downloadSummary struct {
	Query    client.Query   `json:"query" yaml:"query"`
	Items    int            `json:"items" yaml:"items"`
	NotFound bool           `json:"not_found" yaml:"not_found"`
	Assets   []assetSummary `json:"assets" yaml:"assets"`
}

type assetSummary struct {
	Item  string `json:"item" yaml:"item"`
	Asset string `json:"asset" yaml:"asset"`
	File  string `json:"file,omitempty" yaml:"file,omitempty"`
	Bytes int64  `json:"bytes" yaml:"bytes"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

func runDownload(ctx context.Context, out io.Writer, reg client.Registry, q client.Query, opts client.DownloadOptions) error {
	report, err := reg.Download(ctx, q, opts)
	if err != nil {
		return err
	}

	handled, err := writeStructured(out, outputFormat, summarize(report))
	if err != nil {
		return err
	}
	if !handled {
		printReport(out, report)
	}

	if failed := report.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d of %d asset(s) failed to download", len(failed), len(report.Results))
	}
	return nil
}

func printReport(out io.Writer, report *client.DownloadReport) {
	if report.NotFound {
		fmt.Fprintf(out, "No package found for '%s'\n", report.Query)
		return
	}

	if len(report.Results) == 0 {
		fmt.Fprintf(out, "ℹ️  %d package version(s) matched but had no assets to download\n", report.Items)
		return
	}

	for _, res := range report.Results {
		if res.Err != nil {
			fmt.Fprintf(out, "❌ %s (%s): %v\n", res.Asset.Path, res.Item.Coordinates(), res.Err)
			continue
		}
		fmt.Fprintf(out, "📥 Downloaded %s (%s)\n", res.Path, humanize.Bytes(uint64(res.Bytes)))
	}

	fmt.Fprintf(out, "\n✅ %d of %d asset(s) downloaded\n", len(report.Succeeded()), len(report.Results))
}

func summarize(report *client.DownloadReport) downloadSummary {
	summary := downloadSummary{
		Query:    report.Query,
		Items:    report.Items,
		NotFound: report.NotFound,
		Assets:   []assetSummary{},
	}
	for _, res := range report.Results {
		a := assetSummary{
			Item:  res.Item.Coordinates(),
			Asset: res.Asset.Path,
			File:  res.Path,
			Bytes: res.Bytes,
		}
		if res.Err != nil {
			a.Error = res.Err.Error()
		}
		summary.Assets = append(summary.Assets, a)
	}
	return summary
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadDir, "dir", "d", "", "directory to write files to (default: current directory)")
	downloadCmd.Flags().BoolVar(&downloadAllPages, "all-pages", false, "download matches from every result page, not just the first")
	downloadCmd.Flags().BoolVar(&downloadVerify, "verify", false, "verify files against the checksums published by the server")
	downloadCmd.Flags().StringVar(&downloadMatch, "match", "", "only download assets whose path matches this glob (supports **)")
}
