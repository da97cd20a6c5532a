package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// DownloadOptions controls which assets are fetched and where they go
type DownloadOptions struct {
	// Dir receives the files. Empty means the current directory.
	Dir string

	// AllPages downloads from every search page. By default only the first
	// page of results is used.
	AllPages bool

	// Verify checks each file against the checksums the server publishes.
	Verify bool

	// Match is a doublestar glob applied to asset paths. Empty matches all.
	Match string
}

// AssetResult is the outcome of downloading a single asset
type AssetResult struct {
	Item  SearchItem
	Asset Asset
	Path  string
	Bytes int64
	Err   error
}

// DownloadReport collects the per-asset outcomes of a download
type DownloadReport struct {
	Query    Query
	Items    int
	NotFound bool
	Results  []AssetResult
}

// Succeeded returns the assets that were written to disk
func (r *DownloadReport) Succeeded() []AssetResult {
	var out []AssetResult
	for _, res := range r.Results {
		if res.Err == nil {
			out = append(out, res)
		}
	}
	return out
}

// Failed returns the assets that could not be downloaded
func (r *DownloadReport) Failed() []AssetResult {
	var out []AssetResult
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Err joins every per-asset failure, or returns nil when all succeeded
func (r *DownloadReport) Err() error {
	var errs []error
	for _, res := range r.Failed() {
		errs = append(errs, res.Err)
	}
	return errors.Join(errs...)
}

// Download fetches every asset of the package versions matching q. Failures
// of individual assets are recorded in the report and do not stop the
// remaining assets; the returned error is reserved for failures that abort
// the whole download (credentials, the search itself, a bad pattern).
func (c *Client) Download(ctx context.Context, q Query, opts DownloadOptions) (*DownloadReport, error) {
	if opts.Match != "" && !doublestar.ValidatePattern(opts.Match) {
		return nil, NewRegistryError(ErrInvalidConfig, fmt.Sprintf("invalid match pattern %q", opts.Match))
	}

	// Fail before any request when there is nothing to authenticate with.
	if _, err := c.creds.Credentials(); err != nil {
		return nil, fmt.Errorf("download %s: %w", q, err)
	}

	items, err := c.downloadCandidates(ctx, q, opts.AllPages)
	if err != nil {
		return nil, err
	}

	report := &DownloadReport{Query: q, Items: len(items)}
	if len(items) == 0 {
		report.NotFound = true
		c.logger.Info("no package found", "query", q.String())
		return report, nil
	}

	for _, item := range items {
		for _, asset := range item.Assets {
			if opts.Match != "" {
				// Pattern was validated above.
				if ok, _ := doublestar.Match(opts.Match, asset.Path); !ok {
					c.logger.Debug("asset skipped", "path", asset.Path, "match", opts.Match)
					continue
				}
			}

			res := c.downloadAsset(ctx, item, asset, opts)
			if res.Err != nil {
				c.logger.Warn("asset download failed", "query", q.String(), "item", item.Coordinates(),
					"asset", asset.Path, "error", res.Err)
			} else {
				c.logger.Info("asset downloaded", "item", item.Coordinates(), "asset", asset.Path,
					"file", res.Path, "bytes", res.Bytes)
			}
			report.Results = append(report.Results, res)
		}
	}

	return report, nil
}

// downloadCandidates resolves the items to download from
func (c *Client) downloadCandidates(ctx context.Context, q Query, allPages bool) ([]SearchItem, error) {
	if allPages {
		return c.Search(ctx, q)
	}

	page, err := c.SearchPage(ctx, q, "")
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", q, err)
	}
	if page.HasMore() {
		c.logger.Info("download uses the first result page only", "query", q.String())
	}
	return page.Items, nil
}

// downloadAsset streams one asset into a file named after the last segment
// of its path. An existing file of the same name is overwritten.
func (c *Client) downloadAsset(ctx context.Context, item SearchItem, asset Asset, opts DownloadOptions) AssetResult {
	res := AssetResult{Item: item, Asset: asset}

	name := assetFilename(asset.Path)
	if name == "" {
		res.Err = assetError(item, asset, NewRegistryError(ErrFilesystem, "asset path has no usable file name"))
		return res
	}
	destPath := name
	if opts.Dir != "" {
		destPath = filepath.Join(opts.Dir, name)
	}
	res.Path = destPath

	resp, err := c.get(ctx, asset.DownloadURL)
	if err != nil {
		res.Err = assetError(item, asset, err)
		return res
	}
	defer resp.Body.Close()

	outFile, err := os.Create(destPath)
	if err != nil {
		res.Err = assetError(item, asset, wrapError(ErrFilesystem, "failed to create file", err))
		return res
	}

	var w io.Writer = outFile
	var sums *checksumWriter
	if opts.Verify {
		sums = newChecksumWriter(asset.Checksum)
		w = sums.writer(outFile)
	}

	res.Bytes, err = io.Copy(w, resp.Body)
	closeErr := outFile.Close()
	if err != nil {
		// A partial file must not look like a finished download.
		os.Remove(destPath)
		var writeErr *os.PathError
		if errors.As(err, &writeErr) {
			res.Err = assetError(item, asset, wrapError(ErrFilesystem, "failed to write file", err))
		} else {
			res.Err = assetError(item, asset, wrapError(ErrNetwork, "failed to read response body", err))
		}
		return res
	}
	if closeErr != nil {
		os.Remove(destPath)
		res.Err = assetError(item, asset, wrapError(ErrFilesystem, "failed to close file", closeErr))
		return res
	}

	if sums != nil {
		if err := sums.verify(); err != nil {
			os.Remove(destPath)
			res.Err = assetError(item, asset, err)
			return res
		}
	}

	return res
}

// assetError names the repository, package, version and asset path, so a
// joined report error reads on its own.
func assetError(item SearchItem, asset Asset, err error) error {
	return fmt.Errorf("%s/%s: asset %s: %w", item.Repository, item.Coordinates(), asset.Path, err)
}

// assetFilename returns the final segment of a repository path, or "" when
// the path does not name a file.
func assetFilename(assetPath string) string {
	name := path.Base(assetPath)
	switch name {
	case ".", "/", "..":
		return ""
	}
	return name
}
