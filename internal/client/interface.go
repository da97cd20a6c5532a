package client

import (
	"context"
)

// Registry defines the operations the CLI needs from a repository manager
type Registry interface {
	// Search for package versions, following every result page
	Search(ctx context.Context, q Query) ([]SearchItem, error)

	// List the package names in a repository
	ListPackages(ctx context.Context, repository string) ([]string, error)

	// List the repositories configured on the server
	ListRepositories(ctx context.Context) ([]Repository, error)

	// Download the assets of matching package versions
	Download(ctx context.Context, q Query, opts DownloadOptions) (*DownloadReport, error)

	// Check if the server is accessible
	Status(ctx context.Context) error
}
