package client

import (
	"context"
	"fmt"
)

// ListRepositories returns the repositories configured on the server
func (c *Client) ListRepositories(ctx context.Context) ([]Repository, error) {
	var repos []Repository
	if err := c.getJSON(ctx, c.endpoint.Repositories(), &repos); err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}
	if repos == nil {
		repos = []Repository{}
	}
	return repos, nil
}
