package client

import (
	"context"
	"fmt"
)

// SearchPage fetches a single page of results for q. An empty token
// requests the first page.
func (c *Client) SearchPage(ctx context.Context, q Query, token string) (*SearchPage, error) {
	var page SearchPage
	if err := c.getJSON(ctx, c.endpoint.Search(q, token), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Search returns every item matching q, following continuation tokens until
// the server reports no more pages. Items keep the server's order, page by
// page, and are never deduplicated. Any failure aborts the whole search.
func (c *Client) Search(ctx context.Context, q Query) ([]SearchItem, error) {
	items := []SearchItem{}
	token := ""

	for pages := 1; ; pages++ {
		if c.maxPages > 0 && pages > c.maxPages {
			return nil, fmt.Errorf("search %s: %w", q, NewRegistryError(ErrPageLimitExceeded,
				fmt.Sprintf("server still returned a continuation token after %d pages", c.maxPages)))
		}

		page, err := c.SearchPage(ctx, q, token)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", q, err)
		}

		items = append(items, page.Items...)
		c.logger.Debug("search page", "query", q.String(), "page", pages, "items", len(page.Items))

		if !page.HasMore() {
			return items, nil
		}
		token = *page.ContinuationToken
	}
}

// ListPackages returns the name of every item in a repository, in search
// order and including duplicates.
func (c *Client) ListPackages(ctx context.Context, repository string) ([]string, error) {
	items, err := c.Search(ctx, Query{Repository: repository})
	if err != nil {
		return nil, err
	}

	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names, nil
}
