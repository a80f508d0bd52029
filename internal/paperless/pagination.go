package paperless

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Veraticus/asnreport/internal/common"
)

// page is one response of a paginated collection endpoint.
// A missing next, or a null one, marks the last page.
type page[T any] struct {
	Next    *string `json:"next"`
	Results *[]T    `json:"results"`
	Count   int     `json:"count"`
}

// fetchAll follows next links from startURL until the last page and
// returns every result in server order. Pages are requested one at a time.
// A started progress bar is finished on every return path.
func fetchAll[T any](ctx context.Context, c *Client, resource, startURL string) ([]T, error) {
	items := []T{}

	started := false
	defer func() {
		if started {
			c.progress.Finish()
		}
	}()

	current := startURL
	for pageNum := 1; current != ""; pageNum++ {
		var p page[T]
		if err := c.getJSON(ctx, resource, current, &p); err != nil {
			return nil, err
		}
		if p.Results == nil {
			return nil, fmt.Errorf("%w: %s page %d has no results", common.ErrMalformedResponse, resource, pageNum)
		}

		if !started {
			c.progress.Start(resource, p.Count)
			started = true
		}
		items = append(items, *p.Results...)
		c.progress.Add(len(*p.Results))

		c.logger.Debug("Fetched page",
			"resource", resource,
			"page", pageNum,
			"results", len(*p.Results),
			"accumulated", len(items),
			"count", p.Count)

		next, err := nextURL(current, p.Next)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrMalformedResponse, resource, err)
		}
		if next == current {
			return nil, fmt.Errorf("%w: %s page %d links to itself", common.ErrMalformedResponse, resource, pageNum)
		}
		current = next
	}

	return items, nil
}

// nextURL resolves a next link against the page it came from, so relative
// links work as well as absolute ones.
func nextURL(current string, next *string) (string, error) {
	if next == nil || *next == "" {
		return "", nil
	}

	base, err := url.Parse(current)
	if err != nil {
		return "", fmt.Errorf("invalid page URL %q: %w", current, err)
	}
	ref, err := url.Parse(*next)
	if err != nil {
		return "", fmt.Errorf("invalid next link %q: %w", *next, err)
	}

	return base.ResolveReference(ref).String(), nil
}
