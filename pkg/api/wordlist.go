package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/japaniel/lexiquest/pkg/wordlist"
)

// FetchWordlist loads the full wordlist from /api/wordlist/{category}/{filename}.
func (c *Client) FetchWordlist(ctx context.Context, key wordlist.Key) ([]wordlist.Entry, error) {
	return c.fetchEntries(ctx, joinPath("api", "wordlist", key.Category, key.Filename))
}

// FetchRandom asks the service for up to limit entries chosen server-side.
func (c *Client) FetchRandom(ctx context.Context, key wordlist.Key, limit int) ([]wordlist.Entry, error) {
	return c.fetchEntries(ctx, joinPath("api", "wordlist", "random", key.Category, key.Filename, strconv.Itoa(limit)))
}

func (c *Client) fetchEntries(ctx context.Context, path string) ([]wordlist.Entry, error) {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	raw, err := wordlist.DecodeResponse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrMalformed, path, err)
	}
	return raw.Entries, nil
}

// FetchCatalog returns the category to book listing from /api/wordlists/all.
func (c *Client) FetchCatalog(ctx context.Context) (map[string][]string, error) {
	var catalog map[string][]string
	if err := c.doJSON(ctx, http.MethodGet, "/api/wordlists/all", nil, &catalog); err != nil {
		return nil, err
	}
	if catalog == nil {
		return nil, fmt.Errorf("%w: GET /api/wordlists/all: null catalog", ErrMalformed)
	}
	return catalog, nil
}
