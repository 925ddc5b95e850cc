// Package games proxies the external game catalog (a RAWG-style API).
// The upstream is an opaque dependency: responses are passed through
// to clients as raw JSON.
package games

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gamescape/gamescape-be/internal/models"
)

const requestTimeout = 8 * time.Second

// CatalogProvider defines the interface for external catalog lookups.
type CatalogProvider interface {
	Search(ctx context.Context, query string, pageSize int) (json.RawMessage, error)
	Detail(ctx context.Context, gameID string) (json.RawMessage, error)
}

// Client calls the external game catalog API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a catalog client. The API key is attached to every
// request and never logged.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Search queries the catalog by free-text search.
func (c *Client) Search(ctx context.Context, query string, pageSize int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("search", query)
	params.Set("page_size", strconv.Itoa(pageSize))
	return c.get(ctx, c.baseURL+"/games?"+params.Encode())
}

// Detail fetches a single catalog entry by its upstream ID.
func (c *Client) Detail(ctx context.Context, gameID string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	return c.get(ctx, c.baseURL+"/games/"+url.PathEscape(gameID)+"?"+params.Encode())
}

// get performs the upstream request with a single retry on transient
// network failure. Upstream non-200 responses are not retried.
func (c *Client) get(ctx context.Context, requestURL string) (json.RawMessage, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if ctx.Err() != nil {
			break
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			log.Warn().Int("attempt", attempt+1).Msg("Catalog request failed")
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: upstream returned status %d", models.ErrUpstream, resp.StatusCode)
		}
		return json.RawMessage(body), nil
	}
	return nil, fmt.Errorf("%w: %v", models.ErrUpstream, lastErr)
}
