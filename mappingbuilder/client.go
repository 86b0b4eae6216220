// Package mappingbuilder harvests Monarch Initiative identifiers and builds
// the bidirectional Monarch/OMIM mapping files.
package mappingbuilder

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/juju/ratelimit"
	"github.com/ncmbianchi/omim-converter/interfaces"
	"github.com/ncmbianchi/omim-converter/logging"
	"github.com/ncmbianchi/omim-converter/mappingbuilder/entities"
	"github.com/ncmbianchi/omim-converter/metrics"
)

// Compile-time check to ensure Client implements the MonarchAPI interface
var _ interfaces.MonarchAPI = (*Client)(nil)

// Client talks to the Monarch Initiative API with a token-bucket politeness
// throttle between requests.
type Client struct {
	baseURL  string
	http     *http.Client
	throttle *ratelimit.Bucket
}

// NewClient creates a Monarch API client. A non-positive delay disables
// throttling (used by tests).
func NewClient(baseURL string, timeout, delay time.Duration) *Client {
	var throttle *ratelimit.Bucket
	if delay > 0 {
		// One token per delay interval, no burst
		throttle = ratelimit.NewBucket(delay, 1)
	}

	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		throttle: throttle,
	}
}

// Search returns one page of search results for a biolink category.
func (c *Client) Search(biolinkCategory string, limit, offset int) (*entities.SearchResponse, error) {
	params := url.Values{}
	params.Set("category", biolinkCategory)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var page entities.SearchResponse
	if err := c.getJSON("search", c.baseURL+"/search?"+params.Encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Entity returns the detail record for one Monarch identifier.
func (c *Client) Entity(id string) (*entities.EntityRecord, error) {
	var record entities.EntityRecord
	if err := c.getJSON("entity", c.baseURL+"/entity/"+url.PathEscape(id), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// getJSON performs a throttled GET and decodes the JSON response body.
func (c *Client) getJSON(endpoint, requestURL string, out any) error {
	if c.throttle != nil {
		c.throttle.Wait(1)
	}

	metrics.APIRequestsTotal.WithLabelValues(endpoint).Inc()

	response, err := c.http.Get(requestURL)
	if err != nil {
		metrics.APIRequestErrors.WithLabelValues(endpoint).Inc()
		return fmt.Errorf("failed to request %s: %w", requestURL, err)
	}
	defer func() {
		if err := response.Body.Close(); err != nil {
			logging.Warn("Failed to close response body", "error", err)
		}
	}()

	if response.StatusCode != http.StatusOK {
		metrics.APIRequestErrors.WithLabelValues(endpoint).Inc()
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, response.Body)
		return fmt.Errorf("unexpected status %s for %s", response.Status, requestURL)
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		metrics.APIRequestErrors.WithLabelValues(endpoint).Inc()
		return fmt.Errorf("failed to decode response from %s: %w", requestURL, err)
	}

	return nil
}
