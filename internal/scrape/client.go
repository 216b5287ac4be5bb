// Package scrape extracts raw dividend observations from the dohod.ru
// analytics pages. It only collects cell texts; all parsing into typed
// values happens in the normalize package.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/dividendlab/divcast/internal/dividend"
	"github.com/dividendlab/divcast/pkg/config"
	"github.com/dividendlab/divcast/pkg/httputil"
	"github.com/dividendlab/divcast/pkg/logger"
)

// Security is one row of the dividend listing page. Summary keeps the
// listing row's own cells as a fallback observation for tickers whose
// detail page yields nothing.
type Security struct {
	Ticker  string
	Name    string
	URL     string
	Summary *dividend.Observation
}

// Client fetches and parses the dividend pages. Pacing and retries live
// in the underlying HTTP client.
type Client struct {
	httpClient    *httputil.Client
	log           *logger.Logger
	baseURL       string
	listingURL    string
	maxSecurities int
}

// NewClient creates a scrape client for the configured site.
func NewClient(httpClient *httputil.Client, cfg config.ScrapeConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient:    httpClient,
		log:           log.WithField("component", "scrape"),
		baseURL:       cfg.BaseURL,
		listingURL:    cfg.ListingURL(),
		maxSecurities: cfg.MaxSecurities,
	}
}

// fetchDocument GETs a page and parses it into a goquery document.
func (c *Client) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	resp, err := c.httpClient.Get(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}
	return doc, nil
}

// resolveURL makes a page link absolute against the listing base.
func (c *Client) resolveURL(href string) string {
	base, err := url.Parse(c.listingURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
