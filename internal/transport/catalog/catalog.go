// Package catalog implements the secondary catalog lookups used to enrich recommendations.
package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/kailas-cloud/spotlight/internal/domain"
	"github.com/kailas-cloud/spotlight/internal/metrics"
)

// Config holds the settings shared by catalog clients.
type Config struct {
	BaseURL string
	APIKey  string
	// Timeout bounds one lookup. Zero means no timeout.
	Timeout time.Duration
	// Transport is the shared connection pool. Nil uses http.DefaultTransport.
	Transport http.RoundTripper
}

func newHTTPClient(cfg *Config) *http.Client {
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &http.Client{Transport: transport, Timeout: cfg.Timeout}
}

// getJSON performs one GET and decodes a JSON body into out.
// Every failure wraps domain.ErrLookup.
func getJSON(ctx context.Context, client *http.Client, catalog, base string, params url.Values, out any) error {
	start := time.Now()
	err := fetch(ctx, client, base, params, out)
	metrics.EnrichmentLookupDuration.WithLabelValues(catalog).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.EnrichmentLookupsTotal.WithLabelValues(catalog, "error").Inc()
		return fmt.Errorf("%s lookup: %w: %w", catalog, domain.ErrLookup, err)
	}
	return nil
}

func fetch(ctx context.Context, client *http.Client, base string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func recordOutcome(catalog string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	metrics.EnrichmentLookupsTotal.WithLabelValues(catalog, result).Inc()
}
