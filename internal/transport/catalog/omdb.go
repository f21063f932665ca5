package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kailas-cloud/spotlight/internal/domain"
)

// OMDbURL is the public OMDb endpoint.
const OMDbURL = "http://www.omdbapi.com"

// OMDb looks up movie posters by title.
type OMDb struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewOMDb creates an OMDb client. An empty base URL selects the public endpoint.
func NewOMDb(cfg *Config) *OMDb {
	base := cfg.BaseURL
	if base == "" {
		base = OMDbURL
	}
	return &OMDb{baseURL: base, apiKey: cfg.APIKey, http: newHTTPClient(cfg)}
}

// Name is the catalog label used in metrics and logs.
func (o *OMDb) Name() string { return "omdb" }

// Poster returns the poster URL for the movie titled term.
// An unknown title returns domain.ErrNoMatch; a known title without a poster returns "".
func (o *OMDb) Poster(ctx context.Context, term string) (string, error) {
	params := url.Values{
		"apikey": {o.apiKey},
		"t":      {term},
		"r":      {"json"},
	}

	var resp struct {
		Poster   string `json:"Poster"`
		Response string `json:"Response"`
		Error    string `json:"Error"`
	}
	if err := getJSON(ctx, o.http, o.Name(), o.baseURL, params, &resp); err != nil {
		return "", err
	}

	if resp.Response == "False" {
		recordOutcome(o.Name(), false)
		return "", fmt.Errorf("omdb %q: %s: %w", term, resp.Error, domain.ErrNoMatch)
	}
	recordOutcome(o.Name(), true)
	return resp.Poster, nil
}
