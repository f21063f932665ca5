package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kailas-cloud/spotlight/internal/domain"
)

// GoogleBooksURL is the public volumes endpoint.
const GoogleBooksURL = "https://www.googleapis.com/books/v1/volumes"

const volumeFields = "items(volumeInfo/infoLink,volumeInfo/publishedDate,volumeInfo/imageLinks/thumbnail)"

// GoogleBooks looks up book volumes by title.
type GoogleBooks struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewGoogleBooks creates a Google Books client. An empty base URL selects the public endpoint.
func NewGoogleBooks(cfg *Config) *GoogleBooks {
	base := cfg.BaseURL
	if base == "" {
		base = GoogleBooksURL
	}
	return &GoogleBooks{baseURL: base, apiKey: cfg.APIKey, http: newHTTPClient(cfg)}
}

// Name is the catalog label used in metrics and logs.
func (g *GoogleBooks) Name() string { return "google_books" }

// Volume returns the first volume whose title matches term.
// term must already be normalized. No result returns domain.ErrNoMatch.
func (g *GoogleBooks) Volume(ctx context.Context, term string) (domain.BookVolume, error) {
	params := url.Values{
		"q":          {"intitle:" + term},
		"maxResults": {"1"},
		"fields":     {volumeFields},
	}
	if g.apiKey != "" {
		params.Set("key", g.apiKey)
	}

	var resp struct {
		Items []struct {
			VolumeInfo struct {
				InfoLink      string `json:"infoLink"`
				PublishedDate string `json:"publishedDate"`
				ImageLinks    struct {
					Thumbnail string `json:"thumbnail"`
				} `json:"imageLinks"`
			} `json:"volumeInfo"`
		} `json:"items"`
	}
	if err := getJSON(ctx, g.http, g.Name(), g.baseURL, params, &resp); err != nil {
		return domain.BookVolume{}, err
	}

	if len(resp.Items) == 0 {
		recordOutcome(g.Name(), false)
		return domain.BookVolume{}, fmt.Errorf("google books %q: %w", term, domain.ErrNoMatch)
	}
	recordOutcome(g.Name(), true)

	info := resp.Items[0].VolumeInfo
	return domain.BookVolume{
		InfoLink:      info.InfoLink,
		PublishedDate: info.PublishedDate,
		Thumbnail:     info.ImageLinks.Thumbnail,
	}, nil
}
