package enrich

import (
	"context"

	"github.com/kailas-cloud/spotlight/internal/domain"
)

// Strategy enriches items of one domain.
type Strategy interface {
	// Lookup fetches enrichment fields for the item identified by the normalized term.
	Lookup(ctx context.Context, term string) (domain.Metadata, error)
	// Defaults returns the sentinel value of every enrichment field. Used for failed lookups
	// and for fields a successful lookup left unset.
	Defaults() domain.Metadata
	// Strip lists raw fields removed from every item.
	Strip() []string
}

// VolumeFinder looks up book volumes (Google Books).
type VolumeFinder interface {
	Volume(ctx context.Context, term string) (domain.BookVolume, error)
}

// PosterFinder looks up movie posters (OMDb).
type PosterFinder interface {
	Poster(ctx context.Context, term string) (string, error)
}
