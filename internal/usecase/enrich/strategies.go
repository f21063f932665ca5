package enrich

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/kailas-cloud/spotlight/internal/domain"
)

// Book enrichment fields and their sentinels.
const (
	FieldCoverURL    = "coverUrl"
	FieldPublishYear = "publishYear"
	FieldInfoURL     = "infoUrl"

	NoCoverURL = "https://books.google.co.id/googlebooks/images/no_cover_thumb.gif"
	NoDate     = "NO_DATE"
	NoLink     = "NO_LINK"
)

// FieldPosterURL is the movie enrichment field.
const FieldPosterURL = "cover_url"

// TravelImages is the fixed cover image pool for travel destinations.
var TravelImages = []string{
	"https://storage.googleapis.com/travel-image/candi.jpg",
	"https://storage.googleapis.com/travel-image/colors.jpg",
	"https://storage.googleapis.com/travel-image/culture.jpg",
	"https://storage.googleapis.com/travel-image/danau.jpg",
	"https://storage.googleapis.com/travel-image/exports.jpg",
	"https://storage.googleapis.com/travel-image/gate.jpg",
	"https://storage.googleapis.com/travel-image/gunung.jpg",
	"https://storage.googleapis.com/travel-image/gunung2.jpg",
	"https://storage.googleapis.com/travel-image/jakarta.jpg",
	"https://storage.googleapis.com/travel-image/mist.jpg",
	"https://storage.googleapis.com/travel-image/pagoda.jpg",
	"https://storage.googleapis.com/travel-image/sawah.jpg",
	"https://storage.googleapis.com/travel-image/waterfall.jpg",
}

// BookStrategy enriches books from a volume catalog.
type BookStrategy struct {
	volumes VolumeFinder
}

// NewBookStrategy creates the book strategy.
func NewBookStrategy(volumes VolumeFinder) *BookStrategy {
	return &BookStrategy{volumes: volumes}
}

// Lookup maps the first matching volume to book fields. Fields missing from the volume get
// their catalog sentinels (no cover image, NO_DATE, NO_LINK).
func (b *BookStrategy) Lookup(ctx context.Context, term string) (domain.Metadata, error) {
	v, err := b.volumes.Volume(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("book volume: %w", err)
	}
	return domain.Metadata{
		FieldCoverURL:    orDefault(v.Thumbnail, NoCoverURL),
		FieldPublishYear: orDefault(v.PublishedDate, NoDate),
		FieldInfoURL:     orDefault(v.InfoLink, NoLink),
	}, nil
}

// Defaults are assigned when the lookup fails.
func (b *BookStrategy) Defaults() domain.Metadata {
	return domain.Metadata{
		FieldCoverURL:    NoCoverURL,
		FieldPublishYear: NoDate,
		FieldInfoURL:     "",
	}
}

// Strip removes nothing from books.
func (b *BookStrategy) Strip() []string { return nil }

// MovieStrategy enriches movies with a poster URL.
type MovieStrategy struct {
	posters PosterFinder
}

// NewMovieStrategy creates the movie strategy.
func NewMovieStrategy(posters PosterFinder) *MovieStrategy {
	return &MovieStrategy{posters: posters}
}

// Lookup fetches the poster. A missing poster is "".
func (m *MovieStrategy) Lookup(ctx context.Context, term string) (domain.Metadata, error) {
	poster, err := m.posters.Poster(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("movie poster: %w", err)
	}
	return domain.Metadata{FieldPosterURL: poster}, nil
}

// Defaults are assigned when the lookup fails.
func (m *MovieStrategy) Defaults() domain.Metadata {
	return domain.Metadata{FieldPosterURL: ""}
}

// Strip removes model-internal scoring fields.
func (m *MovieStrategy) Strip() []string {
	return []string{"combined_features", "similarity_score"}
}

// TravelStrategy assigns a random cover from a fixed image pool. It makes no network calls.
type TravelStrategy struct {
	images []string
	pick   func(n int) int
}

// NewTravelStrategy creates the travel strategy. pick returns an index in [0, n); nil uses math/rand.
func NewTravelStrategy(images []string, pick func(n int) int) *TravelStrategy {
	if len(images) == 0 {
		images = TravelImages
	}
	if pick == nil {
		pick = rand.IntN
	}
	return &TravelStrategy{images: images, pick: pick}
}

// Lookup picks a cover image.
func (t *TravelStrategy) Lookup(_ context.Context, _ string) (domain.Metadata, error) {
	return domain.Metadata{FieldCoverURL: t.images[t.pick(len(t.images))]}, nil
}

// Defaults are assigned when the lookup fails.
func (t *TravelStrategy) Defaults() domain.Metadata {
	return domain.Metadata{FieldCoverURL: t.images[0]}
}

// Strip removes coordinates and model-internal fields.
func (t *TravelStrategy) Strip() []string {
	return []string{"Categories_Label", "Lat", "Long", "_1"}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
