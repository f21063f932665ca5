// Package preference maps stored survey answers to model queries.
package preference

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/kailas-cloud/spotlight/internal/domain"
)

// Survey answers with a shared meaning across domains.
const (
	NeedRecommendations = "No, I need recommendations"
	NoPreferences       = "No preferences"
)

// RandomText is the free-text marker sent when the user gave no topic.
const RandomText = "random"

// IntSource draws an integer in the closed range [lo, hi].
type IntSource func(lo, hi int) int

// Builder turns survey records into preference queries.
type Builder struct {
	randInt IntSource
}

// Option configures a Builder.
type Option func(*Builder)

// WithIntSource replaces the random source used for range-valued answers.
func WithIntSource(src IntSource) Option {
	return func(b *Builder) {
		if src != nil {
			b.randInt = src
		}
	}
}

// New creates a Builder.
func New(opts ...Option) *Builder {
	b := &Builder{randInt: uniformInt}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Build maps a survey to the query for d. It never fails: unknown answers map to per-field defaults.
func (b *Builder) Build(d domain.Domain, s domain.SurveyRecord) domain.PreferenceQuery {
	var fields map[string]any
	switch d {
	case domain.Books:
		fields = b.books(s)
	case domain.Movies:
		fields = b.movies(s)
	case domain.Travel:
		fields = b.travel(s)
	case domain.Stress:
		fields = b.stress(s)
	default:
		fields = map[string]any{"text": RandomText}
	}
	return domain.NewPreferenceQuery(fields)
}

func uniformInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rand.IntN(hi-lo+1) //nolint:gosec // not security sensitive
}

// leadingInt parses the integer prefix of s ("4 stars" -> 4).
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// scalar returns s as a number when it parses as one, otherwise unchanged.
func scalar(s string) any {
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return f
	}
	return s
}
