package domain

import (
	"maps"

	json "github.com/goccy/go-json"
)

// PreferenceQuery is the normalized input to a model call. It is immutable once built.
type PreferenceQuery struct {
	fields map[string]any
}

// NewPreferenceQuery copies fields into a new query. A nil map yields an empty query.
func NewPreferenceQuery(fields map[string]any) PreferenceQuery {
	if fields == nil {
		return PreferenceQuery{fields: map[string]any{}}
	}
	return PreferenceQuery{fields: maps.Clone(fields)}
}

// Get returns a single field.
func (q PreferenceQuery) Get(key string) (any, bool) {
	v, ok := q.fields[key]
	return v, ok
}

// Len returns the number of fields.
func (q PreferenceQuery) Len() int { return len(q.fields) }

// Fields returns a copy of the query fields.
func (q PreferenceQuery) Fields() map[string]any {
	if q.fields == nil {
		return map[string]any{}
	}
	return maps.Clone(q.fields)
}

// Body encodes the query as the model request body. The zero query encodes as {}.
func (q PreferenceQuery) Body() ([]byte, error) {
	return json.Marshal(q.Fields()) //nolint:wrapcheck // encoder passthrough
}

// MarshalJSON encodes the query like Body.
func (q PreferenceQuery) MarshalJSON() ([]byte, error) {
	return q.Body()
}
