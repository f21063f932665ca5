package domain

import (
	"fmt"
	"maps"

	json "github.com/goccy/go-json"
)

// RawItem is one element returned by a model. Its schema is open.
type RawItem map[string]any

// Metadata holds enrichment fields assigned onto an item.
type Metadata map[string]any

// Item is a recommendation: a model item plus its enrichment fields.
type Item struct {
	raw      RawItem
	enriched Metadata
}

// NewItem wraps a raw model item. The raw map is copied.
func NewItem(raw RawItem) Item {
	return Item{raw: maps.Clone(raw), enriched: Metadata{}}
}

// NewItems wraps a sequence of raw items, preserving order.
func NewItems(raws []RawItem) []Item {
	out := make([]Item, len(raws))
	for i, r := range raws {
		out[i] = NewItem(r)
	}
	return out
}

// Title returns the identifying field as a string.
func (it *Item) Title(field string) string {
	v, ok := it.raw[field]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Field returns a field from the enrichment set first, then from the raw item.
func (it *Item) Field(key string) (any, bool) {
	if v, ok := it.enriched[key]; ok {
		return v, true
	}
	v, ok := it.raw[key]
	return v, ok
}

// Raw returns a copy of the raw model fields.
func (it *Item) Raw() RawItem { return maps.Clone(it.raw) }

// Enrichment returns a copy of the enrichment fields.
func (it *Item) Enrichment() Metadata { return maps.Clone(it.enriched) }

// Enrich assigns enrichment fields, overwriting earlier values.
func (it *Item) Enrich(md Metadata) {
	if it.enriched == nil {
		it.enriched = Metadata{}
	}
	for k, v := range md {
		it.enriched[k] = v
	}
}

// Strip removes raw fields that must not reach the caller.
func (it *Item) Strip(fields ...string) {
	for _, f := range fields {
		delete(it.raw, f)
	}
}

// MarshalJSON flattens raw and enrichment fields into one object.
func (it Item) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(it.raw)+len(it.enriched))
	for k, v := range it.raw {
		out[k] = v
	}
	for k, v := range it.enriched {
		out[k] = v
	}
	return json.Marshal(out) //nolint:wrapcheck // encoder passthrough
}

// RecommendationList is an ordered list of recommendations.
type RecommendationList []Item
