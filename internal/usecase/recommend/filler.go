package recommend

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/spotlight/internal/domain"
)

// fillerCall labels filler requests; it matches model.CallFiller.
const fillerCall = "filler"

// Filler requests generic items to pad a short result list.
type Filler struct {
	client Recommender
	query  domain.PreferenceQuery
}

// NewFiller creates a filler that sends query, a "no specific preference" marker, to client.
func NewFiller(client Recommender, query domain.PreferenceQuery) *Filler {
	return &Filler{client: client, query: query}
}

// Fill returns at most needed generic items in the order the model returned them.
// Duplicates of primary items are kept.
func (f *Filler) Fill(ctx context.Context, needed int) ([]domain.RawItem, error) {
	if needed <= 0 {
		return nil, nil
	}
	items, err := f.client.Recommend(ctx, f.query, fillerCall)
	if err != nil {
		return nil, fmt.Errorf("filler: %w", err)
	}
	if len(items) > needed {
		items = items[:needed]
	}
	return items, nil
}
