package recommend

import (
	"context"

	"github.com/kailas-cloud/spotlight/internal/domain"
)

// Recommender calls one domain's recommendation model.
type Recommender interface {
	Recommend(ctx context.Context, query domain.PreferenceQuery, call string) ([]domain.RawItem, error)
}

// QueryBuilder maps survey answers to a model query.
type QueryBuilder interface {
	Build(d domain.Domain, s domain.SurveyRecord) domain.PreferenceQuery
}

// Enricher attaches catalog metadata to items. It never fails.
type Enricher interface {
	Enrich(ctx context.Context, d domain.Domain, items []domain.Item) []domain.Item
}

// ProfileStore reads users and their stored surveys.
type ProfileStore interface {
	UserExists(ctx context.Context, uid string) (bool, error)
	GetSurvey(ctx context.Context, uid string, kind domain.SurveyKind) (domain.SurveyRecord, error)
}
