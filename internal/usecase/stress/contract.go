package stress

import (
	"context"

	"github.com/kailas-cloud/spotlight/internal/domain"
)

// Predictor calls the stress prediction model.
type Predictor interface {
	Predict(ctx context.Context, query domain.PreferenceQuery) (any, error)
}

// QueryBuilder maps survey answers to a model query.
type QueryBuilder interface {
	Build(d domain.Domain, s domain.SurveyRecord) domain.PreferenceQuery
}

// ProfileStore reads users and their stored surveys.
type ProfileStore interface {
	UserExists(ctx context.Context, uid string) (bool, error)
	GetSurvey(ctx context.Context, uid string, kind domain.SurveyKind) (domain.SurveyRecord, error)
}
