// Package stress predicts a user's stress level from the stored stress survey.
package stress

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/spotlight/internal/domain"
	"github.com/kailas-cloud/spotlight/internal/logger"
)

// Service handles stress predictions.
type Service struct {
	predictor Predictor
	builder   QueryBuilder
	profiles  ProfileStore
}

// New creates a stress prediction service.
func New(predictor Predictor, builder QueryBuilder, profiles ProfileStore) *Service {
	return &Service{predictor: predictor, builder: builder, profiles: profiles}
}

// Predict returns the model's stress level for uid.
func (s *Service) Predict(ctx context.Context, uid string) (any, error) {
	exists, err := s.profiles.UserExists(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("user %q: %w", uid, domain.ErrUserNotFound)
	}

	survey, err := s.profiles.GetSurvey(ctx, uid, domain.SurveyStress)
	if err != nil {
		return nil, fmt.Errorf("get stress survey: %w", err)
	}

	query := s.builder.Build(domain.Stress, survey)

	level, err := s.predictor.Predict(context.WithoutCancel(ctx), query)
	if err != nil {
		logger.FromContext(ctx).Error("stress prediction failed", zap.Error(err))
		return nil, fmt.Errorf("predict stress: %w", err)
	}
	return level, nil
}
