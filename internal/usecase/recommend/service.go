// Package recommend runs the recommendation pipeline: build query, call the model,
// pad short results with filler, enrich.
package recommend

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/spotlight/internal/domain"
	"github.com/kailas-cloud/spotlight/internal/logger"
	"github.com/kailas-cloud/spotlight/internal/metrics"
)

// State is a pipeline stage.
type State string

const (
	StateBuildingQuery State = "building_query"
	StateCallingModel  State = "calling_model"
	StateFilling       State = "filling"
	StateEnriching     State = "enriching"
	StateDone          State = "done"
	StateFailed        State = "failed"
)

const primaryCall = "primary"

// Pipeline is the per-domain configuration of the recommendation flow.
type Pipeline struct {
	Client      Recommender
	TargetCount int
	// Filler pads short results. Nil disables padding.
	Filler *Filler
}

// Service orchestrates recommendation pipelines.
type Service struct {
	pipelines map[domain.Domain]Pipeline
	builder   QueryBuilder
	enricher  Enricher
	profiles  ProfileStore
}

// New creates a recommendation service.
func New(
	pipelines map[domain.Domain]Pipeline,
	builder QueryBuilder, enricher Enricher, profiles ProfileStore,
) *Service {
	return &Service{pipelines: pipelines, builder: builder, enricher: enricher, profiles: profiles}
}

// Recommend loads the user's preference survey and runs the pipeline for d.
func (s *Service) Recommend(ctx context.Context, d domain.Domain, uid string) (domain.RecommendationList, error) {
	if _, ok := s.pipelines[d]; !ok {
		return nil, fmt.Errorf("%s: %w", d, domain.ErrUnknownDomain)
	}

	exists, err := s.profiles.UserExists(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("user %q: %w", uid, domain.ErrUserNotFound)
	}

	survey, err := s.profiles.GetSurvey(ctx, uid, domain.SurveyPreferences)
	if err != nil {
		return nil, fmt.Errorf("get survey: %w", err)
	}

	return s.Run(ctx, d, survey)
}

// Run executes the pipeline for one survey. A failed primary model call aborts the run;
// filler and enrichment failures only reduce or default the output.
// Once started, a run ignores cancellation of ctx; only per-call timeouts apply.
func (s *Service) Run(ctx context.Context, d domain.Domain, survey domain.SurveyRecord) (domain.RecommendationList, error) {
	p, ok := s.pipelines[d]
	if !ok {
		return nil, fmt.Errorf("%s: %w", d, domain.ErrUnknownDomain)
	}
	ctx = context.WithoutCancel(ctx)
	log := logger.FromContext(ctx).With(zap.String("domain", string(d)))

	target := p.TargetCount
	if target <= 0 {
		target = domain.DefaultTargetCount
	}

	transition(log, StateBuildingQuery)
	query := s.builder.Build(d, survey)

	transition(log, StateCallingModel)
	primary, err := p.Client.Recommend(ctx, query, primaryCall)
	if err != nil {
		transition(log, StateFailed, zap.Error(err))
		metrics.PipelineRunsTotal.WithLabelValues(string(d), string(StateFailed)).Inc()
		return nil, fmt.Errorf("%s recommend: %w", d, err)
	}
	if len(primary) > target {
		primary = primary[:target]
	}

	raws := primary
	if needed := target - len(primary); needed > 0 && p.Filler != nil {
		transition(log, StateFilling, zap.Int("primary", len(primary)), zap.Int("needed", needed))
		filler, err := p.Filler.Fill(ctx, needed)
		if err != nil {
			log.Warn("filler call failed, returning primary items only", zap.Error(err))
		}
		metrics.FillerItemsTotal.WithLabelValues(string(d)).Add(float64(len(filler)))
		raws = append(raws[:len(raws):len(raws)], filler...)
	}

	transition(log, StateEnriching, zap.Int("items", len(raws)))
	items := s.enricher.Enrich(ctx, d, domain.NewItems(raws))

	transition(log, StateDone, zap.Int("items", len(items)))
	metrics.PipelineRunsTotal.WithLabelValues(string(d), string(StateDone)).Inc()
	return domain.RecommendationList(items), nil
}

func transition(log *zap.Logger, to State, fields ...zap.Field) {
	if to == StateFailed {
		log.Error("recommendation pipeline failed", fields...)
		return
	}
	log.Debug("recommendation pipeline state", append([]zap.Field{zap.String("state", string(to))}, fields...)...)
}
