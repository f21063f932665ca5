package enrich

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/spotlight/internal/domain"
)

// InstrumentedStrategy wraps a Strategy with logging.
// Lookup metrics (outcomes, duration) are recorded in transport/catalog.
type InstrumentedStrategy struct {
	inner   Strategy
	catalog string
	logger  *zap.Logger
}

// NewInstrumentedStrategy wraps a strategy with observability.
func NewInstrumentedStrategy(inner Strategy, catalog string, logger *zap.Logger) *InstrumentedStrategy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstrumentedStrategy{inner: inner, catalog: catalog, logger: logger}
}

// Lookup delegates to the inner strategy and logs failures at warn.
func (p *InstrumentedStrategy) Lookup(ctx context.Context, term string) (domain.Metadata, error) {
	start := time.Now()

	md, err := p.inner.Lookup(ctx, term)

	duration := time.Since(start)

	if err != nil {
		p.logger.Warn("Enrichment lookup failed, using sentinel values",
			zap.String("catalog", p.catalog),
			zap.String("term", term),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	p.logger.Debug("Enrichment lookup completed",
		zap.String("catalog", p.catalog),
		zap.String("term", term),
		zap.Duration("duration", duration),
	)
	return md, nil
}

// Defaults delegates to the inner strategy.
func (p *InstrumentedStrategy) Defaults() domain.Metadata { return p.inner.Defaults() }

// Strip delegates to the inner strategy.
func (p *InstrumentedStrategy) Strip() []string { return p.inner.Strip() }
