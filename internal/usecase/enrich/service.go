// Package enrich attaches catalog metadata to recommendation items.
package enrich

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/spotlight/internal/domain"
)

// Service runs one lookup per item concurrently and joins on all of them.
type Service struct {
	strategies     map[domain.Domain]Strategy
	maxConcurrency int
	logger         *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithMaxConcurrency caps simultaneous lookups. Zero or less means unbounded.
func WithMaxConcurrency(n int) Option {
	return func(s *Service) { s.maxConcurrency = n }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates an enrichment service.
func New(strategies map[domain.Domain]Strategy, opts ...Option) *Service {
	s := &Service{strategies: strategies, logger: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Enrich populates every enrichment field of items in place and returns them in input order.
// It never fails: a failed lookup leaves that item with sentinel values and does not affect others.
func (s *Service) Enrich(ctx context.Context, d domain.Domain, items []domain.Item) []domain.Item {
	strategy, ok := s.strategies[d]
	if !ok || len(items) == 0 {
		return items
	}

	field := d.TitleField()

	var g errgroup.Group
	if s.maxConcurrency > 0 {
		g.SetLimit(s.maxConcurrency)
	}
	for i := range items {
		it := &items[i]
		g.Go(func() error {
			s.enrichOne(ctx, strategy, field, it)
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors

	return items
}

func (s *Service) enrichOne(ctx context.Context, strategy Strategy, field string, it *domain.Item) {
	defaults := strategy.Defaults()
	it.Strip(strategy.Strip()...)

	md, err := s.lookup(ctx, strategy, NormalizeTitle(it.Title(field)))
	if err != nil {
		it.Enrich(defaults)
		return
	}
	for k, v := range defaults {
		if _, ok := md[k]; !ok {
			md[k] = v
		}
	}
	it.Enrich(md)
}

func (s *Service) lookup(ctx context.Context, strategy Strategy, term string) (md domain.Metadata, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("enrichment lookup panicked", zap.String("term", term), zap.Any("panic", r))
			md, err = nil, fmt.Errorf("lookup panic: %v: %w", r, domain.ErrLookup)
		}
	}()

	md, err = strategy.Lookup(ctx, term)
	if err == nil && md == nil {
		md = domain.Metadata{}
	}
	return md, err
}
