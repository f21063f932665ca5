package health

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/spotlight/internal/logger"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// DatabaseCheck is the report key of the profile store.
const DatabaseCheck = "database"

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Up reports whether every check passed.
func (r Report) Up() bool { return r.Status == Healthy }

// Service coordinates health checks.
type Service struct {
	db       DBPinger
	services map[string]Heartbeater
}

// New creates a Service. db can be nil; services is keyed by report name (e.g. "book_api").
func New(db DBPinger, services map[string]Heartbeater) *Service {
	return &Service{db: db, services: services}
}

// Check pings the store and every model service concurrently.
func (s *Service) Check(ctx context.Context) Report {
	var (
		mu     sync.Mutex
		checks = make(map[string]CheckResult, len(s.services)+1)
		g      errgroup.Group
	)
	record := func(name string, err error) {
		result := CheckOK
		if err != nil {
			logger.FromContext(ctx).Warn("health check failed", zap.String("component", name), zap.Error(err))
			result = CheckError
		}
		mu.Lock()
		checks[name] = result
		mu.Unlock()
	}

	if s.db != nil {
		g.Go(func() error {
			record(DatabaseCheck, s.db.Ping(ctx))
			return nil
		})
	}
	for name, svc := range s.services {
		g.Go(func() error {
			record(name, svc.Heartbeat(ctx))
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, v := range checks {
		if v == CheckError {
			failed++
		}
	}

	status := Healthy
	switch {
	case failed > 0 && failed == len(checks):
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
