// Package memory keeps computed reports in process memory.
package memory

import (
	"context"
	"time"

	"github.com/erginozdemir/tools4audit/internal/domain"
)

// ReportStore implements usecase.ReportStore with an in-process LRU cache.
// Reports are lost on restart.
type ReportStore struct {
	cache *lruCache[*domain.AgingReport]
}

// NewReportStore creates a store holding at most maxReports reports.
func NewReportStore(maxReports int) *ReportStore {
	return &ReportStore{cache: newLRUCache[*domain.AgingReport](maxReports)}
}

// Save stores the report under its ID.
func (s *ReportStore) Save(_ context.Context, report *domain.AgingReport, ttl time.Duration) error {
	s.cache.set(report.ID, report, ttl)
	return nil
}

// Get returns the report or domain.ErrReportNotFound.
func (s *ReportStore) Get(_ context.Context, id string) (*domain.AgingReport, error) {
	report, ok := s.cache.get(id)
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	return report, nil
}

// Ping always succeeds.
func (s *ReportStore) Ping(context.Context) error {
	return nil
}

// Len returns the number of reports held, expired ones included until they
// are swept.
func (s *ReportStore) Len() int {
	return s.cache.size()
}

// StartJanitor sweeps expired reports every interval until ctx is done.
func (s *ReportStore) StartJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.cache.cleanExpired()
			}
		}
	}()
}
