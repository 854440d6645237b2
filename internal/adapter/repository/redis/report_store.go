package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/erginozdemir/tools4audit/internal/domain"
)

// ReportStore implements usecase.ReportStore using Redis. Reports are kept
// as JSON and expire through the key TTL.
type ReportStore struct {
	client  *redis.Client
	prefix  string
	retrier *Retrier
}

// NewReportStore creates a new ReportStore.
func NewReportStore(client *redis.Client, retrier *Retrier) *ReportStore {
	if retrier == nil {
		retrier = NewRetrier()
	}
	return &ReportStore{
		client:  client,
		prefix:  "report:",
		retrier: retrier,
	}
}

// Save stores the report under its ID.
func (s *ReportStore) Save(ctx context.Context, report *domain.AgingReport, ttl time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report %s: %w", report.ID, err)
	}
	return s.retrier.Retry(ctx, func() error {
		return s.client.Set(ctx, s.prefix+report.ID, data, ttl).Err()
	})
}

// Get returns the report or domain.ErrReportNotFound.
func (s *ReportStore) Get(ctx context.Context, id string) (*domain.AgingReport, error) {
	var data []byte
	err := s.retrier.Retry(ctx, func() error {
		var err error
		data, err = s.client.Get(ctx, s.prefix+id).Bytes()
		return err
	})
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}

	var report domain.AgingReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", id, err)
	}
	return &report, nil
}

// Ping checks the connection.
func (s *ReportStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
