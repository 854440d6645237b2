package usecase

import (
	"context"
	"io"
	"time"

	"github.com/erginozdemir/tools4audit/internal/domain"
)

// TableReader turns an uploaded workbook into a transaction table.
type TableReader interface {
	// ReadTable returns the table plus non-fatal warnings for rows that were
	// kept with a missing value.
	ReadTable(r io.Reader) (*domain.Table, []domain.ParseWarning, error)
}

// ReportStore keeps computed aging reports under their handle so a later
// request (the download) can address them.
type ReportStore interface {
	Save(ctx context.Context, report *domain.AgingReport, ttl time.Duration) error
	// Get returns domain.ErrReportNotFound when the handle is unknown or expired.
	Get(ctx context.Context, id string) (*domain.AgingReport, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// ReportMetrics records report computations.
type ReportMetrics interface {
	ObserveReport(kind string, rows, warnings int, duration time.Duration)
}
