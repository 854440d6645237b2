package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/erginozdemir/tools4audit/internal/domain"
)

// AgingUseCase computes aging reports and serves them back by handle.
type AgingUseCase struct {
	reader  TableReader
	store   ReportStore
	idGen   IDGenerator
	metrics ReportMetrics
	ttl     time.Duration
	logger  zerolog.Logger
}

// AgingOption configures an AgingUseCase.
type AgingOption func(*AgingUseCase)

// WithReportTTL overrides DefaultReportTTL.
func WithReportTTL(ttl time.Duration) AgingOption {
	return func(uc *AgingUseCase) {
		if ttl > 0 {
			uc.ttl = ttl
		}
	}
}

// WithAgingMetrics records every build.
func WithAgingMetrics(m ReportMetrics) AgingOption {
	return func(uc *AgingUseCase) { uc.metrics = m }
}

// WithAgingLogger sets the logger.
func WithAgingLogger(l zerolog.Logger) AgingOption {
	return func(uc *AgingUseCase) { uc.logger = l }
}

// NewAgingUseCase creates a new AgingUseCase.
func NewAgingUseCase(reader TableReader, store ReportStore, idGen IDGenerator, opts ...AgingOption) *AgingUseCase {
	uc := &AgingUseCase{
		reader: reader,
		store:  store,
		idGen:  idGen,
		ttl:    DefaultReportTTL,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// BuildAgingInput represents input for building an aging report.
type BuildAgingInput struct {
	Table    *domain.Table
	Warnings []domain.ParseWarning
}

// BuildFromWorkbook reads an uploaded workbook and builds its report.
func (uc *AgingUseCase) BuildFromWorkbook(ctx context.Context, r io.Reader) (*domain.AgingReport, error) {
	table, warnings, err := uc.reader.ReadTable(r)
	if err != nil {
		return nil, err
	}
	return uc.BuildAgingReport(ctx, BuildAgingInput{Table: table, Warnings: warnings})
}

// BuildAgingReport runs sort → allocate → classify → pivot on a private copy
// of the table and stores the result under a fresh handle.
func (uc *AgingUseCase) BuildAgingReport(ctx context.Context, input BuildAgingInput) (*domain.AgingReport, error) {
	start := time.Now()

	report, err := ComputeAging(input.Table, input.Warnings)
	if err != nil {
		return nil, err
	}
	report.ID = uc.idGen.Generate()

	if err := uc.store.Save(ctx, report, uc.ttl); err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	duration := time.Since(start)
	if uc.metrics != nil {
		uc.metrics.ObserveReport(ReportKindAging, report.RowCount, len(report.Warnings), duration)
	}
	for _, w := range report.Warnings {
		uc.logger.Debug().Str("report_id", report.ID).Str("warning", w.String()).Msg("row kept with missing value")
	}
	uc.logger.Info().
		Str("report_id", report.ID).
		Int("rows", report.RowCount).
		Int("accounts", report.AccountCount).
		Int("warnings", len(report.Warnings)).
		Dur("duration", duration).
		Msg("aging report built")

	return report, nil
}

// GetAgingReport returns a stored report by handle.
func (uc *AgingUseCase) GetAgingReport(ctx context.Context, id string) (*domain.AgingReport, error) {
	return uc.store.Get(ctx, id)
}

// ComputeAging builds an aging report without storing it.
func ComputeAging(table *domain.Table, warnings []domain.ParseWarning) (*domain.AgingReport, error) {
	if table == nil {
		table = &domain.Table{}
	}
	// tables built without NewTable may carry several names per code
	table = domain.NewTable(table.Rows)

	sorted := domain.SortForAging(table)

	allocs, err := domain.Allocate(sorted)
	if err != nil {
		return nil, err
	}

	pivot, err := domain.BuildPivot(allocs)
	if err != nil {
		return nil, err
	}

	matrix, err := pivot.Format()
	if err != nil {
		return nil, err
	}

	return &domain.AgingReport{
		CreatedAt:    time.Now().UTC(),
		RowCount:     table.Len(),
		AccountCount: table.AccountCount(),
		Pivot:        pivot,
		Matrix:       matrix,
		Allocations:  allocs,
		Warnings:     warnings,
	}, nil
}
