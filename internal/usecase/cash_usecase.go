package usecase

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/erginozdemir/tools4audit/internal/domain"
)

// CashUseCase runs the cash-risk analyses over a transaction table.
type CashUseCase struct {
	reader    TableReader
	threshold decimal.Decimal
	matcher   *domain.KeywordMatcher
	metrics   ReportMetrics
	logger    zerolog.Logger
}

// CashOption configures a CashUseCase.
type CashOption func(*CashUseCase)

// WithDefaultThreshold sets the threshold used when a request carries none.
func WithDefaultThreshold(threshold decimal.Decimal) CashOption {
	return func(uc *CashUseCase) {
		if threshold.IsPositive() {
			uc.threshold = threshold
		}
	}
}

// WithRiskKeywords replaces the default keyword set.
func WithRiskKeywords(keywords []string) CashOption {
	return func(uc *CashUseCase) {
		if len(keywords) > 0 {
			uc.matcher = domain.NewKeywordMatcher(keywords)
		}
	}
}

// WithCashMetrics records every analysis.
func WithCashMetrics(m ReportMetrics) CashOption {
	return func(uc *CashUseCase) { uc.metrics = m }
}

// WithCashLogger sets the logger.
func WithCashLogger(l zerolog.Logger) CashOption {
	return func(uc *CashUseCase) { uc.logger = l }
}

// NewCashUseCase creates a new CashUseCase.
func NewCashUseCase(reader TableReader, opts ...CashOption) *CashUseCase {
	uc := &CashUseCase{
		reader:    reader,
		threshold: domain.DefaultLargeThreshold,
		matcher:   domain.NewKeywordMatcher(domain.DefaultRiskKeywords),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// AnalyzeCashInput represents input for a cash analysis.
type AnalyzeCashInput struct {
	Table    *domain.Table
	Warnings []domain.ParseWarning
	// Threshold overrides the configured large-transaction threshold when set.
	Threshold *decimal.Decimal
}

// Threshold returns the configured large-transaction threshold.
func (uc *CashUseCase) Threshold() decimal.Decimal {
	return uc.threshold
}

// Keywords returns the configured risk keywords.
func (uc *CashUseCase) Keywords() []string {
	return uc.matcher.Keywords()
}

// AnalyzeWorkbook reads an uploaded workbook and analyzes it.
func (uc *CashUseCase) AnalyzeWorkbook(r io.Reader, threshold *decimal.Decimal) (*domain.CashReport, error) {
	table, warnings, err := uc.reader.ReadTable(r)
	if err != nil {
		return nil, err
	}
	return uc.Analyze(AnalyzeCashInput{Table: table, Warnings: warnings, Threshold: threshold})
}

// Analyze computes every section of the cash report. A failing section is
// recorded in the report's Errors and does not stop the others.
func (uc *CashUseCase) Analyze(input AnalyzeCashInput) (*domain.CashReport, error) {
	start := time.Now()

	threshold := uc.threshold
	if input.Threshold != nil {
		if input.Threshold.IsNegative() {
			return nil, fmt.Errorf("threshold %s: %w", input.Threshold, domain.ErrInvalidAmount)
		}
		threshold = *input.Threshold
	}

	table := &domain.Table{}
	if input.Table != nil {
		table = domain.NewTable(input.Table.Rows)
	}

	report := &domain.CashReport{
		AccountCount:      table.AccountCount(),
		Threshold:         threshold,
		Keywords:          uc.matcher.Keywords(),
		AccountTotals:     []domain.AccountTotal{},
		LargeTransactions: []domain.LargeTransaction{},
		NegativeBalances:  []domain.DailyBalance{},
		KeywordMatches:    []domain.KeywordMatch{},
		Warnings:          input.Warnings,
	}

	uc.section(report, domain.SectionAccountTotals, func() error {
		report.AccountTotals = domain.AccountTotals(table)
		return nil
	})
	uc.section(report, domain.SectionLargeTransaction, func() error {
		large, err := domain.LargeTransactions(table, threshold)
		if err != nil {
			return err
		}
		report.LargeTransactions = large
		return nil
	})
	uc.section(report, domain.SectionNegativeBalances, func() error {
		report.NegativeBalances = domain.NegativeBalances(table)
		return nil
	})
	uc.section(report, domain.SectionKeywordMatches, func() error {
		report.KeywordMatches = uc.matcher.Matches(table)
		return nil
	})

	duration := time.Since(start)
	if uc.metrics != nil {
		uc.metrics.ObserveReport(ReportKindCash, table.Len(), len(input.Warnings), duration)
	}
	uc.logger.Info().
		Int("rows", table.Len()).
		Int("accounts", report.AccountCount).
		Int("large", len(report.LargeTransactions)).
		Int("negative_days", len(report.NegativeBalances)).
		Int("keyword_matches", len(report.KeywordMatches)).
		Int("failed_sections", len(report.Errors)).
		Dur("duration", duration).
		Msg("cash analysis completed")

	return report, nil
}

func (uc *CashUseCase) section(report *domain.CashReport, name string, fn func() error) {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return fn()
	}()
	if err == nil {
		return
	}
	if report.Errors == nil {
		report.Errors = make(map[string]string)
	}
	report.Errors[name] = err.Error()
	uc.logger.Error().Err(err).Str("section", name).Msg("cash section failed")
}
