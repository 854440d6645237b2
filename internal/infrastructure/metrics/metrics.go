package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/erginozdemir/tools4audit/internal/domain"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Report metrics
	ReportsBuilt   *prometheus.CounterVec
	RowsProcessed  *prometheus.CounterVec
	ParseWarnings  *prometheus.CounterVec
	ReportDuration *prometheus.HistogramVec

	// Report store metrics
	StoreOperations *prometheus.CounterVec
	StoreDuration   *prometheus.HistogramVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates the metrics on reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ReportsBuilt: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tools4audit_reports_built_total",
				Help: "Total number of reports built",
			},
			[]string{"kind"},
		),
		RowsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tools4audit_rows_processed_total",
				Help: "Total ledger rows processed",
			},
			[]string{"kind"},
		),
		ParseWarnings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tools4audit_parse_warnings_total",
				Help: "Total rows kept with an unparseable value",
			},
			[]string{"kind"},
		),
		ReportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tools4audit_report_build_duration_seconds",
				Help:    "Duration of report computations",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"kind"},
		),

		StoreOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tools4audit_report_store_operations_total",
				Help: "Total report store operations",
			},
			[]string{"backend", "op", "result"},
		),
		StoreDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tools4audit_report_store_duration_seconds",
				Help:    "Report store operation duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"backend", "op"},
		),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "tools4audit_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),
	}
}

// ObserveReport records one report computation.
func (m *Metrics) ObserveReport(kind string, rows, warnings int, duration time.Duration) {
	m.ReportsBuilt.WithLabelValues(kind).Inc()
	m.RowsProcessed.WithLabelValues(kind).Add(float64(rows))
	m.ParseWarnings.WithLabelValues(kind).Add(float64(warnings))
	m.ReportDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// Store operation results.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// ReportStore is the store surface that can be instrumented.
type ReportStore interface {
	Save(ctx context.Context, report *domain.AgingReport, ttl time.Duration) error
	Get(ctx context.Context, id string) (*domain.AgingReport, error)
	Ping(ctx context.Context) error
}

// InstrumentedStore counts and times the operations of a ReportStore.
type InstrumentedStore struct {
	next    ReportStore
	backend string
	metrics *Metrics
}

// InstrumentStore wraps store, labelling its operations with backend.
func (m *Metrics) InstrumentStore(backend string, store ReportStore) *InstrumentedStore {
	return &InstrumentedStore{next: store, backend: backend, metrics: m}
}

func (s *InstrumentedStore) Save(ctx context.Context, report *domain.AgingReport, ttl time.Duration) error {
	start := time.Now()
	err := s.next.Save(ctx, report, ttl)
	s.observe("save", start, err)
	return err
}

func (s *InstrumentedStore) Get(ctx context.Context, id string) (*domain.AgingReport, error) {
	start := time.Now()
	report, err := s.next.Get(ctx, id)
	s.observe("get", start, err)
	return report, err
}

func (s *InstrumentedStore) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

func (s *InstrumentedStore) observe(op string, start time.Time, err error) {
	result := ResultOK
	switch {
	case errors.Is(err, domain.ErrReportNotFound):
		result = ResultNotFound
	case err != nil:
		result = ResultError
	}
	s.metrics.StoreOperations.WithLabelValues(s.backend, op, result).Inc()
	s.metrics.StoreDuration.WithLabelValues(s.backend, op).Observe(time.Since(start).Seconds())
}
