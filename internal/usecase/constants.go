package usecase

import "time"

const (
	// DefaultReportTTL is how long a computed report stays downloadable.
	DefaultReportTTL = time.Hour

	// Report kinds used for metrics and logging.
	ReportKindAging = "aging"
	ReportKindCash  = "cash"
)
