package domain

import "strconv"

// Period is an aging bucket: 0 for opening balances, 1–12 for the calendar
// month of the voucher, or PeriodUnclassified when the date is unknown.
type Period int

const (
	PeriodOpening      Period = 0
	PeriodUnclassified Period = -1
)

// UnclassifiedLabel is the header of the bucket holding undated rows.
const UnclassifiedLabel = "Tarihsiz"

// ClassifyPeriod maps a transaction to its period. Opening vouchers are
// period 0 whatever their date. An undated non-opening row is never merged
// into another bucket.
func ClassifyPeriod(t *Transaction) Period {
	if t.IsOpening() {
		return PeriodOpening
	}
	if !t.HasDate() {
		return PeriodUnclassified
	}
	return Period(t.VoucherDate.Month())
}

// Label returns the column header for the period.
func (p Period) Label() string {
	if p == PeriodUnclassified {
		return UnclassifiedLabel
	}
	return strconv.Itoa(int(p))
}

// Less orders periods for display: 0 first, months ascending, unclassified last.
func (p Period) Less(o Period) bool {
	return p.sortKey() < o.sortKey()
}

func (p Period) sortKey() int {
	if p == PeriodUnclassified {
		return 13
	}
	return int(p)
}
