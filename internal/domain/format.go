package domain

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount as a whole number with "." thousands
// separators, e.g. -1234567.5 → "-1.234.568". Halves round to even.
func FormatAmount(d decimal.Decimal) (string, error) {
	r := d.RoundBank(0)
	if !r.BigInt().IsInt64() {
		return "", &ComputationError{Reason: "amount " + d.String() + " is out of display range"}
	}
	return strings.ReplaceAll(humanize.Comma(r.IntPart()), ",", "."), nil
}

// FormatDate renders a voucher date for display; undated rows render empty.
func FormatDate(t *Transaction) string {
	if !t.HasDate() {
		return ""
	}
	return t.VoucherDate.Format("2006-01-02")
}
