package domain

import "testing"

func TestClassifyPeriod(t *testing.T) {
	tests := []struct {
		name     string
		tx       Transaction
		expected Period
	}{
		{
			name:     "opening voucher in July is period 0",
			tx:       Transaction{VoucherType: VoucherTypeOpeningTR, VoucherDate: day(2024, 7, 14)},
			expected: PeriodOpening,
		},
		{
			name:     "english opening voucher",
			tx:       Transaction{VoucherType: VoucherTypeOpening, VoucherDate: day(2024, 3, 1)},
			expected: PeriodOpening,
		},
		{
			name:     "opening voucher without a date",
			tx:       Transaction{VoucherType: " Açılış "},
			expected: PeriodOpening,
		},
		{
			name:     "normal voucher in July is period 7",
			tx:       Transaction{VoucherType: "Normal", VoucherDate: day(2024, 7, 14)},
			expected: 7,
		},
		{
			name:     "december",
			tx:       Transaction{VoucherType: "Normal", VoucherDate: day(2023, 12, 31)},
			expected: 12,
		},
		{
			name:     "undated normal voucher is unclassified",
			tx:       Transaction{VoucherType: "Normal"},
			expected: PeriodUnclassified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyPeriod(&tt.tx); got != tt.expected {
				t.Fatalf("expected period %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestPeriodLabelAndOrder(t *testing.T) {
	if PeriodOpening.Label() != "0" || Period(11).Label() != "11" {
		t.Fatal("numeric periods must label as their number")
	}
	if PeriodUnclassified.Label() != UnclassifiedLabel {
		t.Fatalf("expected %q, got %q", UnclassifiedLabel, PeriodUnclassified.Label())
	}
	if !PeriodOpening.Less(1) || !Period(12).Less(PeriodUnclassified) || PeriodUnclassified.Less(PeriodOpening) {
		t.Fatal("expected order 0 < 1..12 < unclassified")
	}
}
