package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SampleTransactions returns the rows of the downloadable example workbook.
func SampleTransactions() []Transaction {
	date := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}
	return []Transaction{
		{AccountCode: "120.01", AccountName: "A Müşterisi", VoucherDate: date(2024, 1, 5), VoucherNumber: "123", VoucherType: "Normal", Debit: decimal.NewFromInt(5000), Credit: decimal.Zero},
		{AccountCode: "120.02", AccountName: "B Müşterisi", VoucherDate: date(2024, 1, 10), VoucherNumber: "124", VoucherType: VoucherTypeOpeningTR, Debit: decimal.NewFromInt(2000), Credit: decimal.Zero},
		{AccountCode: "320.01", AccountName: "C Satıcısı", VoucherDate: date(2024, 2, 15), VoucherNumber: "221", VoucherType: "Normal", Debit: decimal.Zero, Credit: decimal.NewFromInt(4000)},
		{AccountCode: "320.03", AccountName: "D Satıcısı", VoucherDate: date(2024, 2, 20), VoucherNumber: "222", VoucherType: "Normal", Debit: decimal.NewFromInt(3000), Credit: decimal.Zero},
	}
}
