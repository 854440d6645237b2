package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func debitTx(code string, date *time.Time, amount int64) Transaction {
	return Transaction{
		AccountCode: code,
		AccountName: "Account " + code,
		VoucherDate: date,
		VoucherType: "Normal",
		Debit:       dec(amount),
		Credit:      decimal.Zero,
	}
}

func creditTx(code string, date *time.Time, amount int64) Transaction {
	return Transaction{
		AccountCode: code,
		AccountName: "Account " + code,
		VoucherDate: date,
		VoucherType: "Normal",
		Debit:       decimal.Zero,
		Credit:      dec(amount),
	}
}
