package domain

import (
	"slices"
	"strings"
	"time"
)

// SortForAging returns a copy of the table ordered by account code ascending
// (text order) and voucher date descending. Rows without a date come last in
// their account. The sort is stable, so sorting a sorted table is a no-op.
func SortForAging(t *Table) *Table {
	out := t.Clone()
	slices.SortStableFunc(out.Rows, func(a, b Transaction) int {
		if c := strings.Compare(a.AccountCode, b.AccountCode); c != 0 {
			return c
		}
		return compareDates(a.VoucherDate, b.VoucherDate, true)
	})
	return out
}

// SortChronological returns a copy ordered by account code and voucher date,
// both ascending. Rows without a date come last in their account.
func SortChronological(t *Table) *Table {
	out := t.Clone()
	slices.SortStableFunc(out.Rows, func(a, b Transaction) int {
		if c := strings.Compare(a.AccountCode, b.AccountCode); c != 0 {
			return c
		}
		return compareDates(a.VoucherDate, b.VoucherDate, false)
	})
	return out
}

func compareDates(a, b *time.Time, desc bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	c := a.Compare(*b)
	if desc {
		return -c
	}
	return c
}

// AccountGroup is the run of transactions sharing one account code, in the
// order they were given.
type AccountGroup struct {
	AccountCode  string
	AccountName  string
	Transactions []Transaction
}

// GroupByAccount partitions rows by account code. Groups appear in order of
// first occurrence and keep the relative order of their rows, so codes need
// not be contiguous.
func GroupByAccount(rows []Transaction) []AccountGroup {
	index := make(map[string]int)
	var groups []AccountGroup
	for _, row := range rows {
		i, ok := index[row.AccountCode]
		if !ok {
			i = len(groups)
			index[row.AccountCode] = i
			groups = append(groups, AccountGroup{
				AccountCode: row.AccountCode,
				AccountName: row.AccountName,
			})
		}
		groups[i].Transactions = append(groups[i].Transactions, row)
	}
	return groups
}
