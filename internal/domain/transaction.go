package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Voucher types that force a transaction into the opening period.
const (
	VoucherTypeOpening   = "opening"
	VoucherTypeOpeningTR = "Açılış"
)

// Transaction is one ledger row.
type Transaction struct {
	AccountCode   string          `json:"account_code"`
	AccountName   string          `json:"account_name"`
	VoucherDate   *time.Time      `json:"voucher_date"`
	VoucherNumber string          `json:"voucher_number"`
	VoucherType   string          `json:"voucher_type"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description,omitempty"`
}

// IsOpening reports whether the voucher carries the opening balance.
func (t *Transaction) IsOpening() bool {
	vt := strings.TrimSpace(t.VoucherType)
	return vt == VoucherTypeOpeningTR || vt == VoucherTypeOpening
}

// HasDate reports whether the voucher date was parsed.
func (t *Transaction) HasDate() bool {
	return t.VoucherDate != nil
}

// Net returns debit minus credit.
func (t *Transaction) Net() decimal.Decimal {
	return t.Debit.Sub(t.Credit)
}

// Validate checks the invariants every ingested row must satisfy.
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.AccountCode) == "" {
		return ErrEmptyAccountCode
	}
	if t.Debit.IsNegative() || t.Credit.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// Table is the typed transaction collection every report is computed from.
// Operations never modify a Table in place; they work on copies.
type Table struct {
	Rows []Transaction
}

// NewTable builds a table, enforcing one account name per account code.
// The first occurrence of a code decides its name.
func NewTable(rows []Transaction) *Table {
	names := make(map[string]string, len(rows))
	out := make([]Transaction, len(rows))
	for i, row := range rows {
		if name, ok := names[row.AccountCode]; ok {
			row.AccountName = name
		} else {
			names[row.AccountCode] = row.AccountName
		}
		out[i] = row
	}
	return &Table{Rows: out}
}

// Clone returns a copy whose rows can be reordered freely.
func (t *Table) Clone() *Table {
	rows := make([]Transaction, len(t.Rows))
	copy(rows, t.Rows)
	return &Table{Rows: rows}
}

// Len returns the row count.
func (t *Table) Len() int {
	return len(t.Rows)
}

// AccountCount returns the number of distinct account codes.
func (t *Table) AccountCount() int {
	seen := make(map[string]struct{}, len(t.Rows))
	for i := range t.Rows {
		seen[t.Rows[i].AccountCode] = struct{}{}
	}
	return len(seen)
}
