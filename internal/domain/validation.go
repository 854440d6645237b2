package domain

import (
	"strings"
)

// Column identifies a field of the transaction table.
type Column string

// Table columns. The first seven are required.
const (
	ColumnAccountCode   Column = "account_code"
	ColumnAccountName   Column = "account_name"
	ColumnVoucherDate   Column = "voucher_date"
	ColumnVoucherNumber Column = "voucher_number"
	ColumnVoucherType   Column = "voucher_type"
	ColumnDebit         Column = "debit"
	ColumnCredit        Column = "credit"
	ColumnDescription   Column = "description"
)

// RequiredColumns lists the columns, in reporting order, that every input
// table must provide.
var RequiredColumns = []Column{
	ColumnAccountCode,
	ColumnAccountName,
	ColumnVoucherDate,
	ColumnVoucherNumber,
	ColumnVoucherType,
	ColumnDebit,
	ColumnCredit,
}

// columnLabels are the ledger export headers used by the source system.
var columnLabels = map[Column]string{
	ColumnAccountCode:   "Hesap Kodu",
	ColumnAccountName:   "Hesap Adı",
	ColumnVoucherDate:   "Fiş Tarihi",
	ColumnVoucherNumber: "Fiş No",
	ColumnVoucherType:   "Fiş Türü",
	ColumnDebit:         "Borç",
	ColumnCredit:        "Alacak",
	ColumnDescription:   "Açıklama",
}

// Label returns the spreadsheet header for the column.
func (c Column) Label() string {
	if l, ok := columnLabels[c]; ok {
		return l
	}
	return string(c)
}

var headerAliases = func() map[string]Column {
	m := make(map[string]Column, len(columnLabels)*2)
	for col, label := range columnLabels {
		m[normalizeHeader(label)] = col
		m[normalizeHeader(string(col))] = col
	}
	m["description"] = ColumnDescription
	m["aciklama"] = ColumnDescription
	return m
}()

func normalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

// ResolveHeader maps a spreadsheet header to a table column.
func ResolveHeader(header string) (Column, bool) {
	col, ok := headerAliases[normalizeHeader(header)]
	return col, ok
}

// ValidateColumns checks that every required column is present. The first
// missing column, in RequiredColumns order, is reported.
func ValidateColumns(present map[Column]int) error {
	for _, col := range RequiredColumns {
		if _, ok := present[col]; !ok {
			return &SchemaError{Column: col.Label()}
		}
	}
	return nil
}
