// Package spreadsheet reads ledger exports and writes report workbooks.
package spreadsheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/erginozdemir/tools4audit/internal/domain"
)

// dateLayouts are tried in order for dates stored as text.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02.01.2006",
	"02-01-2006",
	"01/02/2006",
	"2006/01/02",
}

// Reader reads the first sheet of an xlsx workbook into a transaction table.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadTable parses the workbook. Row 1 is the header; headers are matched
// against the Turkish export names and the snake-case column names.
// Unparseable dates are kept as nil and reported as warnings; bad amounts
// and blank account codes reject the whole upload.
func (r *Reader) ReadTable(src io.Reader) (*domain.Table, []domain.ParseWarning, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrUnreadableSpreadsheet, err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("%w: workbook has no sheets", domain.ErrUnreadableSpreadsheet)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrUnreadableSpreadsheet, err)
	}

	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}
	columns := mapHeader(header)
	if err := domain.ValidateColumns(columns); err != nil {
		return nil, nil, err
	}

	var (
		txs      []domain.Transaction
		warnings []domain.ParseWarning
	)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		// spreadsheet row numbers are 1-based and include the header
		rowNum := i + 1

		tx, warn, err := parseRow(row, rowNum, columns)
		if err != nil {
			return nil, nil, err
		}
		if warn != nil {
			warnings = append(warnings, *warn)
		}
		txs = append(txs, tx)
	}

	return domain.NewTable(txs), warnings, nil
}

func mapHeader(header []string) map[domain.Column]int {
	columns := make(map[domain.Column]int, len(header))
	for i, h := range header {
		col, ok := domain.ResolveHeader(h)
		if !ok {
			continue
		}
		if _, dup := columns[col]; dup {
			continue
		}
		columns[col] = i
	}
	return columns
}

func parseRow(row []string, rowNum int, columns map[domain.Column]int) (domain.Transaction, *domain.ParseWarning, error) {
	get := func(col domain.Column) string {
		idx, ok := columns[col]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	tx := domain.Transaction{
		AccountCode:   get(domain.ColumnAccountCode),
		AccountName:   get(domain.ColumnAccountName),
		VoucherNumber: get(domain.ColumnVoucherNumber),
		VoucherType:   get(domain.ColumnVoucherType),
		Description:   get(domain.ColumnDescription),
	}
	var err error
	if tx.Debit, err = domain.ParseAmount(get(domain.ColumnDebit)); err != nil {
		return tx, nil, fmt.Errorf("row %d, column %q: %w", rowNum, domain.ColumnDebit.Label(), err)
	}
	if tx.Credit, err = domain.ParseAmount(get(domain.ColumnCredit)); err != nil {
		return tx, nil, fmt.Errorf("row %d, column %q: %w", rowNum, domain.ColumnCredit.Label(), err)
	}
	if err := tx.Validate(); err != nil {
		return tx, nil, fmt.Errorf("row %d: %w", rowNum, err)
	}

	raw := get(domain.ColumnVoucherDate)
	date, ok := parseDate(raw)
	if !ok {
		msg := "unparseable date"
		if raw == "" {
			msg = "missing date"
		}
		return tx, &domain.ParseWarning{
			Row:     rowNum,
			Column:  domain.ColumnVoucherDate.Label(),
			Value:   raw,
			Message: msg,
		}, nil
	}
	tx.VoucherDate = &date

	return tx, nil, nil
}

// parseDate reads an Excel serial date or one of the text layouts.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
