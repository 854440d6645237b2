package spreadsheet

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/erginozdemir/tools4audit/internal/domain"
)

// Sheet and file names.
const (
	SheetPivot  = "PivotTable"
	SheetDetail = "Detail"
	SheetSample = "OrnekData"

	SheetAccountTotals     = "Hesap Bakiyeleri"
	SheetLargeTransactions = "Büyük İşlemler"
	SheetNegativeBalances  = "Eksi Bakiyeler"
	SheetKeywordMatches    = "Riskli Açıklamalar"
	SheetErrors            = "Hatalar"

	AgingFileName  = "pivot_table.xlsx"
	CashFileName   = "nakit_analizi.xlsx"
	SampleFileName = "ornek_yaslandirma.xlsx"

	// ContentType is the MIME type of every workbook written here.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Extra column headers used by the report sheets.
const (
	headerNetBalance = "Bakiye"
	headerRemaining  = "Kalan"
	headerPeriod     = "Dönem"
	headerDate       = "Tarih"
	headerDailyNet   = "Günlük Net"
	headerCumulative = "Kümülatif Bakiye"
	headerKeyword    = "Anahtar Kelime"
	headerSection    = "Bölüm"
	headerError      = "Hata"
)

// AgingXLSX writes the pivot and the allocation detail of a report.
func AgingXLSX(report *domain.AgingReport) ([]byte, error) {
	xlsx := excelize.NewFile()
	defer func() { _ = xlsx.Close() }()

	st, err := newStyles(xlsx)
	if err != nil {
		return nil, err
	}

	if err := renameFirstSheet(xlsx, SheetPivot); err != nil {
		return nil, err
	}
	if err := writePivot(xlsx, st, report.Pivot); err != nil {
		return nil, err
	}

	if _, err := xlsx.NewSheet(SheetDetail); err != nil {
		return nil, err
	}
	headers := []string{
		domain.ColumnAccountCode.Label(),
		domain.ColumnAccountName.Label(),
		domain.ColumnVoucherDate.Label(),
		domain.ColumnVoucherNumber.Label(),
		domain.ColumnVoucherType.Label(),
		domain.ColumnDebit.Label(),
		domain.ColumnCredit.Label(),
		headerNetBalance,
		headerRemaining,
		headerPeriod,
	}
	rows := make([][]any, 0, len(report.Allocations))
	for _, a := range report.Allocations {
		rows = append(rows, []any{
			a.AccountCode, a.AccountName, a.VoucherDate, a.VoucherNumber, a.VoucherType,
			a.Debit, a.Credit, a.NetBalance, a.Remaining, a.Period.Label(),
		})
	}
	if err := writeTable(xlsx, st, SheetDetail, headers, rows); err != nil {
		return nil, err
	}

	return finish(xlsx)
}

func writePivot(xlsx *excelize.File, st *styles, pivot *domain.Pivot) error {
	if pivot == nil {
		pivot = &domain.Pivot{}
	}

	headers := make([]string, 0, len(pivot.Periods)+3)
	headers = append(headers, domain.ColumnAccountCode.Label(), domain.ColumnAccountName.Label())
	for _, p := range pivot.Periods {
		headers = append(headers, p.Label())
	}
	headers = append(headers, domain.TotalLabel)

	rows := make([][]any, 0, len(pivot.Rows))
	for _, r := range pivot.Rows {
		rows = append(rows, pivotLine(r))
	}
	if err := writeTable(xlsx, st, SheetPivot, headers, rows); err != nil {
		return err
	}

	// margins row
	rowNum := len(rows) + 2
	for i, v := range pivotLine(pivot.Totals) {
		style := st.total
		if i < 2 {
			style = st.label
		}
		if err := setCell(xlsx, SheetPivot, i+1, rowNum, v, style); err != nil {
			return err
		}
	}
	return nil
}

func pivotLine(r domain.PivotRow) []any {
	line := make([]any, 0, len(r.Cells)+3)
	line = append(line, r.AccountCode, r.AccountName)
	for _, c := range r.Cells {
		line = append(line, c)
	}
	return append(line, r.Total)
}

// CashXLSX writes one sheet per cash-risk section, plus the section errors
// when any section failed.
func CashXLSX(report *domain.CashReport) ([]byte, error) {
	xlsx := excelize.NewFile()
	defer func() { _ = xlsx.Close() }()

	st, err := newStyles(xlsx)
	if err != nil {
		return nil, err
	}
	if err := renameFirstSheet(xlsx, SheetAccountTotals); err != nil {
		return nil, err
	}

	codeName := []string{domain.ColumnAccountCode.Label(), domain.ColumnAccountName.Label()}

	totals := make([][]any, 0, len(report.AccountTotals))
	for _, t := range report.AccountTotals {
		totals = append(totals, []any{t.AccountCode, t.AccountName, t.Net})
	}
	if err := writeTable(xlsx, st, SheetAccountTotals, append(codeName, headerNetBalance), totals); err != nil {
		return nil, err
	}

	large := make([][]any, 0, len(report.LargeTransactions))
	for _, t := range report.LargeTransactions {
		large = append(large, []any{t.AccountCode, t.AccountName, t.VoucherDate, t.VoucherNumber, t.Debit, t.Credit, t.Description})
	}
	if err := addTable(xlsx, st, SheetLargeTransactions, append(codeName,
		domain.ColumnVoucherDate.Label(),
		domain.ColumnVoucherNumber.Label(),
		domain.ColumnDebit.Label(),
		domain.ColumnCredit.Label(),
		domain.ColumnDescription.Label(),
	), large); err != nil {
		return nil, err
	}

	negative := make([][]any, 0, len(report.NegativeBalances))
	for _, b := range report.NegativeBalances {
		negative = append(negative, []any{b.AccountCode, b.AccountName, b.Date, b.Net, b.Cumulative})
	}
	if err := addTable(xlsx, st, SheetNegativeBalances, append(codeName, headerDate, headerDailyNet, headerCumulative), negative); err != nil {
		return nil, err
	}

	matches := make([][]any, 0, len(report.KeywordMatches))
	for _, m := range report.KeywordMatches {
		matches = append(matches, []any{m.AccountCode, m.AccountName, m.VoucherDate, m.VoucherNumber, m.Description, m.Keyword})
	}
	if err := addTable(xlsx, st, SheetKeywordMatches, append(codeName,
		domain.ColumnVoucherDate.Label(),
		domain.ColumnVoucherNumber.Label(),
		domain.ColumnDescription.Label(),
		headerKeyword,
	), matches); err != nil {
		return nil, err
	}

	if len(report.Errors) > 0 {
		rows := make([][]any, 0, len(report.Errors))
		for _, section := range []string{
			domain.SectionAccountTotals,
			domain.SectionLargeTransaction,
			domain.SectionNegativeBalances,
			domain.SectionKeywordMatches,
		} {
			if msg, ok := report.Errors[section]; ok {
				rows = append(rows, []any{section, msg})
			}
		}
		if err := addTable(xlsx, st, SheetErrors, []string{headerSection, headerError}, rows); err != nil {
			return nil, err
		}
	}

	return finish(xlsx)
}

// SampleXLSX writes the four-row example ledger users can start from.
func SampleXLSX() ([]byte, error) {
	xlsx := excelize.NewFile()
	defer func() { _ = xlsx.Close() }()

	st, err := newStyles(xlsx)
	if err != nil {
		return nil, err
	}
	if err := renameFirstSheet(xlsx, SheetSample); err != nil {
		return nil, err
	}

	headers := make([]string, 0, len(domain.RequiredColumns))
	for _, col := range domain.RequiredColumns {
		headers = append(headers, col.Label())
	}

	sample := domain.SampleTransactions()
	rows := make([][]any, 0, len(sample))
	for _, tx := range sample {
		rows = append(rows, []any{tx.AccountCode, tx.AccountName, tx.VoucherDate, tx.VoucherNumber, tx.VoucherType, tx.Debit, tx.Credit})
	}
	if err := writeTable(xlsx, st, SheetSample, headers, rows); err != nil {
		return nil, err
	}

	return finish(xlsx)
}

func renameFirstSheet(xlsx *excelize.File, name string) error {
	return xlsx.SetSheetName(xlsx.GetSheetName(0), name)
}

func addTable(xlsx *excelize.File, st *styles, sheet string, headers []string, rows [][]any) error {
	if _, err := xlsx.NewSheet(sheet); err != nil {
		return err
	}
	return writeTable(xlsx, st, sheet, headers, rows)
}

// writeTable writes a header row and the data rows below it, freezing the
// header.
func writeTable(xlsx *excelize.File, st *styles, sheet string, headers []string, rows [][]any) error {
	for i, h := range headers {
		if err := setCell(xlsx, sheet, i+1, 1, h, st.header); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, v := range row {
			if err := setCell(xlsx, sheet, c+1, r+2, v, st.forValue(v)); err != nil {
				return err
			}
		}
	}

	if len(headers) > 0 {
		last, err := excelize.ColumnNumberToName(len(headers))
		if err != nil {
			return err
		}
		_ = xlsx.SetColWidth(sheet, "A", "A", 14)
		_ = xlsx.SetColWidth(sheet, "B", last, 16)
	}
	return xlsx.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (s *styles) forValue(v any) int {
	switch v.(type) {
	case decimal.Decimal:
		return s.amount
	case time.Time, *time.Time:
		return s.date
	default:
		return s.text
	}
}

func setCell(xlsx *excelize.File, sheet string, col, row int, v any, style int) error {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}

	switch val := v.(type) {
	case decimal.Decimal:
		err = xlsx.SetCellFloat(sheet, name, val.InexactFloat64(), -1, 64)
	case *time.Time:
		if val != nil {
			err = xlsx.SetCellValue(sheet, name, *val)
		}
	default:
		err = xlsx.SetCellValue(sheet, name, val)
	}
	if err != nil {
		return fmt.Errorf("%s!%s: %w", sheet, name, err)
	}
	return xlsx.SetCellStyle(sheet, name, name, style)
}

func finish(xlsx *excelize.File) ([]byte, error) {
	xlsx.SetActiveSheet(0)
	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
