package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// TotalLabel names the margin row and column of the pivot.
const TotalLabel = "Toplam"

// PivotRow is one account line of the aging matrix. Cells align with
// Pivot.Periods.
type PivotRow struct {
	AccountCode string            `json:"account_code"`
	AccountName string            `json:"account_name"`
	Cells       []decimal.Decimal `json:"cells"`
	Total       decimal.Decimal   `json:"total"`
}

// Pivot is the account × period matrix of remaining amounts.
type Pivot struct {
	Periods []Period   `json:"periods"`
	Rows    []PivotRow `json:"rows"`
	Totals  PivotRow   `json:"totals"`
}

// GrandTotal returns the bottom-right cell.
func (p *Pivot) GrandTotal() decimal.Decimal {
	return p.Totals.Total
}

// BuildPivot sums remaining amounts by account and period. Rows are ordered
// by account code, columns by period with 0 first. Combinations without any
// allocation are 0. The grand total is summed straight from the allocations
// and must agree with both margins.
func BuildPivot(allocs []Allocation) (*Pivot, error) {
	periodSet := make(map[Period]struct{})
	byAccount := make(map[string]map[Period]decimal.Decimal)
	names := make(map[string]string)
	grand := decimal.Zero

	for i := range allocs {
		a := &allocs[i]
		periodSet[a.Period] = struct{}{}
		cells, ok := byAccount[a.AccountCode]
		if !ok {
			cells = make(map[Period]decimal.Decimal)
			byAccount[a.AccountCode] = cells
			names[a.AccountCode] = a.AccountName
		}
		cells[a.Period] = cells[a.Period].Add(a.Remaining)
		grand = grand.Add(a.Remaining)
	}

	periods := make([]Period, 0, len(periodSet))
	for p := range periodSet {
		periods = append(periods, p)
	}
	slices.SortFunc(periods, func(a, b Period) int {
		return a.sortKey() - b.sortKey()
	})

	codes := make([]string, 0, len(byAccount))
	for code := range byAccount {
		codes = append(codes, code)
	}
	slices.SortFunc(codes, strings.Compare)

	pivot := &Pivot{
		Periods: periods,
		Rows:    make([]PivotRow, 0, len(codes)),
		Totals: PivotRow{
			AccountCode: TotalLabel,
			Cells:       zeroCells(len(periods)),
			Total:       grand,
		},
	}

	rowTotals := decimal.Zero
	for _, code := range codes {
		row := PivotRow{
			AccountCode: code,
			AccountName: names[code],
			Cells:       zeroCells(len(periods)),
			Total:       decimal.Zero,
		}
		for j, p := range periods {
			v := byAccount[code][p]
			row.Cells[j] = v
			row.Total = row.Total.Add(v)
			pivot.Totals.Cells[j] = pivot.Totals.Cells[j].Add(v)
		}
		rowTotals = rowTotals.Add(row.Total)
		pivot.Rows = append(pivot.Rows, row)
	}

	colTotals := decimal.Zero
	for _, v := range pivot.Totals.Cells {
		colTotals = colTotals.Add(v)
	}

	if !rowTotals.Equal(grand) || !colTotals.Equal(grand) {
		return nil, &ComputationError{
			Reason: fmt.Sprintf("margins disagree: rows=%s columns=%s grand=%s", rowTotals, colTotals, grand),
		}
	}

	return pivot, nil
}

func zeroCells(n int) []decimal.Decimal {
	cells := make([]decimal.Decimal, n)
	for i := range cells {
		cells[i] = decimal.Zero
	}
	return cells
}

// Matrix is the display form of a pivot: headers and fully formatted rows,
// with the totals row last.
type Matrix struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Format renders every cell with FormatAmount.
func (p *Pivot) Format() (*Matrix, error) {
	headers := make([]string, 0, len(p.Periods)+3)
	headers = append(headers, ColumnAccountCode.Label(), ColumnAccountName.Label())
	for _, period := range p.Periods {
		headers = append(headers, period.Label())
	}
	headers = append(headers, TotalLabel)

	m := &Matrix{Headers: headers, Rows: make([][]string, 0, len(p.Rows)+1)}
	for _, row := range append(slices.Clone(p.Rows), p.Totals) {
		line, err := formatRow(row)
		if err != nil {
			return nil, err
		}
		m.Rows = append(m.Rows, line)
	}
	return m, nil
}

func formatRow(row PivotRow) ([]string, error) {
	line := make([]string, 0, len(row.Cells)+3)
	line = append(line, row.AccountCode, row.AccountName)
	for _, c := range append(slices.Clone(row.Cells), row.Total) {
		s, err := FormatAmount(c)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", row.AccountCode, err)
		}
		line = append(line, s)
	}
	return line, nil
}
