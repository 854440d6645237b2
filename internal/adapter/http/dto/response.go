package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/erginozdemir/tools4audit/internal/domain"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// PeriodResponse is one column of the aging matrix.
type PeriodResponse struct {
	Period int    `json:"period"`
	Label  string `json:"label"`
}

// AllocationResponse is one row of the aging detail.
type AllocationResponse struct {
	AccountCode   string          `json:"account_code"`
	AccountName   string          `json:"account_name"`
	VoucherDate   string          `json:"voucher_date"`
	VoucherNumber string          `json:"voucher_number"`
	VoucherType   string          `json:"voucher_type"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	NetBalance    decimal.Decimal `json:"net_balance"`
	Remaining     decimal.Decimal `json:"remaining"`
	Period        string          `json:"period"`
}

// AgingReportResponse represents an aging report in API responses. Rows are
// formatted for display; Totals is the margins row.
type AgingReportResponse struct {
	ID           string                `json:"id"`
	CreatedAt    time.Time             `json:"created_at"`
	RowCount     int                   `json:"row_count"`
	AccountCount int                   `json:"account_count"`
	Periods      []PeriodResponse      `json:"periods"`
	Columns      []string              `json:"columns"`
	Rows         [][]string            `json:"rows"`
	Totals       []string              `json:"totals"`
	GrandTotal   decimal.Decimal       `json:"grand_total"`
	Allocations  []AllocationResponse  `json:"allocations,omitempty"`
	Warnings     []domain.ParseWarning `json:"warnings"`
	DownloadURL  string                `json:"download_url,omitempty"`
}

// AgingReportFromDomain converts a domain aging report to a response. The
// detail rows are included only when withDetail is set.
func AgingReportFromDomain(r *domain.AgingReport, withDetail bool) *AgingReportResponse {
	resp := &AgingReportResponse{
		ID:           r.ID,
		CreatedAt:    r.CreatedAt,
		RowCount:     r.RowCount,
		AccountCount: r.AccountCount,
		Periods:      []PeriodResponse{},
		Rows:         [][]string{},
		Warnings:     r.Warnings,
	}
	if resp.Warnings == nil {
		resp.Warnings = []domain.ParseWarning{}
	}

	if r.Pivot != nil {
		for _, p := range r.Pivot.Periods {
			resp.Periods = append(resp.Periods, PeriodResponse{Period: int(p), Label: p.Label()})
		}
		resp.GrandTotal = r.Pivot.GrandTotal()
	}

	if r.Matrix != nil {
		resp.Columns = r.Matrix.Headers
		if n := len(r.Matrix.Rows); n > 0 {
			resp.Rows = r.Matrix.Rows[:n-1]
			resp.Totals = r.Matrix.Rows[n-1]
		}
	}

	if withDetail {
		resp.Allocations = make([]AllocationResponse, 0, len(r.Allocations))
		for _, a := range r.Allocations {
			resp.Allocations = append(resp.Allocations, AllocationResponse{
				AccountCode:   a.AccountCode,
				AccountName:   a.AccountName,
				VoucherDate:   domain.FormatDate(&a.Transaction),
				VoucherNumber: a.VoucherNumber,
				VoucherType:   a.VoucherType,
				Debit:         a.Debit,
				Credit:        a.Credit,
				NetBalance:    a.NetBalance,
				Remaining:     a.Remaining,
				Period:        a.Period.Label(),
			})
		}
	}

	return resp
}

// AccountTotalResponse is one account of the totals section.
type AccountTotalResponse struct {
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Net         decimal.Decimal `json:"net"`
	NetDisplay  string          `json:"net_display"`
}

// DailyBalanceResponse is one negative day.
type DailyBalanceResponse struct {
	AccountCode       string          `json:"account_code"`
	AccountName       string          `json:"account_name"`
	Date              string          `json:"date"`
	Net               decimal.Decimal `json:"net"`
	Cumulative        decimal.Decimal `json:"cumulative"`
	NetDisplay        string          `json:"net_display"`
	CumulativeDisplay string          `json:"cumulative_display"`
}

// CashReportResponse represents a cash-risk report in API responses.
type CashReportResponse struct {
	AccountCount      int                       `json:"account_count"`
	Threshold         decimal.Decimal           `json:"threshold"`
	ThresholdDisplay  string                    `json:"threshold_display"`
	Keywords          []string                  `json:"keywords"`
	AccountTotals     []AccountTotalResponse    `json:"account_totals"`
	LargeTransactions []domain.LargeTransaction `json:"large_transactions"`
	NegativeBalances  []DailyBalanceResponse    `json:"negative_balances"`
	KeywordMatches    []domain.KeywordMatch     `json:"keyword_matches"`
	Errors            map[string]string         `json:"errors,omitempty"`
	Warnings          []domain.ParseWarning     `json:"warnings"`
}

// CashReportFromDomain converts a domain cash report to a response. An
// amount that cannot be displayed fails its whole section, which is then
// reported in Errors like any other failed section.
func CashReportFromDomain(r *domain.CashReport) *CashReportResponse {
	resp := &CashReportResponse{
		AccountCount:      r.AccountCount,
		Threshold:         r.Threshold,
		Keywords:          r.Keywords,
		AccountTotals:     []AccountTotalResponse{},
		LargeTransactions: r.LargeTransactions,
		NegativeBalances:  []DailyBalanceResponse{},
		KeywordMatches:    r.KeywordMatches,
		Warnings:          r.Warnings,
	}
	for section, msg := range r.Errors {
		resp.fail(section, msg)
	}
	if resp.Warnings == nil {
		resp.Warnings = []domain.ParseWarning{}
	}
	if resp.LargeTransactions == nil {
		resp.LargeTransactions = []domain.LargeTransaction{}
	}
	if resp.KeywordMatches == nil {
		resp.KeywordMatches = []domain.KeywordMatch{}
	}

	if s, err := domain.FormatAmount(r.Threshold); err == nil {
		resp.ThresholdDisplay = s
	} else {
		resp.ThresholdDisplay = r.Threshold.String()
	}

	totals, err := accountTotals(r.AccountTotals)
	if err != nil {
		resp.fail(domain.SectionAccountTotals, err.Error())
	} else {
		resp.AccountTotals = totals
	}

	negative, err := dailyBalances(r.NegativeBalances)
	if err != nil {
		resp.fail(domain.SectionNegativeBalances, err.Error())
	} else {
		resp.NegativeBalances = negative
	}

	return resp
}

func (r *CashReportResponse) fail(section, msg string) {
	if r.Errors == nil {
		r.Errors = make(map[string]string)
	}
	r.Errors[section] = msg
}

func accountTotals(in []domain.AccountTotal) ([]AccountTotalResponse, error) {
	out := make([]AccountTotalResponse, 0, len(in))
	for _, t := range in {
		display, err := domain.FormatAmount(t.Net)
		if err != nil {
			return nil, err
		}
		out = append(out, AccountTotalResponse{
			AccountCode: t.AccountCode,
			AccountName: t.AccountName,
			Net:         t.Net,
			NetDisplay:  display,
		})
	}
	return out, nil
}

func dailyBalances(in []domain.DailyBalance) ([]DailyBalanceResponse, error) {
	out := make([]DailyBalanceResponse, 0, len(in))
	for _, b := range in {
		net, err := domain.FormatAmount(b.Net)
		if err != nil {
			return nil, err
		}
		cumulative, err := domain.FormatAmount(b.Cumulative)
		if err != nil {
			return nil, err
		}
		out = append(out, DailyBalanceResponse{
			AccountCode:       b.AccountCode,
			AccountName:       b.AccountName,
			Date:              b.Date.Format("2006-01-02"),
			Net:               b.Net,
			Cumulative:        b.Cumulative,
			NetDisplay:        net,
			CumulativeDisplay: cumulative,
		})
	}
	return out, nil
}
