package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AgingReport is the result of one aging computation. It is addressed by
// its ID; nothing about it is shared between requests.
type AgingReport struct {
	ID           string         `json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	RowCount     int            `json:"row_count"`
	AccountCount int            `json:"account_count"`
	Pivot        *Pivot         `json:"pivot"`
	Matrix       *Matrix        `json:"matrix"`
	Allocations  []Allocation   `json:"allocations"`
	Warnings     []ParseWarning `json:"warnings,omitempty"`
}

// Cash report sections.
const (
	SectionAccountTotals    = "account_totals"
	SectionLargeTransaction = "large_transactions"
	SectionNegativeBalances = "negative_balances"
	SectionKeywordMatches   = "keyword_matches"
)

// CashReport holds the four cash-risk views. A section that failed is left
// empty and its error is recorded in Errors; the others are still filled.
type CashReport struct {
	AccountCount      int                `json:"account_count"`
	Threshold         decimal.Decimal    `json:"threshold"`
	Keywords          []string           `json:"keywords"`
	AccountTotals     []AccountTotal     `json:"account_totals"`
	LargeTransactions []LargeTransaction `json:"large_transactions"`
	NegativeBalances  []DailyBalance     `json:"negative_balances"`
	KeywordMatches    []KeywordMatch     `json:"keyword_matches"`
	Errors            map[string]string  `json:"errors,omitempty"`
	Warnings          []ParseWarning     `json:"warnings,omitempty"`
}

// Failed reports whether the named section could not be computed.
func (r *CashReport) Failed(section string) bool {
	_, ok := r.Errors[section]
	return ok
}
