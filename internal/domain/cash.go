package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultLargeThreshold is the large-transaction threshold used when the
// caller does not supply one.
var DefaultLargeThreshold = decimal.NewFromInt(5000)

// DefaultRiskKeywords flag exchange-rate and valuation postings.
var DefaultRiskKeywords = []string{
	"kur farkı",
	"döviz",
	"değerleme",
	"reeskont",
	"exchange rate",
	"revaluation",
	"valuation",
}

// AccountTotal is the net debit − credit of one account.
type AccountTotal struct {
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Net         decimal.Decimal `json:"net"`
}

// AccountTotals sums debit − credit per account, ordered by account code.
// Names are the first seen for each code.
func AccountTotals(t *Table) []AccountTotal {
	groups := GroupByAccount(t.Rows)
	out := make([]AccountTotal, 0, len(groups))
	for _, g := range groups {
		out = append(out, AccountTotal{
			AccountCode: g.AccountCode,
			AccountName: g.AccountName,
			Net:         NetBalance(g.Transactions),
		})
	}
	slices.SortStableFunc(out, func(a, b AccountTotal) int {
		return strings.Compare(a.AccountCode, b.AccountCode)
	})
	return out
}

// LargeTransaction is a row whose debit or credit exceeds the threshold.
type LargeTransaction struct {
	AccountCode   string          `json:"account_code"`
	AccountName   string          `json:"account_name"`
	VoucherDate   *time.Time      `json:"voucher_date"`
	VoucherNumber string          `json:"voucher_number"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description"`

	DateDisplay   string `json:"date_display"`
	DebitDisplay  string `json:"debit_display"`
	CreditDisplay string `json:"credit_display"`
}

// LargeTransactions returns rows with debit > threshold or credit >
// threshold, ordered by account code and date ascending. The comparison is
// strict: an amount equal to the threshold is not large.
func LargeTransactions(t *Table, threshold decimal.Decimal) ([]LargeTransaction, error) {
	sorted := SortChronological(t)
	out := make([]LargeTransaction, 0)
	for i := range sorted.Rows {
		tx := &sorted.Rows[i]
		if !tx.Debit.GreaterThan(threshold) && !tx.Credit.GreaterThan(threshold) {
			continue
		}
		debit, err := FormatAmount(tx.Debit)
		if err != nil {
			return nil, err
		}
		credit, err := FormatAmount(tx.Credit)
		if err != nil {
			return nil, err
		}
		out = append(out, LargeTransaction{
			AccountCode:   tx.AccountCode,
			AccountName:   tx.AccountName,
			VoucherDate:   tx.VoucherDate,
			VoucherNumber: tx.VoucherNumber,
			Debit:         tx.Debit,
			Credit:        tx.Credit,
			Description:   tx.Description,
			DateDisplay:   FormatDate(tx),
			DebitDisplay:  debit,
			CreditDisplay: credit,
		})
	}
	return out, nil
}

// DailyBalance is the net movement of one account on one day together with
// the account's running balance up to and including that day.
type DailyBalance struct {
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Date        time.Time       `json:"date"`
	Net         decimal.Decimal `json:"net"`
	Cumulative  decimal.Decimal `json:"cumulative"`
}

// DailyBalances buckets rows by (account, day), sums debit − credit per
// bucket and accumulates the buckets chronologically per account. Undated
// rows cannot be placed on the timeline and are skipped.
func DailyBalances(t *Table) []DailyBalance {
	sorted := SortChronological(t)
	var out []DailyBalance

	for _, g := range GroupByAccount(sorted.Rows) {
		running := decimal.Zero
		var current *DailyBalance
		for i := range g.Transactions {
			tx := &g.Transactions[i]
			if !tx.HasDate() {
				continue
			}
			day := truncateDay(*tx.VoucherDate)
			if current == nil || !current.Date.Equal(day) {
				if current != nil {
					out = append(out, *current)
				}
				current = &DailyBalance{
					AccountCode: g.AccountCode,
					AccountName: g.AccountName,
					Date:        day,
					Net:         decimal.Zero,
				}
			}
			current.Net = current.Net.Add(tx.Net())
			running = running.Add(tx.Net())
			current.Cumulative = running
		}
		if current != nil {
			out = append(out, *current)
		}
	}

	return out
}

// NegativeBalances returns the daily buckets whose cumulative balance is
// below zero.
func NegativeBalances(t *Table) []DailyBalance {
	out := make([]DailyBalance, 0)
	for _, b := range DailyBalances(t) {
		if b.Cumulative.IsNegative() {
			out = append(out, b)
		}
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// KeywordMatch is a row whose description contains a risk keyword.
type KeywordMatch struct {
	AccountCode   string     `json:"account_code"`
	AccountName   string     `json:"account_name"`
	VoucherDate   *time.Time `json:"voucher_date"`
	VoucherNumber string     `json:"voucher_number"`
	Description   string     `json:"description"`
	Keyword       string     `json:"keyword"`
	DateDisplay   string     `json:"date_display"`
}

// KeywordMatcher performs case-insensitive substring matching. Text is
// folded under both Turkish and neutral casing rules, so "KUR FARKI" matches
// "kur farkı" and "VALUATION" still matches "valuation".
type KeywordMatcher struct {
	keywords []string
}

var keywordLanguages = []language.Tag{language.Turkish, language.Und}

// NewKeywordMatcher creates a matcher. Blank keywords are ignored.
func NewKeywordMatcher(keywords []string) *KeywordMatcher {
	m := &KeywordMatcher{}
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		m.keywords = append(m.keywords, k)
	}
	return m
}

// Keywords returns the configured keyword set.
func (m *KeywordMatcher) Keywords() []string {
	return slices.Clone(m.keywords)
}

// Matches returns rows whose description contains any keyword, in table
// order. Rows without a description never match.
func (m *KeywordMatcher) Matches(t *Table) []KeywordMatch {
	casers := make([]cases.Caser, len(keywordLanguages))
	folded := make([][]string, len(keywordLanguages))
	for i, tag := range keywordLanguages {
		casers[i] = cases.Lower(tag)
		for _, k := range m.keywords {
			folded[i] = append(folded[i], casers[i].String(k))
		}
	}

	out := make([]KeywordMatch, 0)
	for i := range t.Rows {
		tx := &t.Rows[i]
		desc := strings.TrimSpace(tx.Description)
		if desc == "" {
			continue
		}
		if k, ok := m.match(desc, casers, folded); ok {
			out = append(out, KeywordMatch{
				AccountCode:   tx.AccountCode,
				AccountName:   tx.AccountName,
				VoucherDate:   tx.VoucherDate,
				VoucherNumber: tx.VoucherNumber,
				Description:   tx.Description,
				Keyword:       k,
				DateDisplay:   FormatDate(tx),
			})
		}
	}
	return out
}

func (m *KeywordMatcher) match(desc string, casers []cases.Caser, folded [][]string) (string, bool) {
	for i, c := range casers {
		text := c.String(desc)
		for j, k := range folded[i] {
			if strings.Contains(text, k) {
				return m.keywords[j], true
			}
		}
	}
	return "", false
}
