package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Allocation is a transaction together with the part of it that is still
// outstanding and the period that part is aged into.
type Allocation struct {
	Transaction
	NetBalance decimal.Decimal `json:"net_balance"`
	Remaining  decimal.Decimal `json:"remaining"`
	Period     Period          `json:"period"`
}

// NetBalance returns Σdebit − Σcredit over the rows.
func NetBalance(rows []Transaction) decimal.Decimal {
	net := decimal.Zero
	for i := range rows {
		net = net.Add(rows[i].Debit).Sub(rows[i].Credit)
	}
	return net
}

// AllocateGroup depletes the account's net balance against its rows in the
// order given (newest first for aging). A net-debit account consumes debits,
// a net-credit account consumes credits (as negative amounts), and a zero
// balance allocates nothing. The net balance stays fixed for the whole pass.
func AllocateGroup(rows []Transaction, net decimal.Decimal) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(rows))
	running := decimal.Zero

	for i := range rows {
		var alloc decimal.Decimal
		switch net.Sign() {
		case 0:
			alloc = decimal.Zero
		case 1:
			alloc = decimal.Min(rows[i].Debit, net.Sub(running))
		default:
			alloc = decimal.Max(rows[i].Credit.Neg(), net.Sub(running))
		}

		running = running.Add(alloc)
		out[i] = alloc

		if err := checkClamp(rows[i], alloc, running, net); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// checkClamp enforces |alloc| ≤ row amount and |running| ≤ |net|.
func checkClamp(row Transaction, alloc, running, net decimal.Decimal) error {
	limit := row.Debit
	if net.IsNegative() {
		limit = row.Credit
	}
	if alloc.Abs().GreaterThan(limit) {
		return &ComputationError{
			Account: row.AccountCode,
			Reason:  fmt.Sprintf("allocation %s exceeds transaction amount %s", alloc, limit),
		}
	}
	if running.Abs().GreaterThan(net.Abs()) {
		return &ComputationError{
			Account: row.AccountCode,
			Reason:  fmt.Sprintf("cumulative allocation %s exceeds net balance %s", running, net),
		}
	}
	return nil
}

// Allocate runs the per-account fold over an aging-sorted table and
// classifies every row into its period. Rows come out grouped by account, in
// the order accounts first appear, each group keeping its input order.
func Allocate(sorted *Table) ([]Allocation, error) {
	groups := GroupByAccount(sorted.Rows)
	out := make([]Allocation, 0, sorted.Len())

	for _, g := range groups {
		net := NetBalance(g.Transactions)
		remaining, err := AllocateGroup(g.Transactions, net)
		if err != nil {
			return nil, err
		}
		for i, tx := range g.Transactions {
			out = append(out, Allocation{
				Transaction: tx,
				NetBalance:  net,
				Remaining:   remaining[i],
				Period:      ClassifyPeriod(&tx),
			})
		}
	}

	return out, nil
}
