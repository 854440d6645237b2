package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Ledger amounts are bounded so that a single cell can never blow up the
// decimal arithmetic downstream.
const maxAmountScale = 18

var (
	maxAmount = decimal.New(1, maxAmountScale)

	plainAmount   = regexp.MustCompile(`^[+-]?\d+(\.\d+)?([eE][+-]?\d+)?$`)
	turkishAmount = regexp.MustCompile(`^\d{1,3}(\.\d{3})*(,\d+)?$`)
)

// ParseAmount reads a raw spreadsheet amount. Blank is zero. Plain numbers
// such as "1234.5" come first; text in the grouped Turkish form "1.234,5" is
// accepted as a fallback. Anything else, negatives and values outside the
// ledger range fail with ErrInvalidAmount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}
	var (
		d   decimal.Decimal
		err error
	)
	switch {
	case plainAmount.MatchString(s):
		d, err = decimal.NewFromString(s)
	case turkishAmount.MatchString(s):
		d, err = fromTurkish(s)
	default:
		err = ErrInvalidAmount
	}
	return checkAmount(raw, d, err)
}

// ParseLocalAmount reads an amount typed by a user. The grouped Turkish form
// wins, so "5.000" is five thousand, the way FormatAmount renders it.
func ParseLocalAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	var (
		d   decimal.Decimal
		err error
	)
	switch {
	case turkishAmount.MatchString(s):
		d, err = fromTurkish(s)
	case plainAmount.MatchString(s):
		d, err = decimal.NewFromString(s)
	default:
		err = ErrInvalidAmount
	}
	return checkAmount(raw, d, err)
}

func fromTurkish(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1))
}

func checkAmount(raw string, d decimal.Decimal, err error) (decimal.Decimal, error) {
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	// exponent first: comparing a huge exponent rescales the coefficient
	if exp := d.Exponent(); exp > maxAmountScale || exp < -maxAmountScale {
		return decimal.Zero, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, raw)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if d.GreaterThan(maxAmount) {
		return decimal.Zero, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, raw)
	}
	return d, nil
}
