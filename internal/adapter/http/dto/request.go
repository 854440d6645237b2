package dto

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erginozdemir/tools4audit/internal/domain"
)

// ParseThreshold reads the optional large-transaction threshold of a cash
// request. The Turkish "5.000,5" form wins over "5000.5"; an empty value
// means the server default.
func ParseThreshold(raw string) (*decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}

	d, err := domain.ParseLocalAmount(s)
	if err != nil {
		return nil, fmt.Errorf("threshold: %w", err)
	}
	return &d, nil
}
