package domain

import (
	"errors"
	"fmt"
)

var (
	// Input errors
	ErrMissingColumn         = errors.New("required column missing")
	ErrInvalidAmount         = errors.New("amount must be a non-negative number")
	ErrEmptyAccountCode      = errors.New("account code cannot be empty")
	ErrUnreadableSpreadsheet = errors.New("spreadsheet could not be read")

	// Computation errors
	ErrComputation = errors.New("computation failed")

	// Report errors
	ErrReportNotFound = errors.New("report not found")
)

// SchemaError reports a required column that is absent from the input table.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("'%s' column is missing", e.Column)
}

func (e *SchemaError) Unwrap() error {
	return ErrMissingColumn
}

// ComputationError reports an allocation or aggregation result that cannot
// be trusted or represented.
type ComputationError struct {
	Account string
	Reason  string
}

func (e *ComputationError) Error() string {
	if e.Account == "" {
		return fmt.Sprintf("computation failed: %s", e.Reason)
	}
	return fmt.Sprintf("computation failed for account %s: %s", e.Account, e.Reason)
}

func (e *ComputationError) Unwrap() error {
	return ErrComputation
}

// ParseWarning is a non-fatal problem found while reading a row. The row is
// kept; the offending value is replaced by its missing sentinel.
type ParseWarning struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("row %d, column %q: %s (%q)", w.Row, w.Column, w.Message, w.Value)
}
