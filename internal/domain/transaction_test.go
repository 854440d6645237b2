package domain

import (
	"errors"
	"testing"
)

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name        string
		tx          Transaction
		expectError error
	}{
		{
			name:        "valid debit",
			tx:          Transaction{AccountCode: "120.01", Debit: dec(10)},
			expectError: nil,
		},
		{
			name:        "blank account code",
			tx:          Transaction{AccountCode: "  ", Debit: dec(10)},
			expectError: ErrEmptyAccountCode,
		},
		{
			name:        "negative credit",
			tx:          Transaction{AccountCode: "320", Credit: dec(-1)},
			expectError: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if !errors.Is(err, tt.expectError) {
				t.Fatalf("expected %v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestNewTable_FirstNameWins(t *testing.T) {
	table := NewTable([]Transaction{
		{AccountCode: "120", AccountName: "First"},
		{AccountCode: "320", AccountName: "Other"},
		{AccountCode: "120", AccountName: "Second"},
	})

	if table.Rows[2].AccountName != "First" {
		t.Fatalf("expected first name to win, got %s", table.Rows[2].AccountName)
	}
	if table.AccountCount() != 2 {
		t.Fatalf("expected 2 accounts, got %d", table.AccountCount())
	}
}

func TestTable_CloneIsIndependent(t *testing.T) {
	table := NewTable([]Transaction{{AccountCode: "1"}, {AccountCode: "2"}})

	clone := table.Clone()
	clone.Rows[0].AccountCode = "changed"

	if table.Rows[0].AccountCode != "1" {
		t.Fatal("mutating a clone must not affect the original")
	}
}

func TestTransaction_IsOpening(t *testing.T) {
	if !(&Transaction{VoucherType: "Açılış"}).IsOpening() {
		t.Fatal("Açılış must be an opening voucher")
	}
	if (&Transaction{VoucherType: "açılış fişi"}).IsOpening() {
		t.Fatal("only the exact voucher type is an opening voucher")
	}
}
