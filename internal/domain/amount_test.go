package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "0"},
		{in: "5000", want: "5000"},
		{in: "2000.50", want: "2000.5"},
		{in: "1.234", want: "1.234"},
		{in: "1.5E3", want: "1500"},
		{in: "1.234,56", want: "1234.56"},
		{in: "12.345.678,90", want: "12345678.9"},
		{in: "1,5", want: "1.5"},
		{in: "1,234.56", wantErr: true},
		{in: "12,345,678.90", wantErr: true},
		{in: "1.23,4", wantErr: true},
		{in: "-50", wantErr: true},
		{in: "beş yüz", wantErr: true},
		{in: "1e5000000", wantErr: true},
		{in: "1e-5000000", wantErr: true},
		{in: "1" + strings.Repeat("0", 19), wantErr: true},
		{in: "0.0000000000000000001", wantErr: true},
		{in: "1" + strings.Repeat("0", 18), want: "1" + strings.Repeat("0", 18)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Fatalf("ParseAmount(%q) = %s, %v; expected ErrInvalidAmount", tt.in, got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q): unexpected error %v", tt.in, err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("ParseAmount(%q) = %s, expected %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseLocalAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "5.000", want: "5000"},
		{in: "7.500,5", want: "7500.5"},
		{in: "500", want: "500"},
		{in: "10000", want: "10000"},
		{in: "5000.5", want: "5000.5"},
		{in: "5,000.00", wantErr: true},
		{in: "10,000.50", wantErr: true},
		{in: "", wantErr: true},
		{in: "1e5000000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLocalAmount(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Fatalf("ParseLocalAmount(%q) = %s, %v; expected ErrInvalidAmount", tt.in, got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLocalAmount(%q): unexpected error %v", tt.in, err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("ParseLocalAmount(%q) = %s, expected %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseAmount_HugeExponentIsRejectedQuickly(t *testing.T) {
	start := time.Now()
	for i := 0; i < 100; i++ {
		if _, err := ParseAmount("9e9999999"); err == nil {
			t.Fatal("expected error")
		}
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("rejecting huge exponents took %s", elapsed)
	}
}
