package domain

import (
	"testing"
	"time"
)

func TestSortForAging(t *testing.T) {
	table := &Table{Rows: []Transaction{
		{AccountCode: "320.01", VoucherNumber: "a", VoucherDate: day(2024, 2, 15)},
		{AccountCode: "120.02", VoucherNumber: "b", VoucherDate: day(2024, 1, 10)},
		{AccountCode: "120.01", VoucherNumber: "c", VoucherDate: nil},
		{AccountCode: "120.01", VoucherNumber: "d", VoucherDate: day(2024, 1, 5)},
		{AccountCode: "120.01", VoucherNumber: "e", VoucherDate: day(2024, 3, 5)},
		{AccountCode: "120.01", VoucherNumber: "f", VoucherDate: day(2024, 1, 5)},
	}}

	sorted := SortForAging(table)

	expected := []string{"e", "d", "f", "c", "b", "a"}
	for i, want := range expected {
		if got := sorted.Rows[i].VoucherNumber; got != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, got)
		}
	}

	if table.Rows[0].VoucherNumber != "a" {
		t.Fatal("sorting must not reorder the input table")
	}
}

func TestSortForAging_TextOrder(t *testing.T) {
	// Text order: "120.1" sorts after "120.01" and "1200" sorts after "120.9".
	table := &Table{Rows: []Transaction{
		{AccountCode: "1200"},
		{AccountCode: "120.1"},
		{AccountCode: "120.01"},
		{AccountCode: "120.9"},
	}}

	sorted := SortForAging(table)

	expected := []string{"120.01", "120.1", "120.9", "1200"}
	for i, want := range expected {
		if got := sorted.Rows[i].AccountCode; got != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, got)
		}
	}
}

func TestSortForAging_Idempotent(t *testing.T) {
	table := &Table{Rows: []Transaction{
		{AccountCode: "B", VoucherNumber: "1", VoucherDate: day(2024, 5, 1)},
		{AccountCode: "A", VoucherNumber: "2", VoucherDate: day(2024, 5, 1)},
		{AccountCode: "A", VoucherNumber: "3", VoucherDate: day(2024, 5, 1)},
		{AccountCode: "A", VoucherNumber: "4", VoucherDate: day(2024, 6, 1)},
		{AccountCode: "B", VoucherNumber: "5"},
	}}

	once := SortForAging(table)
	twice := SortForAging(once)

	for i := range once.Rows {
		if once.Rows[i].VoucherNumber != twice.Rows[i].VoucherNumber {
			t.Fatalf("second pass reordered position %d: %s vs %s",
				i, once.Rows[i].VoucherNumber, twice.Rows[i].VoucherNumber)
		}
	}
}

func TestSortChronological(t *testing.T) {
	table := &Table{Rows: []Transaction{
		{AccountCode: "A", VoucherNumber: "late", VoucherDate: day(2024, 9, 1)},
		{AccountCode: "A", VoucherNumber: "undated"},
		{AccountCode: "A", VoucherNumber: "early", VoucherDate: day(2024, 1, 1)},
	}}

	sorted := SortChronological(table)

	expected := []string{"early", "late", "undated"}
	for i, want := range expected {
		if got := sorted.Rows[i].VoucherNumber; got != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, got)
		}
	}
}

func TestGroupByAccount(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []Transaction{
		{AccountCode: "B", AccountName: "Bee", VoucherDate: &ts},
		{AccountCode: "A", AccountName: "Ay"},
		{AccountCode: "B", AccountName: "Bee"},
	}

	groups := GroupByAccount(rows)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].AccountCode != "B" || len(groups[0].Transactions) != 2 {
		t.Fatalf("unexpected first group: %+v", groups[0])
	}
	if groups[1].AccountName != "Ay" {
		t.Fatalf("expected second group name Ay, got %s", groups[1].AccountName)
	}
}
