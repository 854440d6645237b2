package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erginozdemir/tools4audit/internal/domain"
)

func testReport() *domain.AgingReport {
	jan := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	tx := domain.Transaction{
		AccountCode: "120.01",
		AccountName: "A Müşterisi",
		VoucherDate: &jan,
		VoucherType: "Normal",
		Debit:       decimal.NewFromInt(5000),
		Credit:      decimal.Zero,
	}
	return &domain.AgingReport{
		ID:           "01HRPT",
		CreatedAt:    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		RowCount:     1,
		AccountCount: 1,
		Pivot: &domain.Pivot{
			Periods: []domain.Period{1},
			Rows: []domain.PivotRow{{
				AccountCode: "120.01",
				AccountName: "A Müşterisi",
				Cells:       []decimal.Decimal{decimal.NewFromInt(5000)},
				Total:       decimal.NewFromInt(5000),
			}},
			Totals: domain.PivotRow{
				AccountCode: domain.TotalLabel,
				Cells:       []decimal.Decimal{decimal.NewFromInt(5000)},
				Total:       decimal.NewFromInt(5000),
			},
		},
		Matrix: &domain.Matrix{
			Headers: []string{"Hesap Kodu", "Hesap Adı", "1", "Toplam"},
			Rows:    [][]string{{"120.01", "A Müşterisi", "5.000", "5.000"}},
		},
		Allocations: []domain.Allocation{{
			Transaction: tx,
			NetBalance:  decimal.NewFromInt(5000),
			Remaining:   decimal.NewFromInt(5000),
			Period:      1,
		}},
	}
}

func TestReportStoreSaveAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewReportStore(client, nil)
	ctx := context.Background()

	if err := store.Save(ctx, testReport(), time.Hour); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !mr.Exists("report:01HRPT") {
		t.Fatalf("expected key report:01HRPT to exist")
	}
	if ttl := mr.TTL("report:01HRPT"); ttl != time.Hour {
		t.Fatalf("expected ttl 1h, got %s", ttl)
	}

	got, err := store.Get(ctx, "01HRPT")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if got.RowCount != 1 || got.Pivot == nil || len(got.Pivot.Rows) != 1 {
		t.Fatalf("unexpected report: %+v", got)
	}
	if !got.Pivot.GrandTotal().Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("expected grand total 5000, got %s", got.Pivot.GrandTotal())
	}
	if got.Allocations[0].Period != 1 || got.Allocations[0].VoucherDate == nil {
		t.Fatalf("allocation did not round-trip: %+v", got.Allocations[0])
	}
	if got.Matrix.Rows[0][2] != "5.000" {
		t.Fatalf("matrix did not round-trip: %v", got.Matrix.Rows)
	}
}

func TestReportStoreGetMissing(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewReportStore(client, nil)

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}

func TestReportStoreExpiry(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewReportStore(client, nil)
	ctx := context.Background()

	if err := store.Save(ctx, testReport(), time.Minute); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "01HRPT")
	if !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected expired report to be gone, got %v", err)
	}
}

func TestReportStoreCorruptPayload(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	if err := mr.Set("report:bad", "{not json"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	store := NewReportStore(client, nil)
	_, err := store.Get(context.Background(), "bad")
	if err == nil || errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestReportStorePing(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer client.Close()

	store := NewReportStore(client, nil)
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}

	mr.Close()
	if err := store.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping to fail after server shutdown")
	}
}
