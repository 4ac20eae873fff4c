package orders

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ashureev/voicebooth/internal/domain"
)

func TestSQLiteStoreAppendAndList(t *testing.T) {
	t.Parallel()

	store, err := NewSQLite(filepath.Join(t.TempDir(), "orders.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("fresh store should be empty, got %d", len(got))
	}

	orders := []domain.Order{
		{
			OrderID:   "ab12cd34",
			Timestamp: "2026-08-31T12:00:00Z",
			Items: []domain.OrderItem{
				{ProductID: "mug-001", Quantity: 5},
				{ProductID: "tshirt-002", Quantity: 1},
			},
		},
		{
			OrderID:   "ef56ab78",
			Timestamp: "2026-08-31T12:10:00Z",
			Items:     []domain.OrderItem{{ProductID: "shoes-001", Quantity: 1}},
		},
	}
	for _, o := range orders {
		if err := store.Append(ctx, o); err != nil {
			t.Fatalf("Append(%s) failed: %v", o.OrderID, err)
		}
	}

	got, err = store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d orders, want 2", len(got))
	}
	if got[0].OrderID != "ab12cd34" || got[1].OrderID != "ef56ab78" {
		t.Fatalf("append order not preserved: %v", got)
	}
	if len(got[0].Items) != 2 || got[0].Items[0].Quantity != 5 {
		t.Fatalf("items did not round-trip: %v", got[0].Items)
	}
}

func TestSQLiteStoreRejectsDuplicateOrderID(t *testing.T) {
	t.Parallel()

	store, err := NewSQLite(filepath.Join(t.TempDir(), "orders.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	order := domain.Order{OrderID: "ab12cd34", Timestamp: "2026-08-31T12:00:00Z"}
	if err := store.Append(ctx, order); err != nil {
		t.Fatalf("first Append failed: %v", err)
	}
	if err := store.Append(ctx, order); err == nil {
		t.Fatal("duplicate order id should fail")
	}
}
