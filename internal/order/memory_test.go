package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestMemoryStoreInsertionOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := Record{ID: uuid.New(), FirstName: "Ada"}
	second := Record{ID: uuid.New(), FirstName: "Grace"}
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}

	records, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != first.ID || records[1].ID != second.ID {
		t.Fatalf("records out of insertion order: %v", records)
	}
}

func TestMemoryStoreListIsACopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	if err := store.Save(ctx, Record{FirstName: "Ada"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	records, _ := store.ListAll(ctx)
	records[0].FirstName = "mutated"
	again, _ := store.ListAll(ctx)
	if again[0].FirstName != "Ada" {
		t.Fatalf("store mutated through returned slice")
	}
}
