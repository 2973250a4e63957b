package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ruffctl/ruffctl/internal/engine"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := NewStore(StoreConfig{Path: dbPath})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("Database file was not created")
	}
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	changes := []engine.Change{
		{RuleCode: "E501", Enabled: false, IgnoreReason: "legacy", ChangedAt: time.Now()},
		{RuleCode: "F401", Enabled: false, ChangedAt: time.Now()},
		{RuleCode: "E501", Enabled: true, ChangedAt: time.Now()},
	}
	for _, c := range changes {
		if err := store.Record(ctx, c); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	records, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}

	// Newest first.
	if records[0].RuleCode != "E501" || !records[0].Enabled {
		t.Errorf("records[0] = %+v, want latest E501 enable", records[0])
	}
	if records[2].IgnoreReason != "legacy" {
		t.Errorf("oldest record reason = %q, want legacy", records[2].IgnoreReason)
	}
	for _, rec := range records {
		if rec.RunID != store.RunID() {
			t.Errorf("record run id = %q, want %q", rec.RunID, store.RunID())
		}
		if rec.ChangedAt.IsZero() {
			t.Error("ChangedAt not round-tripped")
		}
	}
}

func TestRecentLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Record(ctx, engine.Change{RuleCode: "E501", ChangedAt: time.Now()}); err != nil {
			t.Fatal(err)
		}
	}

	records, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Errorf("len(records) = %d, want 2", len(records))
	}
}

func TestForRule(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, code := range []string{"E501", "F401", "E501"} {
		if err := store.Record(ctx, engine.Change{RuleCode: code, ChangedAt: time.Now()}); err != nil {
			t.Fatal(err)
		}
	}

	records, err := store.ForRule(ctx, "E501", 10)
	if err != nil {
		t.Fatalf("ForRule failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	for _, rec := range records {
		if rec.RuleCode != "E501" {
			t.Errorf("unexpected rule code %q", rec.RuleCode)
		}
	}
}

func TestRecentEmpty(t *testing.T) {
	store := newTestStore(t)

	records, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}
