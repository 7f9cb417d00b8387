package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"stockdata/pkg/price"
)

func openSQLite(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "prices.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	s := New(db)
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func TestStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)

	ds, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if len(ds) != 0 {
		t.Fatalf("expected empty dataset, got %d", len(ds))
	}

	want := price.Dataset{
		{Date: "2024-01-03", Open: "1", High: "2", Low: "0.5", Close: "1.5", AdjClose: "1.4", Volume: "10"},
		{Date: "2024-01-01", Open: "3", High: "4", Low: "2.5", Close: "3.5", AdjClose: "3.4", Volume: "20"},
		{Date: "2024-01-02", Open: "5", High: "6", Low: "4.5", Close: "5.5", AdjClose: "5.4", Volume: "30"},
	}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d: got %+v, want %+v", i, got[i], want[i])
		}
	}

	if err := s.Save(ctx, want[:1]); err != nil {
		t.Fatalf("save shorter: %v", err)
	}
	got, _ = s.Load(ctx)
	if len(got) != 1 || got[0].Date != "2024-01-03" {
		t.Fatalf("save did not replace contents: %+v", got)
	}
}

func TestStoreClosedDB(t *testing.T) {
	s := openSQLite(t)
	s.db.Close()
	if _, err := s.Load(context.Background()); !errors.Is(err, price.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if err := s.Save(context.Background(), nil); !errors.Is(err, price.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}
