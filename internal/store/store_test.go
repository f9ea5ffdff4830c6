package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// implementations returns a fresh instance of every Store for contract tests.
func implementations(t *testing.T) map[string]Store {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "game.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return map[string]Store{
		"sqlite": db,
		"memory": NewMemoryStore(),
	}
}

func TestAppendThenList(t *testing.T) {
	ctx := context.Background()
	for name, st := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			got, err := st.Append(ctx, Record{PlayerName: "Ann", Attempts: 3, GuessedNumber: 42})
			if err != nil {
				t.Fatalf("Append: %v", err)
			}
			want := Record{ID: 1, PlayerName: "Ann", Attempts: 3, GuessedNumber: 42}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Append mismatch (-want +got):\n%s", diff)
			}
			list, err := st.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if diff := cmp.Diff([]Record{want}, list); diff != "" {
				t.Errorf("List mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListEmpty(t *testing.T) {
	ctx := context.Background()
	for name, st := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			list, err := st.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if list == nil || len(list) != 0 {
				t.Errorf("List() = %#v, want empty non-nil slice", list)
			}
		})
	}
}

func TestListOrderedByID(t *testing.T) {
	ctx := context.Background()
	for name, st := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			names := []string{"Ann", "Bob", "Cy"}
			for i, n := range names {
				if _, err := st.Append(ctx, Record{PlayerName: n, Attempts: i + 1, GuessedNumber: 10 * i}); err != nil {
					t.Fatal(err)
				}
			}
			list, err := st.List(ctx)
			if err != nil {
				t.Fatal(err)
			}
			var got []string
			for i, r := range list {
				if r.ID != int64(i+1) {
					t.Errorf("record %d has id %d", i, r.ID)
				}
				got = append(got, r.PlayerName)
			}
			if diff := cmp.Diff(names, got); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClearResetsSequence(t *testing.T) {
	ctx := context.Background()
	for name, st := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			for _, n := range []string{"Ann", "Bob"} {
				if _, err := st.Append(ctx, Record{PlayerName: n, Attempts: 2, GuessedNumber: 7}); err != nil {
					t.Fatal(err)
				}
			}
			if err := st.Clear(ctx); err != nil {
				t.Fatalf("Clear: %v", err)
			}
			list, err := st.List(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(list) != 0 {
				t.Errorf("List after Clear = %v, want empty", list)
			}
			r, err := st.Append(ctx, Record{PlayerName: "Cy", Attempts: 1, GuessedNumber: 5})
			if err != nil {
				t.Fatal(err)
			}
			if r.ID != 1 {
				t.Errorf("first id after Clear = %d, want 1", r.ID)
			}
		})
	}
}

func TestAppendValidates(t *testing.T) {
	ctx := context.Background()
	bad := []Record{
		{PlayerName: "", Attempts: 1},
		{PlayerName: "  ", Attempts: 1},
		{PlayerName: "Ann", Attempts: 0},
	}
	for name, st := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			for _, r := range bad {
				if _, err := st.Append(ctx, r); err == nil {
					t.Errorf("Append(%+v) succeeded, want error", r)
				}
			}
			list, _ := st.List(ctx)
			if len(list) != 0 {
				t.Errorf("invalid appends were stored: %v", list)
			}
		})
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	for name, st := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			if err := st.Close(); err != nil {
				t.Fatalf("first Close: %v", err)
			}
			if err := st.Close(); err != nil {
				t.Errorf("second Close: %v", err)
			}
			if _, err := st.Append(ctx, Record{PlayerName: "Ann", Attempts: 1}); !errors.Is(err, ErrStorage) {
				t.Errorf("Append after Close err = %v, want ErrStorage", err)
			}
			if _, err := st.List(ctx); !errors.Is(err, ErrStorage) {
				t.Errorf("List after Close err = %v, want ErrStorage", err)
			}
			if err := st.Clear(ctx); !errors.Is(err, ErrStorage) {
				t.Errorf("Clear after Close err = %v, want ErrStorage", err)
			}
		})
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "game.db")

	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Append(ctx, Record{PlayerName: "Ann", Attempts: 4, GuessedNumber: 12}); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopening must not re-run migrations or lose rows.
	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	list, err := db.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []Record{{ID: 1, PlayerName: "Ann", Attempts: 4, GuessedNumber: 12}}
	if diff := cmp.Diff(want, list); diff != "" {
		t.Errorf("after reopen (-want +got):\n%s", diff)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Error("Open with blank path succeeded")
	}
}
