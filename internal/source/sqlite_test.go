package source

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"slices"
	"testing"

	"github.com/zhubert/datagrid/internal/errors"
	"github.com/zhubert/datagrid/internal/grid"
)

const testSchema = `
CREATE TABLE items (code TEXT PRIMARY KEY, name TEXT, qty INTEGER, price REAL, note TEXT);
INSERT INTO items VALUES
	('a1', 'Widget', 5, 2.5, NULL),
	('a2', 'gadget', 12, 10.0, '50% off'),
	('a3', 'Bolt', 12, 0.1, 'bulk'),
	('a4', 'anchor', 1, 99.0, NULL),
	('a5', 'Washer_2', 30, 0.05, 'small');
CREATE TABLE logs (msg TEXT);
INSERT INTO logs VALUES ('started'), ('stopped');
CREATE VIEW cheap AS SELECT name, price FROM items WHERE price < 5;
`

// testDB writes the test schema to a fresh database file.
func testDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return path
}

func openTestSQLite(t *testing.T, table string) *SQLite {
	t.Helper()
	s, err := OpenSQLite(context.Background(), testDB(t), table)
	if err != nil {
		t.Fatalf("OpenSQLite(%q): %v", table, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func codes(rows []Record) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = fmt.Sprint(r["code"])
	}
	return out
}

func TestSQLite_Fetch(t *testing.T) {
	s := openTestSQLite(t, "items")

	tests := []struct {
		name      string
		query     Query
		wantCodes []string
		wantTotal int
	}{
		{"first page", Query{Page: 1, PageSize: 2}, []string{"a1", "a2"}, 5},
		{"second page", Query{Page: 2, PageSize: 2}, []string{"a3", "a4"}, 5},
		{"past the end", Query{Page: 9, PageSize: 2}, []string{}, 5},
		{"no page size returns all", Query{Page: 1}, []string{"a1", "a2", "a3", "a4", "a5"}, 5},
		{"sort text ignores case", Query{Page: 1, PageSize: 10, SortColumn: "name", SortDirection: grid.SortAsc},
			[]string{"a4", "a3", "a2", "a5", "a1"}, 5},
		{"sort numeric desc, ties by key", Query{Page: 1, PageSize: 10, SortColumn: "qty", SortDirection: grid.SortDesc},
			[]string{"a5", "a2", "a3", "a1", "a4"}, 5},
		{"nulls first", Query{Page: 1, PageSize: 10, SortColumn: "note", SortDirection: grid.SortAsc},
			[]string{"a1", "a4", "a2", "a3", "a5"}, 5},
		{"unknown sort column ignored", Query{Page: 1, PageSize: 10, SortColumn: "nope", SortDirection: grid.SortAsc},
			[]string{"a1", "a2", "a3", "a4", "a5"}, 5},
		{"search", Query{Page: 1, PageSize: 10, Search: "ET"}, []string{"a1", "a2"}, 2},
		{"search numbers", Query{Page: 1, PageSize: 10, Search: "12"}, []string{"a2", "a3"}, 2},
		{"search percent is literal", Query{Page: 1, PageSize: 10, Search: "%"}, []string{"a2"}, 1},
		{"search underscore is literal", Query{Page: 1, PageSize: 10, Search: "_"}, []string{"a5"}, 1},
		{"search then page", Query{Page: 2, PageSize: 1, Search: "et"}, []string{"a2"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Fetch(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("Fetch() error = %v", err)
			}
			if got := codes(res.Rows); !slices.Equal(got, tt.wantCodes) {
				t.Errorf("codes = %v, want %v", got, tt.wantCodes)
			}
			if res.TotalCount != tt.wantTotal {
				t.Errorf("TotalCount = %d, want %d", res.TotalCount, tt.wantTotal)
			}
		})
	}
}

func TestSQLite_Values(t *testing.T) {
	s := openTestSQLite(t, "items")
	res, err := s.Fetch(context.Background(), Query{Page: 1, PageSize: 1})
	if err != nil {
		t.Fatal(err)
	}
	r := res.Rows[0]
	if r["name"] != "Widget" || r["qty"] != int64(5) || r["price"] != 2.5 || r["note"] != nil {
		t.Errorf("row = %#v", r)
	}
	if _, ok := r[RowIDColumn]; ok {
		t.Error("tables with a primary key should not carry the rowid")
	}
}

func TestSQLite_RowIdentity(t *testing.T) {
	tests := []struct {
		table     string
		wantKey   string
		wantFirst string
		wantErr   bool
	}{
		{"items", "code", "a1", false},
		{"logs", RowIDColumn, "1", false},
		{"cheap", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			s := openTestSQLite(t, tt.table)
			if s.IDKey() != tt.wantKey {
				t.Errorf("IDKey() = %q, want %q", s.IDKey(), tt.wantKey)
			}
			res, err := s.Fetch(context.Background(), Query{Page: 1, PageSize: 10})
			if err != nil {
				t.Fatalf("Fetch() error = %v", err)
			}
			if len(res.Rows) == 0 {
				t.Fatal("no rows")
			}
			id, err := s.RowID(res.Rows[0])
			if (err != nil) != tt.wantErr {
				t.Fatalf("RowID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if id != tt.wantFirst {
				t.Errorf("RowID() = %q, want %q", id, tt.wantFirst)
			}
		})
	}
}

func TestSQLite_Columns(t *testing.T) {
	s := openTestSQLite(t, "items")
	cols := s.Columns()

	want := map[string]int{"code": 200, "name": 200, "qty": 100, "price": 120, "note": 200}
	if len(cols) != len(want) {
		t.Fatalf("columns = %+v", cols)
	}
	for _, c := range cols {
		if c.Size != want[c.ID] {
			t.Errorf("%s size = %d, want %d", c.ID, c.Size, want[c.ID])
		}
	}
	if cols[2].Header() != "qty" {
		t.Errorf("Header() = %q", cols[2].Header())
	}
	if s.Table() != "items" {
		t.Errorf("Table() = %q", s.Table())
	}
}

func TestOpenSQLite_Errors(t *testing.T) {
	_, err := OpenSQLite(context.Background(), testDB(t), "missing")
	if err == nil {
		t.Fatal("expected an error for a missing table")
	}
	if !errors.Is(err, errors.KindNotFound) {
		t.Errorf("kind = %v, want not found", errors.GetKind(err))
	}
}

func TestSQLite_FetchCanceled(t *testing.T) {
	s := openTestSQLite(t, "items")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Fetch(ctx, Query{Page: 1, PageSize: 2}); err == nil {
		t.Error("expected an error for a canceled context")
	}
}

func TestSQLite_IsProvider(t *testing.T) {
	var p Provider = openTestSQLite(t, "logs")
	res, err := p.Fetch(context.Background(), Query{Page: 1, PageSize: 10, SortColumn: "msg", SortDirection: grid.SortDesc})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Rows) != 2 || res.Rows[0]["msg"] != "stopped" {
		t.Errorf("rows = %v", res.Rows)
	}
}
