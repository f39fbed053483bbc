package export

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/zhubert/datagrid/internal/errors"
	"github.com/zhubert/datagrid/internal/grid"
	"github.com/zhubert/datagrid/internal/layout"
)

func testSheet() Sheet {
	return Sheet{
		Name:   "people",
		Header: []string{"Name", "Age"},
		Rows: [][]string{
			{"Ada", "36"},
			{"Grace", "45"},
		},
		Widths: []int{18, 0},
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, testSheet()); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); !reflect.DeepEqual(got, []string{"people"}) {
		t.Errorf("sheets = %v", got)
	}
	rows, err := f.GetRows("people")
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"Name", "Age"}, {"Ada", "36"}, {"Grace", "45"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
	if w, err := f.GetColWidth("people", "A"); err != nil || w != 18 {
		t.Errorf("column A width = %v, %v", w, err)
	}
}

func TestWriteXLSX_NoHeader(t *testing.T) {
	s := testSheet()
	s.Header = nil
	s.Name = ""

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, s); err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows("Rows")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0][0] != "Ada" {
		t.Errorf("rows = %v", rows)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()

	t.Run("xlsx", func(t *testing.T) {
		path := filepath.Join(dir, "out.xlsx")
		if err := Save(path, testSheet()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		f, err := excelize.OpenFile(path)
		if err != nil {
			t.Fatalf("OpenFile: %v", err)
		}
		defer f.Close()
		if v, _ := f.GetCellValue("people", "A3"); v != "Grace" {
			t.Errorf("A3 = %q", v)
		}
	})

	t.Run("tsv", func(t *testing.T) {
		path := filepath.Join(dir, "out.tsv")
		if err := Save(path, testSheet()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if got := string(data); got != "Name\tAge\nAda\t36\nGrace\t45\n" {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		path := filepath.Join(dir, "out.pdf")
		err := Save(path, testSheet())
		if !errors.Is(err, errors.KindInvalid) {
			t.Errorf("Save() error = %v, want invalid", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("no file should be created")
		}
	})

	t.Run("unwritable", func(t *testing.T) {
		err := Save(filepath.Join(dir, "missing", "out.xlsx"), testSheet())
		if !errors.Is(err, errors.KindExport) {
			t.Errorf("Save() error = %v, want export error", err)
		}
	})
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.xlsx", FormatXLSX, false},
		{"A.XLSX", FormatXLSX, false},
		{"a.tsv", FormatTSV, false},
		{"a.txt", FormatTSV, false},
		{"a.csv", 0, true},
		{"a", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatForPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatForPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatForPath() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	tests := []struct {
		table string
		want  string
	}{
		{"people", "people-20260304-050607.xlsx"},
		{"", "rows-20260304-050607.xlsx"},
	}
	for _, tt := range tests {
		if got := FileName(tt.table, at); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.table, got, tt.want)
		}
	}
}

func TestSheetName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"people", "people"},
		{"", "Rows"},
		{"  ", "Rows"},
		{"a/b:c", "a-b-c"},
		{"what?[x]*", "what(x)"},
		{"a very long table name that goes on and on", "a very long table name that goe"},
	}
	for _, tt := range tests {
		if got := SheetName(tt.in); got != tt.want {
			t.Errorf("SheetName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFromTable(t *testing.T) {
	table := grid.New(grid.Options[map[string]any]{
		ID: "people",
		Columns: []grid.Column[map[string]any]{
			{Descriptor: layout.Descriptor{ID: "name", DisplayName: "Name", Size: 180}, Key: "name"},
			{Descriptor: layout.Descriptor{ID: "age", DisplayName: "Age", Size: 60}, Key: "age"},
			{Descriptor: layout.Descriptor{ID: "team_name", Size: 100}, Key: "team_name"},
		},
		RowID: func(r map[string]any) (string, error) { return r["name"].(string), nil },
	})
	table.SetServerData(grid.ServerData[map[string]any]{
		Rows: []map[string]any{
			{"name": "Ada", "age": 36, "team_name": "Core"},
			{"name": "Grace", "age": 45, "team_name": "Tools"},
		},
		TotalCount: 2,
		Page:       1,
		PageSize:   10,
	})
	table.SetVisibility("age", false)
	table.SetPin("team_name", layout.SideLeft)

	s := FromTable(table, "People", nil)
	if !reflect.DeepEqual(s.Header, []string{"team name", "Name"}) {
		t.Errorf("header = %v", s.Header)
	}
	if !reflect.DeepEqual(s.Widths, []int{10, 18}) {
		t.Errorf("widths = %v", s.Widths)
	}
	want := [][]string{{"Core", "Ada"}, {"Tools", "Grace"}}
	if !reflect.DeepEqual(s.Rows, want) {
		t.Errorf("rows = %v, want %v", s.Rows, want)
	}

	only := FromTable(table, "People", func(id string) bool { return id == "Grace" })
	if len(only.Rows) != 1 || only.Rows[0][1] != "Grace" {
		t.Errorf("filtered rows = %v", only.Rows)
	}
}
