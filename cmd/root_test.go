package cmd

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zhubert/datagrid/internal/config"
	"github.com/zhubert/datagrid/internal/resize"
	"github.com/zhubert/datagrid/internal/rowstate"
	"github.com/zhubert/datagrid/internal/source"
)

func TestDebugFlagDefaultTrue(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("debug")
	if flag == nil {
		t.Fatal("--debug flag not found")
	}
	if flag.DefValue != "true" {
		t.Errorf("--debug default = %q, want %q", flag.DefValue, "true")
	}
}

func TestQuietFlagExists(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("quiet")
	if flag == nil {
		t.Fatal("--quiet flag not found")
	}
	if flag.DefValue != "false" {
		t.Errorf("--quiet default = %q, want %q", flag.DefValue, "false")
	}
	if flag.Shorthand != "q" {
		t.Errorf("--quiet shorthand = %q, want %q", flag.Shorthand, "q")
	}
}

func TestGridFlagsExist(t *testing.T) {
	for _, name := range []string{"file", "db", "db-table", "table", "rows", "seed", "export-dir", "page-size", "selection", "multi-expand", "rtl", "latency"} {
		if rootCmd.Flags().Lookup(name) == nil {
			t.Errorf("--%s flag not found", name)
		}
	}
}

func TestInitConfig_QuietOverridesDebug(t *testing.T) {
	origDebug, origQuiet := debugMode, quietMode
	defer func() { debugMode, quietMode = origDebug, origQuiet }()

	debugMode = true
	quietMode = true

	// Should not panic - quiet should take precedence
	initConfig()
}

func TestVersionTemplate(t *testing.T) {
	origV, origC, origD := version, commit, date
	defer SetVersionInfo(origV, origC, origD)

	SetVersionInfo("1.2.3", "none", "unknown")
	if got := versionTemplate(); got != "datagrid 1.2.3\n" {
		t.Errorf("versionTemplate() = %q", got)
	}
	SetVersionInfo("1.2.3", "abc123", "2026-01-02")
	if got := versionTemplate(); got != "datagrid 1.2.3\n  commit: abc123\n  built:  2026-01-02\n" {
		t.Errorf("versionTemplate() = %q", got)
	}
}

func emptyConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	return cfg
}

func writeGridFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grid.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const testGridFile = `
table: servers
row_id: host
selection: single
single_expand: true
page_size: 5
columns:
  - id: host
    name: Host
    size: 200
    hideable: false
  - id: region
    name: Region
    pinnable: false
initial_view:
  columnPinning:
    left: [host]
rows:
  - {host: web-1, region: eu}
  - {host: web-2, region: us}
`

func TestBuildOptions_Demo(t *testing.T) {
	opts, err := buildOptions(nil, emptyConfig(t), gridFlags{rows: 30, seed: 7})
	if err != nil {
		t.Fatalf("buildOptions: %v", err)
	}
	if opts.TableID != demoTableID {
		t.Errorf("TableID = %q, want %q", opts.TableID, demoTableID)
	}
	if len(opts.Columns) == 0 || opts.Provider == nil || opts.RowID == nil {
		t.Fatalf("incomplete options: %+v", opts)
	}
	if opts.SelectionMode != rowstate.ModeMultiple || opts.Direction != resize.LeftToRight {
		t.Errorf("mode %v direction %v", opts.SelectionMode, opts.Direction)
	}
}

func TestBuildOptions_GridFile(t *testing.T) {
	path := writeGridFile(t, testGridFile)
	opts, err := buildOptions(nil, emptyConfig(t), gridFlags{file: path})
	if err != nil {
		t.Fatalf("buildOptions: %v", err)
	}

	if opts.TableID != "servers" || opts.PageSize != 5 {
		t.Errorf("TableID %q PageSize %d", opts.TableID, opts.PageSize)
	}
	if opts.SelectionMode != rowstate.ModeSingle || opts.AllowMultipleExpanded {
		t.Errorf("mode %v multi-expand %v", opts.SelectionMode, opts.AllowMultipleExpanded)
	}
	if len(opts.Columns) != 2 || opts.Columns[0].Hideable() || opts.Columns[1].Pinnable() {
		t.Errorf("columns = %+v", opts.Columns)
	}
	if opts.InitialView == nil || len(opts.InitialView.Pinning.Left) != 1 {
		t.Errorf("initial view = %+v", opts.InitialView)
	}
	if id, err := opts.RowID(map[string]any{"host": "web-9"}); err != nil || id != "web-9" {
		t.Errorf("RowID = %q, %v", id, err)
	}
}

func TestBuildOptions_FlagsOverride(t *testing.T) {
	path := writeGridFile(t, testGridFile)
	cfg := emptyConfig(t)
	cfg.SetDirection("ltr")

	opts, err := buildOptions(nil, cfg, gridFlags{
		file:        path,
		table:       "servers-eu",
		pageSize:    50,
		selection:   "multiple",
		multiExpand: true,
		rtl:         true,
		latency:     time.Millisecond,
	})
	if err != nil {
		t.Fatalf("buildOptions: %v", err)
	}
	if opts.TableID != "servers-eu" || opts.PageSize != 50 {
		t.Errorf("TableID %q PageSize %d", opts.TableID, opts.PageSize)
	}
	if opts.SelectionMode != rowstate.ModeMultiple || !opts.AllowMultipleExpanded {
		t.Errorf("mode %v multi-expand %v", opts.SelectionMode, opts.AllowMultipleExpanded)
	}
	if opts.Direction != resize.RightToLeft {
		t.Errorf("direction = %v, want rtl", opts.Direction)
	}
}

func TestBuildOptions_ConfigDefaults(t *testing.T) {
	cfg := emptyConfig(t)
	cfg.SetSelectionMode("single")
	cfg.SetAllowMultipleExpanded(true)
	cfg.SetDirection("rtl")

	opts, err := buildOptions(nil, cfg, gridFlags{rows: 5, seed: 1})
	if err != nil {
		t.Fatalf("buildOptions: %v", err)
	}
	if opts.SelectionMode != rowstate.ModeSingle || !opts.AllowMultipleExpanded || opts.Direction != resize.RightToLeft {
		t.Errorf("mode %v multi-expand %v direction %v", opts.SelectionMode, opts.AllowMultipleExpanded, opts.Direction)
	}
}

func TestBuildOptions_Errors(t *testing.T) {
	tests := []struct {
		name string
		fl   func(t *testing.T) gridFlags
	}{
		{"missing file", func(t *testing.T) gridFlags {
			return gridFlags{file: filepath.Join(t.TempDir(), "nope.yaml")}
		}},
		{"invalid file", func(t *testing.T) gridFlags {
			return gridFlags{file: writeGridFile(t, "columns: []\n")}
		}},
		{"bad selection", func(t *testing.T) gridFlags {
			return gridFlags{rows: 1, selection: "some"}
		}},
		{"db without table", func(t *testing.T) gridFlags {
			return gridFlags{db: writeTestDB(t)}
		}},
		{"db missing table", func(t *testing.T) gridFlags {
			return gridFlags{db: writeTestDB(t), dbTable: "nope"}
		}},
		{"bad selection with db", func(t *testing.T) gridFlags {
			return gridFlags{db: writeTestDB(t), dbTable: "orders", selection: "some"}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := buildOptions(nil, emptyConfig(t), tt.fl(t)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadConfig_Path(t *testing.T) {
	orig := configPath
	defer func() { configPath = orig }()

	configPath = filepath.Join(t.TempDir(), "custom.json")
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Path() != configPath {
		t.Errorf("Path() = %q, want %q", cfg.Path(), configPath)
	}
	if _, ok := cfg.GetView("anything"); ok {
		t.Error("expected an empty config")
	}
}

const testDBSchema = `
CREATE TABLE orders (id INTEGER PRIMARY KEY, item TEXT, total REAL);
INSERT INTO orders VALUES (1, 'lamp', 20.5), (2, 'desk', 140), (3, 'chair', 75.25);
`

// writeTestDB creates a small SQLite database with an orders table.
func writeTestDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shop.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec(testDBSchema); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return path
}

func TestBuildOptions_SQLite(t *testing.T) {
	opts, err := buildOptions(nil, emptyConfig(t), gridFlags{db: writeTestDB(t), dbTable: "orders", pageSize: 2})
	if err != nil {
		t.Fatalf("buildOptions: %v", err)
	}
	defer closeProvider(opts.Provider)

	if opts.TableID != "orders" || opts.Title != "orders" || opts.PageSize != 2 {
		t.Errorf("TableID %q Title %q PageSize %d", opts.TableID, opts.Title, opts.PageSize)
	}
	if len(opts.Columns) != 3 || opts.Columns[0].ID != "id" {
		t.Fatalf("columns = %+v", opts.Columns)
	}

	res, err := opts.Provider.Fetch(context.Background(), source.Query{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.TotalCount != 3 || len(res.Rows) != 2 {
		t.Errorf("total %d rows %d", res.TotalCount, len(res.Rows))
	}
	if id, err := opts.RowID(res.Rows[1]); err != nil || id != "2" {
		t.Errorf("RowID = %q, %v", id, err)
	}
}

func TestOpenDataset_TableOverride(t *testing.T) {
	tests := []struct {
		name string
		fl   func(t *testing.T) gridFlags
		want string
	}{
		{"demo", func(t *testing.T) gridFlags { return gridFlags{rows: 1} }, demoTableID},
		{"grid file", func(t *testing.T) gridFlags { return gridFlags{file: writeGridFile(t, testGridFile)} }, "servers"},
		{"grid file without table", func(t *testing.T) gridFlags {
			return gridFlags{file: writeGridFile(t, "columns:\n  - id: a\n")}
		}, demoTableID},
		{"flag wins", func(t *testing.T) gridFlags {
			return gridFlags{db: writeTestDB(t), dbTable: "orders", table: "orders-2026"}
		}, "orders-2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := openDataset(context.Background(), tt.fl(t))
			if err != nil {
				t.Fatalf("openDataset: %v", err)
			}
			defer closeProvider(ds.provider)
			if ds.tableID != tt.want {
				t.Errorf("tableID = %q, want %q", ds.tableID, tt.want)
			}
		})
	}
}

func TestCloseProvider(t *testing.T) {
	ds, err := openDataset(context.Background(), gridFlags{db: writeTestDB(t), dbTable: "orders"})
	if err != nil {
		t.Fatal(err)
	}
	closeProvider(ds.provider)
	if _, err := ds.provider.Fetch(context.Background(), source.Query{Page: 1}); err == nil {
		t.Error("fetch after close should fail")
	}

	// Providers without Close are left alone.
	closeProvider(source.NewMemory(nil, "id"))
}
