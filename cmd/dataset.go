package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhubert/datagrid/internal/config"
	"github.com/zhubert/datagrid/internal/layout"
	"github.com/zhubert/datagrid/internal/source"
)

// dataset is the rows and columns picked by the dataset flags.
type dataset struct {
	tableID      string
	title        string
	columns      []layout.Descriptor
	initialView  *layout.State
	pageSize     int
	selection    string
	singleExpand bool
	provider     source.Provider
	rowID        func(source.Record) (string, error)
}

// addDatasetFlags registers the flags that choose where rows come from.
func addDatasetFlags(cmd *cobra.Command, fl *gridFlags) {
	f := cmd.Flags()
	f.StringVarP(&fl.file, "file", "f", "", "YAML grid definition with columns and rows")
	f.StringVar(&fl.db, "db", "", "SQLite database to read rows from (needs --db-table)")
	f.StringVar(&fl.dbTable, "db-table", "", "Table or view in --db")
	f.StringVar(&fl.table, "table", "", "Table id the column layout is saved under")
	f.IntVar(&fl.rows, "rows", 500, "Number of demo rows to generate")
	f.Int64Var(&fl.seed, "seed", 1, "Seed for the demo rows")
	cmd.MarkFlagsMutuallyExclusive("file", "db")
}

// openDataset opens the rows the flags name: a grid file, a SQLite table or
// generated demo rows. A SQLite provider must be closed by the caller.
func openDataset(ctx context.Context, fl gridFlags) (*dataset, error) {
	var ds *dataset
	switch {
	case fl.file != "":
		gf, err := config.LoadGridFile(fl.file)
		if err != nil {
			return nil, err
		}
		mem := source.NewMemory(gf.Rows, gf.RowID)
		ds = &dataset{
			tableID:      gf.Table,
			columns:      gf.Descriptors(),
			initialView:  gf.View(),
			pageSize:     gf.PageSize,
			selection:    gf.Selection,
			singleExpand: gf.SingleExpand,
			provider:     withLatency(mem, fl),
			rowID:        mem.RowID,
		}

	case fl.db != "":
		if fl.dbTable == "" {
			return nil, fmt.Errorf("--db needs --db-table")
		}
		db, err := source.OpenSQLite(ctx, fl.db, fl.dbTable)
		if err != nil {
			return nil, err
		}
		ds = &dataset{
			tableID:  db.Table(),
			title:    db.Table(),
			columns:  db.Columns(),
			provider: db,
			rowID:    db.RowID,
		}

	default:
		mem := source.NewMemory(source.Generate(fl.rows, fl.seed), "id")
		ds = &dataset{
			tableID:  demoTableID,
			title:    "Demo people",
			columns:  source.DemoColumns(),
			provider: withLatency(mem, fl),
			rowID:    mem.RowID,
		}
	}

	if ds.tableID == "" {
		ds.tableID = demoTableID
	}
	if fl.table != "" {
		ds.tableID = fl.table
	}
	return ds, nil
}

func withLatency(mem *source.Memory, fl gridFlags) *source.Memory {
	if fl.latency > 0 {
		return mem.WithLatency(fl.latency)
	}
	return mem
}
