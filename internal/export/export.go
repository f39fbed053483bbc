// Package export writes rows of grid text to spreadsheet files. Columns
// arrive in on-screen order with hidden columns already left out.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/zhubert/datagrid/internal/clipboard"
	"github.com/zhubert/datagrid/internal/errors"
	"github.com/zhubert/datagrid/internal/grid"
	"github.com/zhubert/datagrid/internal/ui"
)

// Sheet is a table of display text.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
	// Widths are column widths in characters. Zero keeps the default.
	Widths []int
}

// FromTable collects the display text of the table's current rows whose ids
// keep reports true, or of every row when keep is nil. Columns follow the
// on-screen order and hidden columns are left out.
func FromTable[T any](t *grid.Table[T], name string, keep func(id string) bool) Sheet {
	cols := t.OrderedColumns()
	s := Sheet{
		Name:   name,
		Header: make([]string, len(cols)),
		Widths: make([]int, len(cols)),
	}
	for i, c := range cols {
		s.Header[i] = c.Header()
		s.Widths[i] = ui.CellsForWidth(t.ColumnWidth(c.ID))
	}

	for i, id := range t.RowIDs() {
		if keep != nil && !keep(id) {
			continue
		}
		cells := make([]string, len(cols))
		for j, c := range cols {
			cells[j] = t.CellText(i, c.ID)
		}
		s.Rows = append(s.Rows, cells)
	}
	return s
}

// Format is an output file format.
type Format int

const (
	FormatXLSX Format = iota
	FormatTSV
)

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".tsv", ".txt":
		return FormatTSV, nil
	}
	return 0, errors.E(errors.Op("export.Format"), errors.KindInvalid,
		fmt.Sprintf("unsupported file type %q (use .xlsx or .tsv)", filepath.Ext(path)))
}

// FileName names an export of table taken at t.
func FileName(table string, t time.Time) string {
	if table == "" {
		table = "rows"
	}
	return fmt.Sprintf("%s-%s.xlsx", strings.ReplaceAll(table, string(filepath.Separator), "-"), t.Format("20060102-150405"))
}

// Save writes s to path in the format its extension names.
func Save(path string, s Sheet) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.ExportFailed(path, err)
	}
	switch format {
	case FormatTSV:
		_, err = io.WriteString(f, clipboard.FormatRows(s.Header, s.Rows))
	default:
		err = WriteXLSX(f, s)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return errors.ExportFailed(path, err)
	}
	return nil
}

// WriteXLSX writes s as a workbook with one sheet. The header row is bold
// and stays in view while scrolling.
func WriteXLSX(w io.Writer, s Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	name := SheetName(s.Name)
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return err
	}

	row := 1
	if len(s.Header) > 0 {
		if err := f.SetSheetRow(name, "A1", &s.Header); err != nil {
			return err
		}
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(len(s.Header), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(name, "A1", last, bold); err != nil {
			return err
		}
		if err := f.SetPanes(name, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return err
		}
		row++
	}

	for _, r := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &r); err != nil {
			return err
		}
		row++
	}

	for i, width := range s.Widths {
		if width <= 0 {
			continue
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(name, col, col, float64(width)); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

// SheetName makes name usable as a worksheet name: at most 31 characters
// and none of : \ / ? * [ ].
func SheetName(name string) string {
	name = sheetReplacer.Replace(strings.TrimSpace(name))
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	if name == "" {
		return "Rows"
	}
	return name
}

var sheetReplacer = strings.NewReplacer(
	":", "-", `\`, "-", "/", "-", "?", "", "*", "", "[", "(", "]", ")",
)
