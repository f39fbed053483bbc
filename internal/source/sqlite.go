package source

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/zhubert/datagrid/internal/errors"
	"github.com/zhubert/datagrid/internal/grid"
	"github.com/zhubert/datagrid/internal/layout"
	"github.com/zhubert/datagrid/internal/logger"
)

// RowIDColumn is the record key that carries SQLite's rowid for tables
// without a single-column primary key.
const RowIDColumn = "_rowid"

// SQLite serves rows from one table or view of a SQLite database. Search,
// sort and paging are done by the database.
type SQLite struct {
	db      *sql.DB
	table   string
	columns []sqlColumn
	idKey   string
	log     *slog.Logger
}

type sqlColumn struct {
	name     string
	declType string
}

// OpenSQLite opens the database at path without write access and describes
// table. Views have no rowid, so their rows get positional ids in the grid
// unless they expose a primary key.
func OpenSQLite(ctx context.Context, path, table string) (*SQLite, error) {
	dsn := path +
		"?_pragma=query_only(1)" +
		"&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.SourceOpenFailed(path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.SourceOpenFailed(path, err)
	}

	var kind string
	err = db.QueryRowContext(ctx,
		"SELECT type FROM sqlite_master WHERE type IN ('table', 'view') AND name = ?", table).Scan(&kind)
	if err == sql.ErrNoRows {
		db.Close()
		return nil, errors.SourceTableNotFound(table)
	} else if err != nil {
		db.Close()
		return nil, errors.SourceOpenFailed(path, err)
	}

	s := &SQLite{db: db, table: table, log: logger.WithComponent("source")}
	pk, err := s.describe(ctx)
	if err != nil {
		db.Close()
		return nil, errors.SourceQueryFailed(table, err)
	}
	switch {
	case len(pk) == 1:
		s.idKey = pk[0]
	case kind == "table":
		s.idKey = RowIDColumn
	}

	s.log.Debug("opened sqlite source",
		"path", path, "table", table, "kind", kind,
		"columns", len(s.columns), "idKey", s.idKey)
	return s, nil
}

// describe reads the column list and returns the primary key columns.
func (s *SQLite) describe(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "PRAGMA table_info("+quoteIdent(s.table)+")")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pk []string
	for rows.Next() {
		var (
			cid, notNull, pkIndex int
			name, declType        string
			dflt                  sql.NullString
		)
		if err := rows.Scan(&cid, &name, &declType, &notNull, &dflt, &pkIndex); err != nil {
			return nil, err
		}
		s.columns = append(s.columns, sqlColumn{name: name, declType: strings.ToUpper(declType)})
		if pkIndex > 0 {
			pk = append(pk, name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(s.columns) == 0 {
		return nil, fmt.Errorf("table %s has no columns", s.table)
	}
	return pk, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Table returns the table or view the rows come from.
func (s *SQLite) Table() string { return s.table }

// IDKey returns the record key that holds the row id, or "" for views
// without a primary key.
func (s *SQLite) IDKey() string { return s.idKey }

// RowID extracts the id of a record. It fails for rows of views without a
// primary key.
func (s *SQLite) RowID(r Record) (string, error) {
	if s.idKey == "" {
		return "", fmt.Errorf("%s has no row identity", s.table)
	}
	v, ok := r[s.idKey]
	if !ok || v == nil {
		return "", fmt.Errorf("record has no %q field", s.idKey)
	}
	return fmt.Sprint(v), nil
}

// Columns describes the table's columns. Default widths follow the declared
// type.
func (s *SQLite) Columns() []layout.Descriptor {
	descs := make([]layout.Descriptor, len(s.columns))
	for i, c := range s.columns {
		descs[i] = layout.Descriptor{ID: c.name, Size: sizeForType(c.declType)}
	}
	return descs
}

func sizeForType(declType string) int {
	switch {
	case strings.Contains(declType, "INT"):
		return 100
	case strings.Contains(declType, "REAL"), strings.Contains(declType, "FLOA"),
		strings.Contains(declType, "DOUB"), strings.Contains(declType, "NUM"):
		return 120
	case strings.Contains(declType, "DATE"), strings.Contains(declType, "TIME"):
		return 200
	case strings.Contains(declType, "BLOB"):
		return 80
	default:
		return 200
	}
}

func (s *SQLite) hasColumn(name string) bool {
	for _, c := range s.columns {
		if c.name == name {
			return true
		}
	}
	return false
}

// Fetch returns the requested page. Sorting on an unknown column is ignored.
func (s *SQLite) Fetch(ctx context.Context, q Query) (Result, error) {
	from := " FROM " + quoteIdent(s.table)
	where, args := s.where(q.Search)

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT count(*)"+from+where, args...).Scan(&total); err != nil {
		return Result{}, errors.SourceQueryFailed(s.table, err)
	}

	query := "SELECT " + s.selectList() + from + where + s.orderBy(q)
	if q.PageSize > 0 {
		page := max(q.Page, 1)
		query += " LIMIT ? OFFSET ?"
		args = append(args, q.PageSize, (page-1)*q.PageSize)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return Result{}, errors.SourceQueryFailed(s.table, err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return Result{}, errors.SourceQueryFailed(s.table, err)
	}

	s.log.Debug("fetched page",
		"table", s.table,
		"page", q.Page, "size", q.PageSize,
		"sort", q.SortColumn, "dir", q.SortDirection.String(),
		"search", q.Search, "rows", len(records), "total", total)

	return Result{Query: q, Rows: records, TotalCount: total}, nil
}

func (s *SQLite) selectList() string {
	if s.idKey == RowIDColumn {
		return "rowid AS " + quoteIdent(RowIDColumn) + ", *"
	}
	return "*"
}

// where matches search against the text of every column, case-insensitively
// for ASCII as SQLite's LIKE does.
func (s *SQLite) where(search string) (string, []any) {
	if search == "" {
		return "", nil
	}
	pattern := "%" + likeEscaper.Replace(search) + "%"
	conds := make([]string, len(s.columns))
	args := make([]any, len(s.columns))
	for i, c := range s.columns {
		conds[i] = "CAST(" + quoteIdent(c.name) + " AS TEXT) LIKE ? ESCAPE '\\'"
		args[i] = pattern
	}
	return " WHERE " + strings.Join(conds, " OR "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// orderBy sorts text without regard to case. NULLs sort first ascending,
// like the in-memory source. Ties keep row id order.
func (s *SQLite) orderBy(q Query) string {
	if q.SortDirection == grid.SortNone || !s.hasColumn(q.SortColumn) {
		return ""
	}
	dir := " ASC"
	if q.SortDirection == grid.SortDesc {
		dir = " DESC"
	}
	clause := " ORDER BY " + quoteIdent(q.SortColumn) + " COLLATE NOCASE" + dir
	if s.idKey != "" && s.idKey != q.SortColumn {
		clause += ", " + quoteIdent(s.idKey)
	}
	return clause
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	out := []Record{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		r := make(Record, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				r[c] = string(b)
			} else {
				r[c] = vals[i]
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
