// Package source provides row providers that answer the table's page, sort
// and search requests. The table itself never fetches rows.
package source

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhubert/datagrid/internal/grid"
	"github.com/zhubert/datagrid/internal/logger"
)

// Record is one row of loosely typed data, keyed by column id.
type Record = map[string]any

// Query selects one page of rows.
type Query struct {
	Page          int // 1-based
	PageSize      int
	SortColumn    string
	SortDirection grid.SortDirection
	Search        string
}

// Result is one fetched page.
type Result struct {
	Query      Query
	Rows       []Record
	TotalCount int
}

// Provider fetches pages of rows.
type Provider interface {
	Fetch(ctx context.Context, q Query) (Result, error)
}

// Memory serves rows held in memory, filtering, sorting and paging them the
// way a remote endpoint would.
type Memory struct {
	mu      sync.RWMutex
	rows    []Record
	idKey   string
	latency time.Duration
	log     *slog.Logger
}

// NewMemory wraps rows. Rows without a value under idKey are assigned a
// random UUID so every row has a stable identity.
func NewMemory(rows []Record, idKey string) *Memory {
	if idKey == "" {
		idKey = "id"
	}
	log := logger.WithComponent("source")
	assigned := 0
	for _, r := range rows {
		if v, ok := r[idKey]; !ok || v == nil || fmt.Sprint(v) == "" {
			r[idKey] = uuid.NewString()
			assigned++
		}
	}
	if assigned > 0 {
		log.Debug("assigned row ids", "count", assigned, "key", idKey)
	}
	return &Memory{rows: rows, idKey: idKey, log: log}
}

// WithLatency delays every fetch by d, honouring cancellation.
func (m *Memory) WithLatency(d time.Duration) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latency = d
	return m
}

// IDKey returns the record key that holds the row id.
func (m *Memory) IDKey() string { return m.idKey }

// RowID extracts the id of a record. It is suitable as a grid row id function.
func (m *Memory) RowID(r Record) (string, error) {
	v, ok := r[m.idKey]
	if !ok || v == nil {
		return "", fmt.Errorf("record has no %q field", m.idKey)
	}
	return fmt.Sprint(v), nil
}

// Len returns the number of rows before filtering.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows)
}

// Fetch returns the requested page. A page past the end yields no rows and
// the real total.
func (m *Memory) Fetch(ctx context.Context, q Query) (Result, error) {
	m.mu.RLock()
	latency := m.latency
	rows := slices.Clone(m.rows)
	m.mu.RUnlock()

	if latency > 0 {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-time.After(latency):
		}
	} else if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if q.Search != "" {
		rows = filter(rows, q.Search)
	}
	if q.SortColumn != "" && q.SortDirection != grid.SortNone {
		sortRows(rows, q.SortColumn, q.SortDirection == grid.SortDesc)
	}

	total := len(rows)
	page := paginate(rows, q.Page, q.PageSize)
	m.log.Debug("fetched page",
		"page", q.Page, "size", q.PageSize,
		"sort", q.SortColumn, "dir", q.SortDirection.String(),
		"search", q.Search, "rows", len(page), "total", total)

	return Result{Query: q, Rows: page, TotalCount: total}, nil
}

// filter keeps rows where any value contains query, case-insensitively.
func filter(rows []Record, query string) []Record {
	needle := strings.ToLower(query)
	out := rows[:0]
	for _, r := range rows {
		for _, v := range r {
			if v != nil && strings.Contains(strings.ToLower(fmt.Sprint(v)), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func sortRows(rows []Record, col string, desc bool) {
	slices.SortStableFunc(rows, func(a, b Record) int {
		c := compareValues(a[col], b[col])
		if desc {
			return -c
		}
		return c
	})
}

// compareValues orders nil first, then numbers numerically, then everything
// else by its text.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if fa, ok := number(a); ok {
		if fb, ok := number(b); ok {
			return cmp.Compare(fa, fb)
		}
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}
	return cmp.Compare(strings.ToLower(fmt.Sprint(a)), strings.ToLower(fmt.Sprint(b)))
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func paginate(rows []Record, page, size int) []Record {
	if size <= 0 {
		return rows
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(rows) {
		return []Record{}
	}
	end := min(start+size, len(rows))
	return rows[start:end]
}
