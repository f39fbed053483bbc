// Package errors provides structured error types for datagrid.
//
// The grid engine itself never returns errors: malformed input is inert.
// These types exist for the edges that touch the outside world (view
// persistence, grid definition files, the row-id extractor) so failures
// there carry the operation and a category.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindConfig
	KindRowID
	KindClipboard
	KindSource
	KindExport
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindConfig:
		return "configuration error"
	case KindRowID:
		return "row id error"
	case KindClipboard:
		return "clipboard error"
	case KindSource:
		return "data source error"
	case KindExport:
		return "export error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for datagrid.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// View persistence errors
func ViewLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load views from %s", path), err)
}

func ViewSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindIO, fmt.Sprintf("failed to save views to %s", path), err)
}

func ViewInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

func ViewNotFound(table string) error {
	return E(Op("config.View"), KindNotFound, fmt.Sprintf("no saved view for table %s", table))
}

// Grid definition errors
func GridFileFailed(path string, err error) error {
	return E(Op("config.LoadGridFile"), KindConfig, fmt.Sprintf("failed to read grid definition %s", path), err)
}

// Row identity errors. These are recovered inside the grid and only logged.
func RowIDFailed(index int, err error) error {
	return E(Op("grid.RowID"), KindRowID, fmt.Sprintf("row id extractor failed for row %d", index), err)
}

// Clipboard errors
func ClipboardUnavailable(err error) error {
	return E(Op("clipboard.Init"), KindClipboard, "system clipboard unavailable", err)
}

// Data source errors
func SourceOpenFailed(path string, err error) error {
	return E(Op("source.Open"), KindSource, fmt.Sprintf("failed to open database %s", path), err)
}

func SourceTableNotFound(table string) error {
	return E(Op("source.Open"), KindNotFound, fmt.Sprintf("no table or view named %s", table))
}

func SourceQueryFailed(table string, err error) error {
	return E(Op("source.Fetch"), KindSource, fmt.Sprintf("query on %s failed", table), err)
}

// Export errors
func ExportFailed(path string, err error) error {
	return E(Op("export.Write"), KindExport, fmt.Sprintf("failed to write %s", path), err)
}
