// Package clipboard copies table content to the system clipboard.
package clipboard

import (
	"strings"
	"sync"

	"golang.design/x/clipboard"

	"github.com/zhubert/datagrid/internal/errors"
	"github.com/zhubert/datagrid/internal/logger"
)

// System clipboard hooks, replaced in tests.
var (
	initFn  = clipboard.Init
	writeFn = func(b []byte) { clipboard.Write(clipboard.FmtText, b) }
	readFn  = func() []byte { return clipboard.Read(clipboard.FmtText) }
)

var (
	mu          sync.Mutex
	initialized bool
)

// Init initializes the clipboard. It is safe to call multiple times; a
// failed attempt is retried on the next call.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked()
}

func initLocked() error {
	if initialized {
		return nil
	}
	log := logger.WithComponent("clipboard")
	if err := initFn(); err != nil {
		log.Warn("failed to initialize", "error", err)
		return errors.ClipboardUnavailable(err)
	}
	initialized = true
	log.Debug("initialized")
	return nil
}

// WriteText writes text to the clipboard.
func WriteText(text string) error {
	mu.Lock()
	defer mu.Unlock()
	if err := initLocked(); err != nil {
		return err
	}
	writeFn([]byte(text))
	logger.WithComponent("clipboard").Debug("wrote text", "bytes", len(text))
	return nil
}

// ReadText reads text from the clipboard. An empty clipboard is not an error.
func ReadText() (string, error) {
	mu.Lock()
	defer mu.Unlock()
	if err := initLocked(); err != nil {
		return "", err
	}
	return string(readFn()), nil
}

// FormatRows renders a header and rows as tab-separated lines, the format
// spreadsheets accept on paste. Tabs and newlines inside cells become spaces.
func FormatRows(header []string, rows [][]string) string {
	var b strings.Builder
	writeLine := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(cellReplacer.Replace(c))
		}
		b.WriteByte('\n')
	}
	if len(header) > 0 {
		writeLine(header)
	}
	for _, r := range rows {
		writeLine(r)
	}
	return b.String()
}

var cellReplacer = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")
