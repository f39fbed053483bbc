package app

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/datagrid/internal/ui"
)

// ErrorFlashDuration keeps failures on screen longer than other flashes.
const ErrorFlashDuration = 6 * time.Second

// ShowFlash displays a flash message in the footer and returns a command to start the auto-dismiss timer
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	d := ui.DefaultFlashDuration
	if flashType == ui.FlashError {
		d = ErrorFlashDuration
	}
	m.footer.SetFlashWithDuration(text, flashType, d)
	return ui.FlashTick()
}

// ShowFlashError displays an error flash message
func (m *Model) ShowFlashError(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashError)
}

// ShowFlashWarning displays a warning flash message
func (m *Model) ShowFlashWarning(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashWarning)
}

// ShowFlashInfo displays an info flash message
func (m *Model) ShowFlashInfo(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashInfo)
}

// ShowFlashSuccess displays a success flash message
func (m *Model) ShowFlashSuccess(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashSuccess)
}

// flashSetting announces a view preference that just changed.
func (m *Model) flashSetting(name, value string) tea.Cmd {
	return m.ShowFlashInfo(name + ": " + value)
}

// flashRowsResult reports a copy or export of n rows. verb is the past tense
// shown on success ("Copied"); failures are shown as "<action> failed".
func (m *Model) flashRowsResult(action, verb string, n int, dest string, err error) tea.Cmd {
	if err != nil {
		m.log.Warn(action+" failed", "rows", n, "error", err)
		return m.ShowFlashError(fmt.Sprintf("%s failed: %v", action, err))
	}
	text := verb + " " + rowCount(n)
	if dest != "" {
		text += " to " + dest
	}
	return m.ShowFlashSuccess(text)
}

func rowCount(n int) string {
	if n == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%d rows", n)
}
