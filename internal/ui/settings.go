package ui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// Densities lists the row densities in display order.
var Densities = []string{"short", "medium", "tall", "extra-tall"}

// HistoryLimitCharLimit caps the undo depth input.
const HistoryLimitCharLimit = 4

// Settings are the preferences edited in the settings modal. Selection mode
// and history limit only apply the next time a grid opens.
type Settings struct {
	Theme         string
	SelectionMode string
	PageSize      int
	HistoryLimit  int
	Density       string
	Striped       bool
	Direction     string
}

// SettingsState is the settings modal, a huh form bound to a copy of the
// current Settings.
type SettingsState struct {
	original Settings

	// Bound form values
	theme         string
	selectionMode string
	pageSize      int
	historyLimit  string
	density       string
	striped       bool
	direction     string

	form *huh.Form

	availableWidth int
}

func (*SettingsState) modalState() {}

// SetSize updates the available width for rendering content.
func (s *SettingsState) SetSize(width, height int) {
	s.availableWidth = width
	s.form.WithWidth(s.contentWidth())
}

func (s *SettingsState) contentWidth() int {
	if s.availableWidth > 0 {
		return s.availableWidth - 4
	}
	return ModalWidth - 10
}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *SettingsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Values returns the edited settings.
func (s *SettingsState) Values() (Settings, error) {
	limit, err := parseHistoryLimit(s.historyLimit)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Theme:         s.theme,
		SelectionMode: s.selectionMode,
		PageSize:      s.pageSize,
		HistoryLimit:  limit,
		Density:       s.density,
		Striped:       s.striped,
		Direction:     s.direction,
	}, nil
}

// Original returns the settings the modal was opened with.
func (s *SettingsState) Original() Settings { return s.original }

// parseHistoryLimit accepts a positive number, or an empty field for the
// default depth.
func parseHistoryLimit(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("history limit must be a positive number")
	}
	return n, nil
}

// NewSettingsState builds the settings form around cur, filling blank
// fields with their defaults. pageSizes lists the page sizes offered;
// cur.PageSize is added when it is not among them.
func NewSettingsState(cur Settings, pageSizes []int) *SettingsState {
	if cur.SelectionMode == "" {
		cur.SelectionMode = "multiple"
	}
	if cur.Density == "" {
		cur.Density = Densities[0]
	}
	if cur.Direction == "" {
		cur.Direction = "ltr"
	}
	s := &SettingsState{
		original:       cur,
		theme:          cur.Theme,
		selectionMode:  cur.SelectionMode,
		pageSize:       cur.PageSize,
		density:        cur.Density,
		striped:        cur.Striped,
		direction:      cur.Direction,
		availableWidth: ModalWidth - 6,
	}
	if cur.HistoryLimit > 0 {
		s.historyLimit = strconv.Itoa(cur.HistoryLimit)
	}

	themeOptions := make([]huh.Option[string], 0, len(ThemeNames()))
	for _, name := range ThemeNames() {
		themeOptions = append(themeOptions, huh.NewOption(GetTheme(name).Name, string(name)))
	}

	sizes := pageSizes
	if cur.PageSize > 0 && !slices.Contains(sizes, cur.PageSize) {
		sizes = append([]int{cur.PageSize}, sizes...)
	}
	sizeOptions := make([]huh.Option[int], len(sizes))
	for i, n := range sizes {
		sizeOptions[i] = huh.NewOption(strconv.Itoa(n)+" rows", n)
	}

	densityOptions := make([]huh.Option[string], len(Densities))
	for i, d := range Densities {
		densityOptions[i] = huh.NewOption(d, d)
	}

	appearance := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOptions...).
			Value(&s.theme),
		huh.NewSelect[string]().
			Title("Row density").
			Options(densityOptions...).
			Value(&s.density),
		huh.NewConfirm().
			Title("Striped rows").
			Affirmative("On").
			Negative("Off").
			Value(&s.striped),
		huh.NewSelect[string]().
			Title("Layout direction").
			Options(
				huh.NewOption("Left to right", "ltr"),
				huh.NewOption("Right to left", "rtl"),
			).
			Value(&s.direction),
	).Title("Appearance")

	behavior := huh.NewGroup(
		huh.NewSelect[int]().
			Title("Rows per page").
			Options(sizeOptions...).
			Value(&s.pageSize),
		huh.NewSelect[string]().
			Title("Row selection").
			Description("Applies the next time a grid opens").
			Options(
				huh.NewOption("Multiple rows", "multiple"),
				huh.NewOption("Single row", "single"),
			).
			Value(&s.selectionMode),
		huh.NewInput().
			Title("Undo history").
			Description("Gestures kept for ctrl+z; applies the next time a grid opens").
			Placeholder("default").
			CharLimit(HistoryLimitCharLimit).
			Validate(func(v string) error {
				_, err := parseHistoryLimit(v)
				return err
			}).
			Value(&s.historyLimit),
	).Title("Behavior")

	s.form = huh.NewForm(appearance, behavior).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(s.contentWidth()).
		WithLayout(huh.LayoutStack)
	initHuhForm(s.form)
	return s
}
