package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"

	"github.com/zhubert/datagrid/internal/errors"
	"github.com/zhubert/datagrid/internal/layout"
)

// Row densities the table can render with.
const (
	DensityShort     = "short"
	DensityMedium    = "medium"
	DensityTall      = "tall"
	DensityExtraTall = "extra-tall"
)

var densities = []string{DensityShort, DensityMedium, DensityTall, DensityExtraTall}

// Config holds the application configuration
type Config struct {
	// Views are the persisted column layouts, keyed by table id.
	Views map[string]layout.State `json:"views,omitempty"`

	Theme                 string `json:"theme,omitempty"`                   // UI theme name (e.g., "dark-purple", "nord")
	SelectionMode         string `json:"selection_mode,omitempty"`          // "single" or "multiple"
	AllowMultipleExpanded bool   `json:"allow_multiple_expanded,omitempty"` // More than one expanded row at a time
	HistoryLimit          int    `json:"history_limit,omitempty"`           // Undo depth, 0 means the default
	PageSize              int    `json:"page_size,omitempty"`               // Rows per page, 0 means the default
	Direction             string `json:"direction,omitempty"`               // "ltr" or "rtl"
	Density               string `json:"density,omitempty"`                 // Row height
	Striped               bool   `json:"striped,omitempty"`                 // Alternate row shading
	LastSeenVersion       string `json:"last_seen_version,omitempty"`       // Last version user has seen changelog for

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".datagrid"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields an empty config
// that will be written to path on Save.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{
		Views:    make(map[string]layout.State),
		filePath: path,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.ViewLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.ViewLoadFailed(path, err)
	}

	// Must happen before Validate(), which only reads.
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureInitialized makes sure maps are non-nil after unmarshaling.
//
// Not thread-safe: only called from LoadFrom before the Config is shared.
func (c *Config) ensureInitialized() {
	if c.Views == nil {
		c.Views = make(map[string]layout.State)
	}
}

// Validate checks that the config is internally consistent.
// This is a read-only operation - call ensureInitialized() first if needed.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch c.SelectionMode {
	case "", "single", "multiple":
	default:
		return errors.ViewInvalid(fmt.Sprintf("unknown selection mode %q", c.SelectionMode))
	}
	switch c.Direction {
	case "", "ltr", "rtl":
	default:
		return errors.ViewInvalid(fmt.Sprintf("unknown direction %q", c.Direction))
	}
	if c.Density != "" && !slices.Contains(densities, c.Density) {
		return errors.ViewInvalid(fmt.Sprintf("unknown density %q", c.Density))
	}
	if c.HistoryLimit < 0 {
		return errors.ViewInvalid("history limit cannot be negative")
	}
	if c.PageSize < 0 {
		return errors.ViewInvalid("page size cannot be negative")
	}

	for table, view := range c.Views {
		if table == "" {
			return errors.ViewInvalid("view with empty table id found")
		}
		for _, id := range view.Pinning.Left {
			if slices.Contains(view.Pinning.Right, id) {
				return errors.ViewInvalid(fmt.Sprintf("view %s pins column %s on both sides", table, id))
			}
		}
		for id, w := range view.Widths {
			if w <= 0 {
				return errors.ViewInvalid(fmt.Sprintf("view %s has non-positive width for %s", table, id))
			}
		}
	}

	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	path := c.filePath
	if path == "" {
		var err error
		if path, err = configPath(); err != nil {
			return errors.ViewSaveFailed("config", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.ViewSaveFailed(path, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ViewSaveFailed(path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.ViewSaveFailed(path, err)
	}
	return nil
}

// Path returns the file the config is saved to.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// GetView returns a copy of the persisted view for table.
func (c *Config) GetView(table string) (layout.State, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.Views[table]
	if !ok {
		return layout.State{}, false
	}
	return v.Clone(), true
}

// SetView stores the view for table. It reports whether it differed from
// what was stored.
func (c *Config) SetView(table string, view layout.State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Views == nil {
		c.Views = make(map[string]layout.State)
	}
	if cur, ok := c.Views[table]; ok && cur.Equal(view) {
		return false
	}
	c.Views[table] = view.Clone()
	return true
}

// DeleteView removes the persisted view for table.
func (c *Config) DeleteView(table string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.Views[table]; !ok {
		return false
	}
	delete(c.Views, table)
	return true
}

// ViewTables returns the ids of tables with a persisted view, sorted.
func (c *Config) ViewTables() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tables := make([]string, 0, len(c.Views))
	for t := range c.Views {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	return tables
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetLastSeenVersion returns the last version the user has seen
func (c *Config) GetLastSeenVersion() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LastSeenVersion
}

// SetLastSeenVersion sets the last version the user has seen
func (c *Config) SetLastSeenVersion(version string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastSeenVersion = version
}

func (c *Config) GetSelectionMode() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SelectionMode
}

func (c *Config) SetSelectionMode(mode string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SelectionMode = mode
}

func (c *Config) GetAllowMultipleExpanded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AllowMultipleExpanded
}

func (c *Config) SetAllowMultipleExpanded(allow bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.AllowMultipleExpanded = allow
}

// GetHistoryLimit returns the undo depth; 0 means the default.
func (c *Config) GetHistoryLimit() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.HistoryLimit
}

// SetHistoryLimit sets the undo depth; 0 restores the default.
func (c *Config) SetHistoryLimit(limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.HistoryLimit = max(0, limit)
}

// GetPageSize returns the configured page size, or fallback when unset.
func (c *Config) GetPageSize(fallback int) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.PageSize > 0 {
		return c.PageSize
	}
	return fallback
}

func (c *Config) SetPageSize(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.PageSize = size
}

func (c *Config) GetDirection() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Direction
}

func (c *Config) SetDirection(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Direction = dir
}

// GetDensity returns the row density, defaulting to short.
func (c *Config) GetDensity() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Density == "" {
		return DensityShort
	}
	return c.Density
}

// SetDensity sets the row density. Unknown values are ignored.
func (c *Config) SetDensity(density string) {
	if !slices.Contains(densities, density) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Density = density
}

// CycleDensity advances to the next row density and returns it.
func (c *Config) CycleDensity() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur := c.Density
	if cur == "" {
		cur = DensityShort
	}
	i := slices.Index(densities, cur)
	c.Density = densities[(i+1)%len(densities)]
	return c.Density
}

func (c *Config) GetStriped() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Striped
}

func (c *Config) SetStriped(striped bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Striped = striped
}
