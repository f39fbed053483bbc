package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/datagrid/internal/app"
	"github.com/zhubert/datagrid/internal/clipboard"
	"github.com/zhubert/datagrid/internal/config"
	"github.com/zhubert/datagrid/internal/logger"
	"github.com/zhubert/datagrid/internal/resize"
	"github.com/zhubert/datagrid/internal/rowstate"
	"github.com/zhubert/datagrid/internal/source"
)

// demoTableID keys the persisted view of the generated dataset.
const demoTableID = "people"

var (
	debugMode             bool
	quietMode             bool
	configPath            string
	version, commit, date string
)

// gridFlags select the dataset and behaviour of the grid.
type gridFlags struct {
	file        string
	db          string
	dbTable     string
	table       string
	rows        int
	seed        int64
	exportDir   string
	pageSize    int
	selection   string
	multiExpand bool
	rtl         bool
	latency     time.Duration
}

var gridOpts gridFlags

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "datagrid",
	Short: "Terminal data grid with persistent column layouts",
	Long: `datagrid browses tabular data in the terminal. Columns can be resized,
pinned, hidden and reordered; rows can be selected, expanded and copied.

Column layouts are saved per table and restored on the next run. Rows come
from a YAML grid file (--file), a SQLite table (--db, --db-table) or, by
default, a generated demo dataset.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.datagrid/config.json)")

	addDatasetFlags(rootCmd, &gridOpts)
	f := rootCmd.Flags()
	f.StringVar(&gridOpts.exportDir, "export-dir", "", "Directory exported workbooks are written to (default: working directory)")
	f.IntVar(&gridOpts.pageSize, "page-size", 0, "Rows per page (default from config, else 20)")
	f.StringVar(&gridOpts.selection, "selection", "", `Row selection mode: "single" or "multiple"`)
	f.BoolVar(&gridOpts.multiExpand, "multi-expand", false, "Allow more than one expanded row")
	f.BoolVar(&gridOpts.rtl, "rtl", false, "Lay columns out right to left")
	f.DurationVar(&gridOpts.latency, "latency", 0, "Simulated fetch latency for in-memory rows, e.g. 300ms")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("datagrid %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("datagrid %s\n", version)
}

// loadConfig reads --config, or the default config file.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	opts, err := buildOptions(cmd, cfg, gridOpts)
	if err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	if err := clipboard.Init(); err != nil {
		logger.WithComponent("cmd").Warn("clipboard unavailable", "error", err)
	}

	defer closeProvider(opts.Provider)

	m := app.New(cfg, opts)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

// buildOptions turns the flags, the dataset and the config into app
// options. Flags that were set win over the grid file, which wins over the
// config. The provider may hold a database open; see closeProvider.
func buildOptions(cmd *cobra.Command, cfg *config.Config, fl gridFlags) (app.Options, error) {
	changed := func(name string) bool {
		return cmd != nil && cmd.Flags().Changed(name)
	}

	ds, err := openDataset(context.Background(), fl)
	if err != nil {
		return app.Options{}, err
	}

	opts := app.Options{
		TableID:     ds.tableID,
		Title:       ds.title,
		Columns:     ds.columns,
		InitialView: ds.initialView,
		PageSize:    ds.pageSize,
		Provider:    ds.provider,
		RowID:       ds.rowID,
		ExportDir:   fl.exportDir,
		Version:     version,
	}

	selection := cfg.GetSelectionMode()
	if ds.selection != "" {
		selection = ds.selection
	}
	multiExpand := cfg.GetAllowMultipleExpanded()
	if ds.singleExpand {
		multiExpand = false
	}

	if fl.pageSize > 0 {
		opts.PageSize = fl.pageSize
	}
	if fl.selection != "" {
		selection = fl.selection
	}
	if changed("multi-expand") || fl.multiExpand {
		multiExpand = fl.multiExpand
	}

	if selection != "" {
		mode, err := rowstate.ParseMode(selection)
		if err != nil {
			closeProvider(opts.Provider)
			return app.Options{}, err
		}
		opts.SelectionMode = mode
	}
	opts.AllowMultipleExpanded = multiExpand

	opts.Direction = resize.ParseDirection(cfg.GetDirection())
	if changed("rtl") || fl.rtl {
		opts.Direction = resize.LeftToRight
		if fl.rtl {
			opts.Direction = resize.RightToLeft
		}
	}
	return opts, nil
}

// closeProvider releases a provider that holds resources.
func closeProvider(p source.Provider) {
	if c, ok := p.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.WithComponent("cmd").Warn("failed to close data source", "error", err)
		}
	}
}
