package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zhubert/datagrid/internal/config"
	"github.com/zhubert/datagrid/internal/errors"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Inspect or reset saved column layouts",
	Long: `Column layouts (visibility, widths, pinning and order) are saved per
table id whenever they change in the grid. These commands read and remove
them without starting the grid.`,
}

var viewListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tables with a saved layout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		return listViews(cmd.OutOrStdout(), cfg)
	},
}

var viewShowCmd = &cobra.Command{
	Use:   "show <table>",
	Short: "Print the saved layout of a table as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		return showView(cmd.OutOrStdout(), cfg, args[0])
	},
}

var viewResetCmd = &cobra.Command{
	Use:   "reset <table>",
	Short: "Forget the saved layout of a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		return resetView(cmd.OutOrStdout(), cfg, args[0])
	},
}

func init() {
	viewCmd.AddCommand(viewListCmd, viewShowCmd, viewResetCmd)
	rootCmd.AddCommand(viewCmd)
}

func listViews(w io.Writer, cfg *config.Config) error {
	tables := cfg.ViewTables()
	if len(tables) == 0 {
		fmt.Fprintln(w, "No saved layouts.")
		return nil
	}
	for _, t := range tables {
		fmt.Fprintln(w, t)
	}
	return nil
}

func showView(w io.Writer, cfg *config.Config, table string) error {
	st, ok := cfg.GetView(table)
	if !ok {
		return errors.ViewNotFound(table)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding layout: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func resetView(w io.Writer, cfg *config.Config, table string) error {
	if !cfg.DeleteView(table) {
		return errors.ViewNotFound(table)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}
	fmt.Fprintf(w, "Reset layout for %s.\n", table)
	return nil
}
