package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/datagrid/internal/config"
	"github.com/zhubert/datagrid/internal/logger"
)

var (
	skipConfirm bool
	cleanViews  bool
)

// clearLogs is swapped in tests so they never touch /tmp.
var clearLogs = logger.ClearLogs

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove log files and, optionally, every saved layout",
	Long: `Removes the datagrid log files in /tmp. With --views it also forgets the
saved column layout of every table.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		return runClean(os.Stdin, cmd.OutOrStdout(), cfg)
	},
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	cleanCmd.Flags().BoolVar(&cleanViews, "views", false, "Also remove saved column layouts")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(input io.Reader, w io.Writer, cfg *config.Config) error {
	var tables []string
	if cleanViews {
		tables = cfg.ViewTables()
	}

	fmt.Fprintln(w, "This will clean:")
	fmt.Fprintln(w, "  - All log files in /tmp")
	if len(tables) > 0 {
		fmt.Fprintf(w, "  - %d saved layout(s)\n", len(tables))
	}

	if !skipConfirm && !confirm(input, w, "Continue?") {
		fmt.Fprintln(w, "Aborted.")
		return nil
	}

	for _, t := range tables {
		cfg.DeleteView(t)
	}
	if len(tables) > 0 {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}
	}

	logsCleared, err := clearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Cleaned:")
	fmt.Fprintf(w, "  - %d log file(s) removed\n", logsCleared)
	if len(tables) > 0 {
		fmt.Fprintf(w, "  - %d saved layout(s) removed\n", len(tables))
	}
	return nil
}

func confirm(input io.Reader, w io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(w, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
