package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhubert/datagrid/internal/demo"
	"github.com/zhubert/datagrid/internal/demo/scenarios"
)

var (
	demoOutput      string
	demoWidth       int
	demoHeight      int
	demoCaptureAll  bool
	demoAnnotations bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Generate demo recordings of the grid",
	Long: `Generate demo recordings of the grid for documentation and presentations.

Scenarios run against the generated demo dataset with a throwaway config,
so they never touch your saved layouts.

Available subcommands:
  list      - List available demo scenarios
  run       - Run a scenario and print its frames (for testing)
  cast      - Generate an asciinema cast file`,
}

var demoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available demo scenarios",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		listScenarios(cmd.OutOrStdout())
	},
}

var demoRunCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Run a scenario and print its frames (for testing)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemoRun(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

var demoCastCmd = &cobra.Command{
	Use:   "cast <scenario>",
	Short: "Generate an asciinema cast file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemoCast(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func init() {
	// Add flags to subcommands that need them
	for _, cmd := range []*cobra.Command{demoRunCmd, demoCastCmd} {
		cmd.Flags().StringVarP(&demoOutput, "output", "o", "", "Output file")
		cmd.Flags().IntVarP(&demoWidth, "width", "w", 120, "Terminal width")
		cmd.Flags().IntVarP(&demoHeight, "height", "H", 40, "Terminal height")
		cmd.Flags().BoolVar(&demoCaptureAll, "capture-all", false, "Capture frame after every step (for debugging)")
	}
	demoCastCmd.Flags().BoolVar(&demoAnnotations, "annotations", false, "Print captions under annotated frames")

	demoCmd.AddCommand(demoListCmd)
	demoCmd.AddCommand(demoRunCmd)
	demoCmd.AddCommand(demoCastCmd)
	rootCmd.AddCommand(demoCmd)
}

func listScenarios(w io.Writer) {
	fmt.Fprintln(w, "Available demo scenarios:")
	fmt.Fprintln(w)
	for _, s := range scenarios.All() {
		fmt.Fprintf(w, "  %-15s %s\n", s.Name, s.Description)
	}
}

func getScenario(name string) (*demo.Scenario, error) {
	scenario := scenarios.Get(name)
	if scenario == nil {
		return nil, fmt.Errorf("unknown scenario %q\nRun 'datagrid demo list' to see available scenarios", name)
	}

	// Override dimensions if specified
	if demoWidth > 0 {
		scenario.Width = demoWidth
	}
	if demoHeight > 0 {
		scenario.Height = demoHeight
	}

	return scenario, nil
}

func executeScenario(ctx context.Context, scenario *demo.Scenario) ([]demo.Frame, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	execCfg := demo.DefaultExecutorConfig()
	execCfg.CaptureEveryStep = demoCaptureAll

	executor := demo.NewExecutor(execCfg)
	return executor.Run(ctx, scenario)
}

func runDemoRun(ctx context.Context, w io.Writer, name string) error {
	scenario, err := getScenario(name)
	if err != nil {
		return err
	}

	frames, err := executeScenario(ctx, scenario)
	if err != nil {
		return fmt.Errorf("error running scenario: %w", err)
	}

	if demoOutput != "" {
		f, err := os.Create(demoOutput)
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	// Print frames for testing
	fmt.Fprintf(w, "Captured %d frames\n", len(frames))
	for i, f := range frames {
		fmt.Fprintf(w, "\n=== Frame %d (delay: %v) ===\n", i, f.Delay)
		if f.Annotation != "" {
			fmt.Fprintf(w, "Annotation: %s\n", f.Annotation)
		}
		fmt.Fprintln(w, f.Content)
	}

	return nil
}

func runDemoCast(ctx context.Context, w io.Writer, name string) error {
	scenario, err := getScenario(name)
	if err != nil {
		return err
	}

	frames, err := executeScenario(ctx, scenario)
	if err != nil {
		return fmt.Errorf("error running scenario: %w", err)
	}

	// Determine output file
	outputFile := demoOutput
	if outputFile == "" {
		outputFile = name + ".cast"
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer f.Close()

	opts := demo.CastOptions{
		Title:           "datagrid: " + scenario.Description,
		Timestamp:       time.Now(),
		ShowAnnotations: demoAnnotations,
	}
	if err := demo.GenerateASCIICast(f, frames, scenario.Width, scenario.Height, opts); err != nil {
		return fmt.Errorf("error generating cast file: %w", err)
	}

	fmt.Fprintf(w, "Generated %s (%d frames)\n", outputFile, len(frames))
	fmt.Fprintf(w, "Play with: asciinema play %s\n", outputFile)

	return nil
}
