// Import command loads JSONL extracts into a program.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import JSONL extracts for a program",
	Long: `Import reads process_nodes.jsonl, requirements.jsonl, wricef_items.jsonl,
config_items.jsonl, test_cases.jsonl, and executions.jsonl from the given
directory and loads them into the program. Missing files are skipped;
malformed lines are counted and skipped.

Example:
  saptrace import ./extracts --program ACME-S4`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		programID, err := requireProgram()
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		stats, err := store.ImportProgram(cmd.Context(), programID, args[0])
		if err != nil {
			return fmt.Errorf("import program: %w", err)
		}

		logger.Info("import complete",
			zap.String("program", programID),
			zap.Int("skipped", stats.Skipped),
		)

		if flagJSON {
			return printJSON(stats)
		}
		fmt.Printf("Imported into program %s:\n", programID)
		fmt.Printf("  nodes:         %d\n", stats.Nodes)
		fmt.Printf("  requirements:  %d\n", stats.Requirements)
		fmt.Printf("  wricef items:  %d\n", stats.WricefItems)
		fmt.Printf("  config items:  %d\n", stats.ConfigItems)
		fmt.Printf("  test cases:    %d\n", stats.TestCases)
		fmt.Printf("  executions:    %d\n", stats.Executions)
		if stats.Skipped > 0 {
			fmt.Printf("  skipped lines: %d\n", stats.Skipped)
		}
		return nil
	},
}
