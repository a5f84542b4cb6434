// Export command writes a program back out as a JSONL extract.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Export a program as JSONL extracts",
	Long: `Export writes the program's process nodes, catalog, test cases with
their selections, and execution tallies to the given directory in the
same JSONL layout that import reads.

Example:
  saptrace export ./backup --program ACME-S4`,
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

		if err := store.ExportProgram(cmd.Context(), programID, args[0]); err != nil {
			return fmt.Errorf("export program: %w", err)
		}
		fmt.Printf("Exported program %s to %s\n", programID, args[0])
		return nil
	},
}
