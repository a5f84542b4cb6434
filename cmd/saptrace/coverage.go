// Coverage command prints L3 readiness snapshots.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/internal/coverage"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/internal/hierarchy"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/pkg/types"
)

var coverageL3 string

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Show readiness snapshots per L3 process",
	Long: `Coverage rolls up requirement coverage, process step coverage, and the
pass rate for every L3 process of the program, or for one process with
--l3.

Example:
  saptrace coverage --program ACME-S4
  saptrace coverage --program ACME-S4 --l3 L3-SO --json`,
	Args: cobra.NoArgs,
	RunE: runCoverage,
}

func init() {
	coverageCmd.Flags().StringVar(&coverageL3, "l3", "", "restrict to one L3 process ID")
}

func runCoverage(cmd *cobra.Command, args []string) error {
	programID, err := requireProgram()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	nodes, err := store.Nodes(ctx, programID)
	if err != nil {
		return fmt.Errorf("fetch nodes: %w", err)
	}
	cat, err := store.Catalog(ctx, programID)
	if err != nil {
		return fmt.Errorf("fetch catalog: %w", err)
	}
	cases, err := store.TestCases(ctx, programID)
	if err != nil {
		return fmt.Errorf("fetch test cases: %w", err)
	}
	exec, err := store.ExecutionResults(ctx, programID)
	if err != nil {
		return fmt.Errorf("fetch executions: %w", err)
	}

	agg := coverage.NewAggregator(hierarchy.NewIndex(nodes), cat)

	var snaps []types.CoverageSnapshot
	if coverageL3 != "" {
		found := false
		for _, n := range agg.L3Nodes() {
			if n.ID == coverageL3 {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown L3 process %q", coverageL3)
		}
		snaps = []types.CoverageSnapshot{agg.Snapshot(coverageL3, cases, exec)}
	} else {
		snaps = agg.Snapshots(cases, exec)
	}

	if flagJSON {
		return printJSON(snaps)
	}
	printCoverageTable(snaps)
	return nil
}

// printCoverageTable prints snapshots in a human-readable table.
func printCoverageTable(snaps []types.CoverageSnapshot) {
	if len(snaps) == 0 {
		fmt.Println("No L3 processes found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "L3\tCASES\tREQ COVERAGE\tSTEP COVERAGE\tPASS RATE\tREADINESS")
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%d\t%d/%d (%.0f%%)\t%d/%d (%.0f%%)\t%.1f%%\t%s\n",
			s.L3ID,
			s.TotalTestCases,
			s.RequirementCoverage.Covered, s.RequirementCoverage.Total, s.RequirementCoverage.Percent(),
			s.ProcessStepCoverage.Covered, s.ProcessStepCoverage.Total, s.ProcessStepCoverage.Percent(),
			s.PassRate,
			s.Readiness,
		)
	}
	w.Flush()
}
