// Derive command prints the server-computed trace summary for a test case.
package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/pkg/types"
)

var deriveCmd = &cobra.Command{
	Use:   "derive <test-case-id>",
	Short: "Show effective traceability for a test case",
	Long: `Derive recomputes the effective requirement, WRICEF, and configuration
membership for every trace group of the test case. Exclusions keep their
membership and are listed as not covered.

Example:
  saptrace derive 0195c9a2-...
  saptrace derive 0195c9a2-... --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		summary, err := store.DerivedSummary(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("derive: %w", err)
		}

		if flagJSON {
			return printJSON(summary)
		}
		printSummaryTable(summary)
		return nil
	},
}

// printSummaryTable prints the derived summary in a human-readable table.
func printSummaryTable(summary *types.DerivedSummary) {
	if len(summary.Groups) == 0 {
		fmt.Println("No trace groups.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "L3\tREQUIREMENTS\tWRICEF\tCONFIG\tNOT COVERED")
	for _, g := range summary.Groups {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			g.L3ID,
			strings.Join(g.EffectiveRequirementIDs, ","),
			strings.Join(g.EffectiveWricefIDs, ","),
			strings.Join(g.EffectiveConfigIDs, ","),
			strings.Join(g.NotCoveredIDs, ","),
		)
	}
	w.Flush()
}
