// Cases command lists a program's test cases.
package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/pkg/types"
)

var casesLayer string

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "List test cases for a program",
	Long: `Cases fetches a program's test cases and displays them with their
scoped L3 processes.

Example:
  saptrace cases --program ACME-S4
  saptrace cases --program ACME-S4 --layer sit
  saptrace cases --program ACME-S4 --json`,
	Args: cobra.NoArgs,
	RunE: runCases,
}

func init() {
	casesCmd.Flags().StringVar(&casesLayer, "layer", "", "filter by test layer (unit, sit, uat, ...)")
}

func runCases(cmd *cobra.Command, args []string) error {
	programID, err := requireProgram()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	cases, err := store.TestCases(cmd.Context(), programID)
	if err != nil {
		return fmt.Errorf("fetch test cases: %w", err)
	}

	if casesLayer != "" {
		filtered := cases[:0]
		for _, tc := range cases {
			if tc.TestLayer == casesLayer {
				filtered = append(filtered, tc)
			}
		}
		cases = filtered
	}

	if flagJSON {
		return printJSON(cases)
	}
	printCaseTable(cases)
	return nil
}

// printCaseTable prints test cases in a human-readable table format.
func printCaseTable(cases []*types.TestCase) {
	if len(cases) == 0 {
		fmt.Println("No test cases found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tCODE\tTITLE\tLAYER\tSCOPES")
	for _, tc := range cases {
		title := tc.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		shortID := tc.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		scopes := make([]string, 0, len(tc.Groups))
		for _, g := range tc.Groups {
			scopes = append(scopes, g.L3ID)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			shortID, tc.Code, title, tc.TestLayer, strings.Join(scopes, ","))
	}
	w.Flush()

	fmt.Printf("Total: %d test case(s)\n", len(cases))
}
