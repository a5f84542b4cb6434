// Validate command checks a test case against the readiness rules.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate <test-case-id>",
	Short: "Validate a test case against the layer rules",
	Long: `Validate applies the structural rules for the test case's layer: scope
requirements for unit, SIT, and UAT cases, the SIT module, risk, and test
data rules, and L3 uniqueness across trace groups.

Exits non-zero when findings exist.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		tc, err := store.TestCase(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("fetch test case: %w", err)
		}

		verrs := validate.TestCase(tc)
		if flagJSON {
			if err := printJSON(map[string]any{
				"test_case_id": tc.ID,
				"valid":        len(verrs) == 0,
				"errors":       verrs,
			}); err != nil {
				return err
			}
		} else if len(verrs) == 0 {
			fmt.Printf("%s: valid (%s)\n", tc.Code, tc.TestLayer)
		} else {
			fmt.Printf("%s: %d finding(s)\n", tc.Code, len(verrs))
			for _, ve := range verrs {
				fmt.Printf("  %s: %s\n", ve.Field, ve.Message)
			}
		}

		if len(verrs) > 0 {
			return fmt.Errorf("%d validation finding(s)", len(verrs))
		}
		return nil
	},
}
