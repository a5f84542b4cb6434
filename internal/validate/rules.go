// Package validate is the pre-persistence gate for test cases. It is not a
// lifecycle state machine: one pass over the rule table either clears the
// save or returns every violation at once, and no partial save is
// attempted.
package validate

import (
	"fmt"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/pkg/types"
)

// layersRequiringScope lists the test layers that require at least one
// trace group before a save is accepted.
var layersRequiringScope = map[string]bool{
	types.LayerUnit: true,
	types.LayerSIT:  true,
	types.LayerUAT:  true,
}

// TestCase runs the full rule table against tc. Returns nil when the save
// may proceed, otherwise every violation found.
func TestCase(tc *types.TestCase) types.ValidationErrors {
	var errs types.ValidationErrors

	if !types.ValidTestLayer(tc.TestLayer) {
		errs = append(errs, types.ValidationError{
			Field:   "test_layer",
			Message: fmt.Sprintf("unrecognized test layer %q", tc.TestLayer),
		})
		return errs
	}

	errs = append(errs, scopeRule(tc)...)
	errs = append(errs, sitRule(tc)...)
	errs = append(errs, uniqueL3Rule(tc)...)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// scopeRule: unit, SIT, and UAT test cases must carry at least one trace
// group with an L3 scope.
func scopeRule(tc *types.TestCase) types.ValidationErrors {
	if !layersRequiringScope[tc.TestLayer] {
		return nil
	}
	for _, g := range tc.Groups {
		if g.L3ID != "" {
			return nil
		}
	}
	return types.ValidationErrors{{
		Field:   "groups",
		Message: fmt.Sprintf("%s test cases require at least one process scope", tc.TestLayer),
	}}
}

// sitRule: SIT test cases additionally require module, risk, and either a
// linked data set or a data-readiness note.
func sitRule(tc *types.TestCase) types.ValidationErrors {
	if tc.TestLayer != types.LayerSIT {
		return nil
	}
	var errs types.ValidationErrors
	if tc.Module == "" {
		errs = append(errs, types.ValidationError{
			Field:   "module",
			Message: "module is required for SIT test cases",
		})
	}
	if tc.Risk == "" {
		errs = append(errs, types.ValidationError{
			Field:   "risk",
			Message: "risk is required for SIT test cases",
		})
	}
	if tc.LinkedDataSet == "" && tc.DataReadinessNote == "" {
		errs = append(errs, types.ValidationError{
			Field:   "linked_data_set",
			Message: "SIT test cases require a linked data set or a data-readiness note",
		})
	}
	return errs
}

// uniqueL3Rule: trace group L3 scopes must be unique within the test case,
// whatever the layer.
func uniqueL3Rule(tc *types.TestCase) types.ValidationErrors {
	seen := types.NewIDSet()
	var errs types.ValidationErrors
	for _, g := range tc.Groups {
		if seen.Has(g.L3ID) {
			errs = append(errs, types.ValidationError{
				Field:   "groups",
				Message: fmt.Sprintf("duplicate trace group for process %s", g.L3ID),
			})
			continue
		}
		seen.Add(g.L3ID)
	}
	return errs
}
