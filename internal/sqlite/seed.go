// Demo program seeding for first-run exploration.
package sqlite

import (
	"context"
	"fmt"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/pkg/types"
)

// DemoProgramID is the program seeded by SeedDemoProgram.
const DemoProgramID = "DEMO"

// SeedDemoProgram loads a small order-to-cash slice: one value chain, two
// L3 processes with steps, a handful of requirements with WRICEF and
// config dependents, and two scoped test cases with executions.
func (s *Store) SeedDemoProgram(ctx context.Context) error {
	if err := s.SaveProgram(ctx, DemoProgramID, "S/4HANA Demo Transformation", 95); err != nil {
		return err
	}

	nodes := []types.ProcessNode{
		{ID: "L1-OTC", Level: 1, Code: "OTC", Name: "Order to Cash"},
		{ID: "L2-SLS", Level: 2, ParentID: "L1-OTC", Code: "OTC-01", Name: "Sales Order Management"},
		{ID: "L3-SO", Level: 3, ParentID: "L2-SLS", Code: "OTC-01-01", Name: "Create Sales Order"},
		{ID: "L4-SO-HDR", Level: 4, ParentID: "L3-SO", Code: "OTC-01-01-01", Name: "Enter Order Header"},
		{ID: "L4-SO-ITM", Level: 4, ParentID: "L3-SO", Code: "OTC-01-01-02", Name: "Enter Order Items"},
		{ID: "L3-CR", Level: 3, ParentID: "L2-SLS", Code: "OTC-01-02", Name: "Check Credit Limit"},
		{ID: "L4-CR-RUN", Level: 4, ParentID: "L3-CR", Code: "OTC-01-02-01", Name: "Run Credit Check"},
	}
	if err := s.ReplaceNodes(ctx, DemoProgramID, nodes); err != nil {
		return fmt.Errorf("seeding nodes: %w", err)
	}

	cat := &types.Catalog{
		Requirements: []types.Requirement{
			{ID: "REQ-1", Code: "REQ-001", Title: "Standard order entry", ProcessAnchor: "L3-SO", FitStatus: types.FitStatusFit},
			{ID: "REQ-2", Code: "REQ-002", Title: "Custom pricing at item entry", ProcessAnchor: "L4-SO-ITM", FitStatus: types.FitStatusGap},
			{ID: "REQ-3", Code: "REQ-003", Title: "Order header text defaults", ProcessAnchor: "L4-SO-HDR", FitStatus: types.FitStatusPartial},
			{ID: "REQ-4", Code: "REQ-004", Title: "Credit exposure aggregation", ProcessAnchor: "L3-CR", FitStatus: types.FitStatusGap},
		},
		WricefItems: []types.WricefItem{
			{ID: "WRF-1", Code: "WRF-001", Title: "Pricing user exit", Category: types.WricefEnhancement, OriginatingRequirementID: "REQ-2"},
			{ID: "WRF-2", Code: "WRF-002", Title: "Credit exposure report", Category: types.WricefReport, OriginatingRequirementID: "REQ-4"},
		},
		ConfigItems: []types.ConfigItem{
			{ID: "CFG-1", Code: "CFG-001", Title: "Order type ZOR", OriginatingRequirementID: "REQ-1"},
			{ID: "CFG-2", Code: "CFG-002", Title: "Text determination procedure", OriginatingRequirementID: "REQ-3"},
		},
	}
	if err := s.ReplaceCatalog(ctx, DemoProgramID, cat); err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}

	soCase := &types.TestCase{
		Code: "TC-001", Title: "Create standard sales order",
		TestLayer: types.LayerSIT, Module: "SD", Risk: "high",
		LinkedDataSet: "DS-OTC-01",
	}
	soID, err := s.SaveTestCase(ctx, DemoProgramID, soCase)
	if err != nil {
		return fmt.Errorf("seeding test case: %w", err)
	}
	if err := s.SaveSelections(ctx, soID, []types.TraceSelection{{
		L3ID:  "L3-SO",
		L4IDs: []string{"L4-SO-HDR", "L4-SO-ITM"},
	}}); err != nil {
		return fmt.Errorf("seeding selections: %w", err)
	}
	if err := s.RecordExecution(ctx, DemoProgramID, types.ExecutionRecord{
		TestCaseID: soID, Runs: 12, Passed: 12,
	}); err != nil {
		return err
	}

	crCase := &types.TestCase{
		Code: "TC-002", Title: "Credit limit blocks order",
		TestLayer: types.LayerUnit,
	}
	crID, err := s.SaveTestCase(ctx, DemoProgramID, crCase)
	if err != nil {
		return fmt.Errorf("seeding test case: %w", err)
	}
	if err := s.SaveSelections(ctx, crID, []types.TraceSelection{{
		L3ID: "L3-CR",
	}}); err != nil {
		return fmt.Errorf("seeding selections: %w", err)
	}
	return s.RecordExecution(ctx, DemoProgramID, types.ExecutionRecord{
		TestCaseID: crID, Runs: 4, Passed: 3,
	})
}
