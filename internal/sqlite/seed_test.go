package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/internal/coverage"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/internal/hierarchy"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/pkg/types"
)

func TestSeedDemoProgram(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.SeedDemoProgram(ctx))

	nodes, err := s.Nodes(ctx, DemoProgramID)
	require.NoError(t, err)
	assert.Len(t, nodes, 7)

	cat, err := s.Catalog(ctx, DemoProgramID)
	require.NoError(t, err)
	assert.Len(t, cat.Requirements, 4)
	assert.Len(t, cat.WricefItems, 2)
	assert.Len(t, cat.ConfigItems, 2)

	cases, err := s.TestCases(ctx, DemoProgramID)
	require.NoError(t, err)
	require.Len(t, cases, 2)
}

func TestSeededSnapshotEndToEnd(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.SeedDemoProgram(ctx))

	nodes, err := s.Nodes(ctx, DemoProgramID)
	require.NoError(t, err)
	cat, err := s.Catalog(ctx, DemoProgramID)
	require.NoError(t, err)
	cases, err := s.TestCases(ctx, DemoProgramID)
	require.NoError(t, err)
	exec, err := s.ExecutionResults(ctx, DemoProgramID)
	require.NoError(t, err)

	agg := coverage.NewAggregator(hierarchy.NewIndex(nodes), cat)

	// TC-001 scopes both steps of L3-SO and passed all runs; the demo
	// threshold is 95.
	snap := agg.Snapshot("L3-SO", cases, exec)
	assert.Equal(t, 1, snap.TotalTestCases)
	assert.Equal(t, types.CoverageRatio{Covered: 3, Total: 3}, snap.RequirementCoverage)
	assert.Equal(t, types.CoverageRatio{Covered: 2, Total: 2}, snap.ProcessStepCoverage)
	assert.Equal(t, types.ReadinessReady, snap.Readiness)

	// TC-002 covers L3-CR but only 3 of 4 runs passed.
	snap = agg.Snapshot("L3-CR", cases, exec)
	assert.Equal(t, types.CoverageRatio{Covered: 1, Total: 1}, snap.RequirementCoverage)
	assert.InDelta(t, 75, snap.PassRate, 1e-9)
	assert.Equal(t, types.ReadinessNotReady, snap.Readiness)
}
