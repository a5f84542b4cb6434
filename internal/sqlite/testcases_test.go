package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/pkg/types"
)

// seededStore opens a store preloaded with the shared hierarchy and a
// small catalog under program P1.
func seededStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.ReplaceNodes(ctx, "P1", testNodes()))
	require.NoError(t, s.ReplaceCatalog(ctx, "P1", &types.Catalog{
		Requirements: []types.Requirement{
			{ID: "R1", Code: "REQ-001", Title: "Order entry", ProcessAnchor: "L3-100", FitStatus: types.FitStatusFit},
			{ID: "R2", Code: "REQ-002", Title: "Pricing", ProcessAnchor: "L4-110", FitStatus: types.FitStatusGap},
		},
		WricefItems: []types.WricefItem{
			{ID: "W1", Code: "WRF-001", Title: "Pricing exit", Category: types.WricefEnhancement, OriginatingRequirementID: "R2"},
		},
		ConfigItems: []types.ConfigItem{
			{ID: "C1", Code: "CFG-001", Title: "Order type", OriginatingRequirementID: "R1"},
		},
	}))
	return s
}

func TestSaveTestCaseGeneratesUUIDv7(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	tc := &types.TestCase{Code: "TC-001", Title: "Order flow", TestLayer: types.LayerSIT}
	id, err := s.SaveTestCase(ctx, "P1", tc)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, tc.ID)
	assert.False(t, tc.CreatedAt.IsZero())

	got, err := s.TestCase(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "TC-001", got.Code)
	assert.Equal(t, types.LayerSIT, got.TestLayer)
}

func TestSaveTestCaseUpdatesExisting(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	tc := &types.TestCase{Code: "TC-001", Title: "Order flow", TestLayer: types.LayerUnit}
	id, err := s.SaveTestCase(ctx, "P1", tc)
	require.NoError(t, err)

	tc.Title = "Order flow incl. pricing"
	id2, err := s.SaveTestCase(ctx, "P1", tc)
	require.NoError(t, err)
	assert.Equal(t, id, id2)

	got, err := s.TestCase(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Order flow incl. pricing", got.Title)
}

func TestTestCaseNotFound(t *testing.T) {
	s := seededStore(t)
	_, err := s.TestCase(context.Background(), "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestSaveSelectionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	id, err := s.SaveTestCase(ctx, "P1", &types.TestCase{Code: "TC-001", TestLayer: types.LayerSIT})
	require.NoError(t, err)

	sels := []types.TraceSelection{{
		L3ID:                   "L3-100",
		L4IDs:                  []string{"L4-110"},
		ManualRequirementIDs:   []string{"R9"},
		ExcludedWricefIDs:      []string{"W1"},
		ManualWricefIDs:        []string{},
		ManualConfigIDs:        []string{},
		ExcludedRequirementIDs: []string{},
		ExcludedConfigIDs:      []string{},
	}}
	require.NoError(t, s.SaveSelections(ctx, id, sels))

	got, err := s.TestCase(ctx, id)
	require.NoError(t, err)
	require.Len(t, got.Groups, 1)
	g := got.Groups[0]
	assert.Equal(t, "L3-100", g.L3ID)
	assert.True(t, g.L4IDs.Has("L4-110"))
	assert.True(t, g.ManualRequirementIDs.Has("R9"))
	assert.True(t, g.ExcludedWricefIDs.Has("W1"))

	// A second save replaces wholesale.
	require.NoError(t, s.SaveSelections(ctx, id, nil))
	got, err = s.TestCase(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got.Groups)
}

func TestSaveSelectionsRejectsDuplicateL3(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	id, err := s.SaveTestCase(ctx, "P1", &types.TestCase{Code: "TC-001", TestLayer: types.LayerSIT})
	require.NoError(t, err)
	require.NoError(t, s.SaveSelections(ctx, id, []types.TraceSelection{{L3ID: "L3-100"}}))

	err = s.SaveSelections(ctx, id, []types.TraceSelection{{L3ID: "L3-100"}, {L3ID: "L3-100"}})
	assert.ErrorIs(t, err, types.ErrDuplicateL3)

	// The failed save left the previous selections intact.
	got, err := s.TestCase(ctx, id)
	require.NoError(t, err)
	assert.Len(t, got.Groups, 1)
}

func TestSaveSelectionsUnknownTestCase(t *testing.T) {
	s := seededStore(t)
	err := s.SaveSelections(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestSelectionsPreserveOrder(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	require.NoError(t, s.ReplaceNodes(ctx, "P1", append(testNodes(),
		types.ProcessNode{ID: "L3-200", Level: 3, ParentID: "L2-10", Code: "P2", Name: "Check Credit"})))

	id, err := s.SaveTestCase(ctx, "P1", &types.TestCase{Code: "TC-001", TestLayer: types.LayerSIT})
	require.NoError(t, err)
	require.NoError(t, s.SaveSelections(ctx, id, []types.TraceSelection{
		{L3ID: "L3-200"}, {L3ID: "L3-100"},
	}))

	got, err := s.TestCase(ctx, id)
	require.NoError(t, err)
	require.Len(t, got.Groups, 2)
	assert.Equal(t, "L3-200", got.Groups[0].L3ID, "attachment order survives persistence")
	assert.Equal(t, "L3-100", got.Groups[1].L3ID)
}

func TestDeleteTestCaseCascades(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	id, err := s.SaveTestCase(ctx, "P1", &types.TestCase{Code: "TC-001", TestLayer: types.LayerSIT})
	require.NoError(t, err)
	require.NoError(t, s.SaveSelections(ctx, id, []types.TraceSelection{{L3ID: "L3-100"}}))

	require.NoError(t, s.DeleteTestCase(ctx, id))

	_, err = s.TestCase(ctx, id)
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.ErrorIs(t, s.DeleteTestCase(ctx, id), types.ErrNotFound)
}

func TestTestCasesListsProgramScoped(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	_, err := s.SaveTestCase(ctx, "P1", &types.TestCase{Code: "TC-002", TestLayer: types.LayerUnit})
	require.NoError(t, err)
	_, err = s.SaveTestCase(ctx, "P1", &types.TestCase{Code: "TC-001", TestLayer: types.LayerSIT})
	require.NoError(t, err)
	_, err = s.SaveTestCase(ctx, "OTHER", &types.TestCase{Code: "TC-900", TestLayer: types.LayerUnit})
	require.NoError(t, err)

	cases, err := s.TestCases(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, "TC-001", cases[0].Code, "code order")
}

func TestDerivedSummaryMirrorsResolver(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	id, err := s.SaveTestCase(ctx, "P1", &types.TestCase{Code: "TC-001", TestLayer: types.LayerSIT})
	require.NoError(t, err)
	require.NoError(t, s.SaveSelections(ctx, id, []types.TraceSelection{{
		L3ID:                   "L3-100",
		ExcludedRequirementIDs: []string{"R2"},
	}}))

	summary, err := s.DerivedSummary(ctx, id)
	require.NoError(t, err)
	require.Len(t, summary.Groups, 1)

	g := summary.Groups[0]
	assert.Equal(t, "L3-100", g.L3ID)
	assert.Equal(t, []string{"R1", "R2"}, g.EffectiveRequirementIDs,
		"exclusion keeps membership")
	assert.Equal(t, []string{"W1"}, g.EffectiveWricefIDs)
	assert.Equal(t, []string{"C1"}, g.EffectiveConfigIDs)
	assert.Equal(t, []string{"R2"}, g.NotCoveredIDs)
}

func TestDerivedSummaryUnknownTestCase(t *testing.T) {
	s := seededStore(t)
	_, err := s.DerivedSummary(context.Background(), "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
